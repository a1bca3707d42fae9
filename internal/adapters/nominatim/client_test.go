package nominatim_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hyfac/catalog/internal/adapters/nominatim"
	"github.com/hyfac/catalog/internal/core/domain"
)

func TestClient_Geocode(t *testing.T) {
	var gotQuery, gotCountry, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCountry = r.URL.Query().Get("countrycodes")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat":"36.4703","lon":"2.8277","display_name":"Blida, Algérie"}]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "HyfacApp/1.0", "dz", 5*time.Second)
	pt, err := c.Geocode(context.Background(), "Pharmacie Test, Blida, Blida, Algeria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt.Lat != 36.4703 || pt.Lng != 2.8277 {
		t.Errorf("parsed point = %+v", pt)
	}
	if gotQuery != "Pharmacie Test, Blida, Blida, Algeria" {
		t.Errorf("query param = %q", gotQuery)
	}
	if gotCountry != "dz" {
		t.Errorf("countrycodes = %q, want dz", gotCountry)
	}
	if gotUA != "HyfacApp/1.0" {
		t.Errorf("user agent = %q", gotUA)
	}
}

func TestClient_Geocode_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "HyfacApp/1.0", "dz", 5*time.Second)
	_, err := c.Geocode(context.Background(), "nowhere")
	if !errors.Is(err, domain.ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestClient_Geocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "HyfacApp/1.0", "dz", 5*time.Second)
	if _, err := c.Geocode(context.Background(), "Blida"); err == nil {
		t.Error("expected error on 429 response")
	}
}

func TestClient_Geocode_MalformedCoordinate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"lat":"not-a-number","lon":"2.8277"}]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "HyfacApp/1.0", "dz", 5*time.Second)
	if _, err := c.Geocode(context.Background(), "Blida"); err == nil {
		t.Error("expected parse error")
	}
}
