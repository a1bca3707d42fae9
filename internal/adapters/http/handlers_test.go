package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/hyfac/catalog/internal/adapters/http"
	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/core/usecases"
)

// ---- Mock repositories ----

type mockStoreRepo struct {
	listFn         func(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error)
	listActiveFn   func(ctx context.Context) ([]domain.Store, error)
	searchPostalFn func(ctx context.Context, prefix, productRange string) ([]domain.Store, error)
	getByIDFn      func(ctx context.Context, id string) (*domain.Store, error)
	getBySlugFn    func(ctx context.Context, slug string) (*domain.Store, error)
	createFn       func(ctx context.Context, store *domain.Store) error
	statsFn        func(ctx context.Context) (*domain.StoreStats, error)
}

func (m *mockStoreRepo) List(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}
func (m *mockStoreRepo) ListActive(ctx context.Context) ([]domain.Store, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return nil, nil
}
func (m *mockStoreRepo) SearchByPostalPrefix(ctx context.Context, prefix, productRange string) ([]domain.Store, error) {
	if m.searchPostalFn != nil {
		return m.searchPostalFn(ctx, prefix, productRange)
	}
	return nil, nil
}
func (m *mockStoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockStoreRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, domain.ErrNotFound
}
func (m *mockStoreRepo) Create(ctx context.Context, store *domain.Store) error {
	if m.createFn != nil {
		return m.createFn(ctx, store)
	}
	return nil
}
func (m *mockStoreRepo) Update(ctx context.Context, store *domain.Store) error { return nil }
func (m *mockStoreRepo) Delete(ctx context.Context, id string) error           { return nil }
func (m *mockStoreRepo) Stats(ctx context.Context) (*domain.StoreStats, error) {
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &domain.StoreStats{}, nil
}

type mockProductRepo struct {
	listFn      func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
	getByIDFn   func(ctx context.Context, id string) (*domain.Product, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Product, error)
}

func (m *mockProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}
func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}
func (m *mockProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, domain.ErrNotFound
}
func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }
func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }
func (m *mockProductRepo) Delete(ctx context.Context, id string) error               { return nil }

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Stores:   usecases.NewStoreService(&mockStoreRepo{}, nil),
		Products: usecases.NewProductService(&mockProductRepo{}, nil),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func decodeEnvelope(t *testing.T, body io.Reader) handler.Envelope {
	t.Helper()
	var env handler.Envelope
	if err := json.NewDecoder(body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

// ---- Store handler tests ----

func TestListStores_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			listFn: func(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error) {
				return []domain.Store{
					{ID: "s1", Name: "Pharmacie Centrale", City: "Alger"},
					{ID: "s2", Name: "Pharmacie El Djazair", City: "Alger"},
				}, 2, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	if !env.Success {
		t.Error("expected success=true")
	}
	if env.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestListStores_FilterPassthrough(t *testing.T) {
	var got domain.StoreFilter
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			listFn: func(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error) {
				got = filter
				return nil, 0, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores?city=Oran&range=Cosm%C3%A9tique&page=2&limit=10", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got.City != "Oran" {
		t.Errorf("expected city Oran, got %q", got.City)
	}
	if got.Range != "Cosmétique" {
		t.Errorf("expected range Cosmétique, got %q", got.Range)
	}
	if got.Page != 2 || got.Limit != 10 {
		t.Errorf("expected page 2 limit 10, got %d/%d", got.Page, got.Limit)
	}
}

func TestNearbyStores_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			listActiveFn: func(ctx context.Context) ([]domain.Store, error) {
				return []domain.Store{
					{ID: "s1", Name: "Pharmacie Didouche", IsActive: true,
						Location: domain.GeoPoint{Lat: 36.76, Lng: 3.05}},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores/nearby?lat=36.75&lng=3.06&radius=50", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	if !env.Success {
		t.Error("expected success=true")
	}
	data, _ := json.Marshal(env.Data)
	var stores []domain.NearbyStore
	if err := json.Unmarshal(data, &stores); err != nil {
		t.Fatal(err)
	}
	if len(stores) != 1 {
		t.Fatalf("expected 1 store, got %d", len(stores))
	}
	if stores[0].DistanceKm <= 0 {
		t.Errorf("expected positive distance, got %v", stores[0].DistanceKm)
	}
}

func TestNearbyStores_MissingParams(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/stores/nearby", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	if env.Success {
		t.Error("expected success=false")
	}
}

func TestNearbyStores_InvalidCoordinates(t *testing.T) {
	app := setupApp(makeDeps())

	// NaN parses as a float but is rejected by the service
	req := httptest.NewRequest("GET", "/api/stores/nearby?lat=NaN&lng=3.06", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSearchStoresByLocation_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			searchPostalFn: func(ctx context.Context, prefix, productRange string) ([]domain.Store, error) {
				if prefix != "16" {
					t.Errorf("expected prefix 16, got %q", prefix)
				}
				return []domain.Store{{ID: "s1", PostalCode: "16000"}}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores/search/location?postalCode=16000", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestSearchStoresByLocation_MissingPostalCode(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/stores/search/location", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestStoreStats_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			statsFn: func(ctx context.Context) (*domain.StoreStats, error) {
				return &domain.StoreStats{
					Total:   42,
					ByRange: map[string]int{"Pharmacie": 42, "Cosmétique": 10},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores/stats", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	data, _ := json.Marshal(env.Data)
	var stats domain.StoreStats
	json.Unmarshal(data, &stats)
	if stats.Total != 42 {
		t.Errorf("expected total 42, got %d", stats.Total)
	}
}

func TestGetStore_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/stores/nonexistent-id", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	if env.Success {
		t.Error("expected success=false")
	}
}

func TestGetStore_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Store, error) {
				return &domain.Store{ID: id, Name: "Pharmacie Moderne"}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores/abc-123", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp.Body)
	data, _ := json.Marshal(env.Data)
	var store domain.Store
	json.Unmarshal(data, &store)
	if store.Name != "Pharmacie Moderne" {
		t.Errorf("expected Pharmacie Moderne, got %s", store.Name)
	}
}

func TestCreateStore_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			createFn: func(ctx context.Context, store *domain.Store) error {
				store.ID = "new-id"
				return nil
			},
		}, nil)
	})
	app := setupApp(deps)

	body := strings.NewReader(`{"name":"Pharmacie Essalem","city":"Blida"}`)
	req := httptest.NewRequest("POST", "/api/stores", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestCreateStore_MissingName(t *testing.T) {
	app := setupApp(makeDeps())

	body := strings.NewReader(`{"city":"Blida"}`)
	req := httptest.NewRequest("POST", "/api/stores", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateStore_Conflict(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			createFn: func(ctx context.Context, store *domain.Store) error {
				return fmt.Errorf("slug taken: %w", domain.ErrConflict)
			},
		}, nil)
	})
	app := setupApp(deps)

	body := strings.NewReader(`{"name":"Pharmacie Essalem"}`)
	req := httptest.NewRequest("POST", "/api/stores", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 409 {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

// ---- Product handler tests ----

func TestListProducts_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Products = usecases.NewProductService(&mockProductRepo{
			listFn: func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
				return []domain.Product{
					{ID: "p1", Name: "Gel Nettoyant", Price: 1200},
				}, 1, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/products", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestListProducts_BadPriceBounds(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/products?minPrice=500&maxPrice=100", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetProductBySlug_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Products = usecases.NewProductService(&mockProductRepo{
			getBySlugFn: func(ctx context.Context, slug string) (*domain.Product, error) {
				return &domain.Product{ID: "p1", Slug: slug, Name: "Gel Nettoyant"}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/products/slug/gel-nettoyant", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/products/bad-id", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- Health handler tests ----

func TestHealth_Returns200(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	if result["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", result["status"])
	}
}

func TestReady_NoDB(t *testing.T) {
	// DB, NATS, Cache are nil so readiness must fail
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/ready", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

// ---- Middleware behavior ----

func TestAPIVersionHeader(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	v := resp.Header.Get("X-API-Version")
	if v != "1.0.0" {
		t.Errorf("expected X-API-Version 1.0.0, got %q", v)
	}
}

func TestNearbyStores_CacheControlHeader(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			listActiveFn: func(ctx context.Context) ([]domain.Store, error) {
				return []domain.Store{}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores/nearby?lat=36.75&lng=3.06", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cc := resp.Header.Get("Cache-Control")
	if cc != "public, max-age=300" {
		t.Errorf("expected Cache-Control header, got %q", cc)
	}
}

func TestListStores_LinkHeader(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Stores = usecases.NewStoreService(&mockStoreRepo{
			listFn: func(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error) {
				return []domain.Store{{ID: "s1"}}, 30, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/api/stores?page=2&limit=10", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	link := resp.Header.Get("Link")
	if link == "" {
		t.Fatal("expected Link header, got empty")
	}
	for _, rel := range []string{`rel="first"`, `rel="prev"`, `rel="next"`, `rel="last"`} {
		if !strings.Contains(link, rel) {
			t.Errorf("expected %s in Link header, got %s", rel, link)
		}
	}
}

// TestAccessLogMiddleware verifies the middleware passes requests through.
func TestAccessLogMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(handler.AccessLogMiddleware())
	app.Get("/test", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("X-Request-ID", "test-req-123")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "ok") {
		t.Errorf("expected response body to contain 'ok', got %s", string(body))
	}
}
