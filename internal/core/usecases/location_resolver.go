package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/core/ports"
	"github.com/hyfac/catalog/internal/geodata"
	"github.com/hyfac/catalog/internal/pkg/metrics"
)

// LocationResolver turns a free-text commune name into a wilaya-anchored
// coordinate. Resolution is best-effort and never fails: the static commune
// table supplies the wilaya and a baseline coordinate, an optional geocoder
// refines the coordinate, and unknown communes fall back to the Alger
// centroid.
type LocationResolver struct {
	geocoder ports.Geocoder // nil disables the refinement step
	country  string
}

// NewLocationResolver creates a resolver. geocoder may be nil.
func NewLocationResolver(geocoder ports.Geocoder) *LocationResolver {
	return &LocationResolver{geocoder: geocoder, country: "Algeria"}
}

// Resolve returns a usable location for the given commune. label is extra
// context for the geocoding query (typically the store name) and does not
// influence the fallback path.
func (r *LocationResolver) Resolve(ctx context.Context, commune, label string) domain.ResolvedLocation {
	entry, ok := geodata.Lookup(commune)
	if !ok {
		entry = geodata.Default()
		slog.Warn("commune not in reference table, using default wilaya",
			"commune", commune, "wilaya", entry.Wilaya)
	}

	resolved := domain.ResolvedLocation{
		Wilaya:   entry.Wilaya,
		Location: domain.GeoPoint{Lat: entry.Lat, Lng: entry.Lng},
		Address:  fmt.Sprintf("%s, %s", commune, entry.Wilaya),
	}

	if r.geocoder == nil {
		return resolved
	}

	query := fmt.Sprintf("%s, %s, %s, %s", label, commune, entry.Wilaya, r.country)
	point, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		metrics.GeocodeFallbacks.Inc()
		slog.Info("geocoding unavailable, keeping table coordinates",
			"commune", commune, "error", err)
		return resolved
	}

	// The geocoder only refines the coordinate; the wilaya always comes
	// from the table.
	resolved.Location = *point
	return resolved
}
