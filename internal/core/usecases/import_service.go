package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/core/ports"
	"github.com/hyfac/catalog/internal/pkg/metrics"
	"github.com/hyfac/catalog/internal/pkg/slug"
)

// Column names of the source spreadsheet, as authored.
const (
	colName    = "Pharmacie / parapharmacie"
	colCommune = "Adresse"
)

// productMarkers are the product columns of the source sheet. Any non-empty
// cell in one of them means the store carries parapharmacy and cosmetics
// ranges on top of the base pharmacy range.
var productMarkers = []string{
	"Gel", "Mousse", "SG", "E. fluide", "Patchs", "Gommage",
	"A Mask", "Sun INV", "Sun T", "H. Légère", "H. Riche", "Clarifao",
}

// ImportRowError records a failed source row. Row is 1-based.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary reports the outcome of one import run.
type ImportSummary struct {
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// ImportService loads tabular store rows into the catalog. Rows are
// processed strictly sequentially: the inter-row delay respects the
// geocoding provider's rate limit, and the slug existence check must never
// race a concurrent insert of the same slug.
type ImportService struct {
	stores   ports.StoreRepository
	resolver *LocationResolver
	events   ports.EventPublisher // nil disables event publishing

	delay time.Duration
	sleep func(time.Duration)
}

// NewImportService creates an ImportService with the default 1.1 s inter-row
// delay. events may be nil.
func NewImportService(stores ports.StoreRepository, resolver *LocationResolver, events ports.EventPublisher) *ImportService {
	return &ImportService{
		stores:   stores,
		resolver: resolver,
		events:   events,
		delay:    1100 * time.Millisecond,
		sleep:    time.Sleep,
	}
}

// SetDelay overrides the inter-row delay. Delays under 1 s violate the
// geocoding provider's usage policy and are rejected unless zero (tests,
// geocoder disabled).
func (s *ImportService) SetDelay(d time.Duration) {
	if d == 0 || d >= time.Second {
		s.delay = d
	}
}

// Run imports all rows and reports a summary. Row-level failures are
// collected and never abort the batch.
func (s *ImportService) Run(ctx context.Context, rows []map[string]string) ImportSummary {
	var summary ImportSummary

	for i, row := range rows {
		rowNum := i + 1

		if err := s.importRow(ctx, row, &summary); err != nil {
			metrics.ImportRowErrors.Inc()
			summary.Errors = append(summary.Errors, ImportRowError{Row: rowNum, Message: err.Error()})
			slog.Error("import row failed", "row", rowNum, "error", err)
		}
	}

	slog.Info("import finished",
		"imported", summary.Imported, "skipped", summary.Skipped, "errors", len(summary.Errors))
	return summary
}

func (s *ImportService) importRow(ctx context.Context, row map[string]string, summary *ImportSummary) error {
	name := strings.TrimSpace(row[colName])
	commune := strings.TrimSpace(row[colCommune])
	if name == "" || commune == "" {
		return fmt.Errorf("missing name or commune")
	}

	location := s.resolver.Resolve(ctx, commune, name)

	// Applied per row whether or not the resolver reached the network, to
	// keep the pacing simple and safe.
	s.sleep(s.delay)

	store := &domain.Store{
		Name:          name,
		Slug:          slug.ForStore(name, commune),
		Address:       location.Address,
		City:          location.Wilaya,
		PostalCode:    "00000",
		Country:       "Algérie",
		Location:      location.Location,
		Ranges:        extractRanges(row),
		GoogleMapsURL: mapsURL(location.Location),
		Services:      []string{"Conseil pharmaceutique"},
		IsActive:      true,
		IsFeatured:    false,
	}

	existing, err := s.stores.GetBySlug(ctx, store.Slug)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("lookup %s: %w", store.Slug, err)
	}
	if existing != nil {
		metrics.StoresSkipped.Inc()
		summary.Skipped++
		slog.Debug("store already imported, skipping", "slug", store.Slug)
		return nil
	}

	if err := s.stores.Create(ctx, store); err != nil {
		// The unique constraint is the storage-level backstop for the
		// existence check above; treat a collision as a skip, not an error.
		if errors.Is(err, domain.ErrConflict) {
			metrics.StoresSkipped.Inc()
			summary.Skipped++
			return nil
		}
		return fmt.Errorf("create %s: %w", store.Slug, err)
	}

	metrics.StoresImported.Inc()
	summary.Imported++
	slog.Info("store imported", "slug", store.Slug, "wilaya", store.City)

	if s.events != nil {
		if err := s.events.PublishStoreImported(ctx, store); err != nil {
			slog.Warn("publish store.imported failed", "slug", store.Slug, "error", err)
		}
	}
	return nil
}

// extractRanges derives the product-range tags for a row. Every store sells
// the pharmacy range; stores with any product marker also carry the
// parapharmacy and cosmetics ranges. The result is de-duplicated.
func extractRanges(row map[string]string) []string {
	var ranges []string

	for _, marker := range productMarkers {
		if strings.TrimSpace(row[marker]) != "" {
			ranges = append(ranges, domain.RangeParapharmacy, domain.RangeCosmetics)
			break
		}
	}
	ranges = append(ranges, domain.RangePharmacy)

	seen := make(map[string]struct{}, len(ranges))
	out := ranges[:0]
	for _, r := range ranges {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func mapsURL(p domain.GeoPoint) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", p.Lat, p.Lng)
}
