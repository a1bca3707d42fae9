package usecases_test

import (
	"context"
	"testing"

	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/core/usecases"
)

// memoryStoreRepo is a mockStoreRepo wired to an in-memory slug index, enough
// to exercise the import pipeline end to end.
func memoryStoreRepo(bySlug map[string]*domain.Store) *mockStoreRepo {
	return &mockStoreRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*domain.Store, error) {
			if s, ok := bySlug[slug]; ok {
				return s, nil
			}
			return nil, domain.ErrNotFound
		},
		createFn: func(ctx context.Context, store *domain.Store) error {
			if _, ok := bySlug[store.Slug]; ok {
				return domain.ErrConflict
			}
			bySlug[store.Slug] = store
			return nil
		},
	}
}

func newImportService(bySlug map[string]*domain.Store) *usecases.ImportService {
	svc := usecases.NewImportService(memoryStoreRepo(bySlug), usecases.NewLocationResolver(nil), nil)
	svc.SetDelay(0)
	return svc
}

func TestImportService_Run_Idempotent(t *testing.T) {
	rows := []map[string]string{
		{"Pharmacie / parapharmacie": "Pharmacie Test", "Adresse": "Blida"},
		{"Pharmacie / parapharmacie": "Pharmacie El Bader", "Adresse": "Oran", "Gel": "x"},
	}
	bySlug := make(map[string]*domain.Store)
	svc := newImportService(bySlug)

	first := svc.Run(context.Background(), rows)
	if first.Imported != 2 || first.Skipped != 0 || len(first.Errors) != 0 {
		t.Fatalf("first run: %+v", first)
	}
	if len(bySlug) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(bySlug))
	}

	second := svc.Run(context.Background(), rows)
	if second.Imported != 0 || second.Skipped != 2 || len(second.Errors) != 0 {
		t.Fatalf("second run should skip everything: %+v", second)
	}
	if len(bySlug) != 2 {
		t.Fatalf("second run must not add records, got %d", len(bySlug))
	}
}

func TestImportService_Run_MissingNameDoesNotAbortBatch(t *testing.T) {
	rows := []map[string]string{
		{"Adresse": "Blida"}, // no name
		{"Pharmacie / parapharmacie": "Pharmacie Deux", "Adresse": "Oran"},
	}
	bySlug := make(map[string]*domain.Store)
	svc := newImportService(bySlug)

	summary := svc.Run(context.Background(), rows)
	if summary.Imported != 1 {
		t.Errorf("expected the second row to import, got %d", summary.Imported)
	}
	if len(summary.Errors) != 1 {
		t.Fatalf("expected 1 row error, got %d", len(summary.Errors))
	}
	if summary.Errors[0].Row != 1 {
		t.Errorf("error should reference row 1, got %d", summary.Errors[0].Row)
	}
}

func TestImportService_Run_StoreShape(t *testing.T) {
	rows := []map[string]string{
		{"Pharmacie / parapharmacie": " Pharmacie Chéraga ", "Adresse": "Cheraga", "Mousse": "oui"},
	}
	bySlug := make(map[string]*domain.Store)
	svc := newImportService(bySlug)

	summary := svc.Run(context.Background(), rows)
	if summary.Imported != 1 {
		t.Fatalf("import failed: %+v", summary)
	}

	store, ok := bySlug["pharmacie-cheraga-cheraga"]
	if !ok {
		t.Fatalf("expected slug pharmacie-cheraga-cheraga, have %v", keys(bySlug))
	}
	if store.Name != "Pharmacie Chéraga" {
		t.Errorf("name not trimmed: %q", store.Name)
	}
	if store.City != "Alger" || store.Address != "Cheraga, Alger" {
		t.Errorf("wilaya/address wrong: %q / %q", store.City, store.Address)
	}
	if store.Location.Lat != 36.6175 || store.Location.Lng != 2.9614 {
		t.Errorf("coordinates should come from the table: %+v", store.Location)
	}
	if store.PostalCode != "00000" || store.Country != "Algérie" {
		t.Errorf("postal/country defaults wrong: %q / %q", store.PostalCode, store.Country)
	}
	if !store.IsActive || store.IsFeatured {
		t.Errorf("activity flags wrong: active=%v featured=%v", store.IsActive, store.IsFeatured)
	}
	want := []string{domain.RangeParapharmacy, domain.RangeCosmetics, domain.RangePharmacy}
	if len(store.Ranges) != len(want) {
		t.Fatalf("ranges = %v, want %v", store.Ranges, want)
	}
	for i, r := range want {
		if store.Ranges[i] != r {
			t.Errorf("ranges[%d] = %q, want %q", i, store.Ranges[i], r)
		}
	}
}

func TestImportService_Run_NoMarkersMeansPharmacyOnly(t *testing.T) {
	rows := []map[string]string{
		{"Pharmacie / parapharmacie": "Pharmacie Simple", "Adresse": "Blida"},
	}
	bySlug := make(map[string]*domain.Store)
	svc := newImportService(bySlug)

	svc.Run(context.Background(), rows)
	store := bySlug["pharmacie-simple-blida"]
	if store == nil {
		t.Fatal("store not imported")
	}
	if len(store.Ranges) != 1 || store.Ranges[0] != domain.RangePharmacy {
		t.Errorf("ranges = %v, want only Pharmacie", store.Ranges)
	}
}

func TestImportService_Run_CreateConflictCountsAsSkip(t *testing.T) {
	// Existence check misses but the storage-level unique constraint fires.
	repo := &mockStoreRepo{
		getBySlugFn: func(ctx context.Context, slug string) (*domain.Store, error) {
			return nil, domain.ErrNotFound
		},
		createFn: func(ctx context.Context, store *domain.Store) error {
			return domain.ErrConflict
		},
	}
	svc := usecases.NewImportService(repo, usecases.NewLocationResolver(nil), nil)
	svc.SetDelay(0)

	summary := svc.Run(context.Background(), []map[string]string{
		{"Pharmacie / parapharmacie": "Pharmacie Test", "Adresse": "Blida"},
	})
	if summary.Skipped != 1 || summary.Imported != 0 || len(summary.Errors) != 0 {
		t.Errorf("conflict should count as skip: %+v", summary)
	}
}

func keys(m map[string]*domain.Store) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
