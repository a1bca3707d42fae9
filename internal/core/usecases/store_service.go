package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/core/ports"
	"github.com/hyfac/catalog/internal/pkg/geospatial"
	"github.com/hyfac/catalog/internal/pkg/metrics"
	"github.com/hyfac/catalog/internal/pkg/slug"
)

// DefaultNearbyRadiusKm is applied when the caller passes no radius.
const DefaultNearbyRadiusKm = 50

// StoreService handles store-related business logic.
type StoreService struct {
	stores ports.StoreRepository
	cache  ports.CacheService
}

// NewStoreService creates a new StoreService.
func NewStoreService(stores ports.StoreRepository, cache ports.CacheService) *StoreService {
	return &StoreService{stores: stores, cache: cache}
}

// FindNearby returns active stores within radiusKm of the given point,
// sorted by ascending distance (rounded to one decimal). There is no spatial
// index: the whole active set is scanned, which is fine at the scale of a
// regional store directory.
func (s *StoreService) FindNearby(ctx context.Context, lat, lng, radiusKm float64) ([]domain.NearbyStore, error) {
	if !isFinite(lat) || !isFinite(lng) {
		return nil, fmt.Errorf("%w: lat and lng must be finite numbers", domain.ErrInvalidArgument)
	}
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}

	// Try cache
	cacheKey := fmt.Sprintf("stores:nearby:%.4f:%.4f:%.1f", lat, lng, radiusKm)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var nearby []domain.NearbyStore
			if err := json.Unmarshal(data, &nearby); err == nil {
				metrics.CacheHits.WithLabelValues("nearby").Inc()
				return nearby, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("nearby").Inc()
	}

	stores, err := s.stores.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	var nearby []domain.NearbyStore
	for _, store := range stores {
		d := geospatial.Haversine(lat, lng, store.Location.Lat, store.Location.Lng)
		if d > radiusKm {
			continue
		}
		nearby = append(nearby, domain.NearbyStore{
			Store:      store,
			DistanceKm: geospatial.RoundKm(d),
		})
	}

	// Stable: equal distances keep the repository order.
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	// Cache for 5 minutes (the store set changes rarely)
	if s.cache != nil {
		if data, err := json.Marshal(nearby); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return nearby, nil
}

// SearchByLocation is a cruder, non-GPS proximity filter: active stores whose
// postal code shares the 2-digit département prefix, optionally restricted to
// a product range.
func (s *StoreService) SearchByLocation(ctx context.Context, postalCode, productRange string) ([]domain.Store, error) {
	postalCode = strings.TrimSpace(postalCode)
	if postalCode == "" {
		return nil, fmt.Errorf("%w: postal code is required", domain.ErrInvalidArgument)
	}
	prefix := postalCode
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	if productRange == "Tous" {
		productRange = ""
	}
	return s.stores.SearchByPostalPrefix(ctx, prefix, productRange)
}

// List returns stores matching the filter plus the unpaginated total.
func (s *StoreService) List(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.stores.List(ctx, filter)
}

// GetByID returns a single store.
func (s *StoreService) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	cacheKey := "stores:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var store domain.Store
			if err := json.Unmarshal(data, &store); err == nil {
				metrics.CacheHits.WithLabelValues("store").Inc()
				return &store, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("store").Inc()
	}

	store, err := s.stores.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(store); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return store, nil
}

// Create persists a new store. A missing slug is derived from the name.
func (s *StoreService) Create(ctx context.Context, store *domain.Store) error {
	if strings.TrimSpace(store.Name) == "" {
		return fmt.Errorf("%w: store name is required", domain.ErrInvalidArgument)
	}
	if store.Slug == "" {
		store.Slug = slug.Make(store.Name)
	}
	if len(store.Ranges) == 0 {
		store.Ranges = []string{domain.RangePharmacy}
	}
	return s.stores.Create(ctx, store)
}

// Update replaces the mutable fields of an existing store.
func (s *StoreService) Update(ctx context.Context, store *domain.Store) error {
	if store.ID == "" {
		return fmt.Errorf("%w: store id is required", domain.ErrInvalidArgument)
	}
	if err := s.stores.Update(ctx, store); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "stores:id:"+store.ID)
	}
	return nil
}

// Delete removes a store.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	if err := s.stores.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "stores:id:"+id)
	}
	return nil
}

// Stats aggregates the active directory.
func (s *StoreService) Stats(ctx context.Context) (*domain.StoreStats, error) {
	return s.stores.Stats(ctx)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
