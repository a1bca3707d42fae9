package ports

import (
	"context"

	"github.com/hyfac/catalog/internal/core/domain"
)

// Geocoder resolves a free-text query to a single coordinate. A nil result
// never occurs without an error; an empty response is domain.ErrNoResult.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*domain.GeoPoint, error)
}

// EventPublisher publishes catalog events to a message broker.
type EventPublisher interface {
	PublishStoreImported(ctx context.Context, store *domain.Store) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
