package ports

import (
	"context"

	"github.com/hyfac/catalog/internal/core/domain"
)

// StoreRepository persists stores.
type StoreRepository interface {
	List(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error)
	ListActive(ctx context.Context) ([]domain.Store, error)
	SearchByPostalPrefix(ctx context.Context, prefix, productRange string) ([]domain.Store, error)
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.StoreStats, error)
}

// ProductRepository persists products.
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}
