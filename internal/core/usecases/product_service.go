package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/core/ports"
	"github.com/hyfac/catalog/internal/pkg/slug"
)

// ProductService handles product-related business logic.
type ProductService struct {
	products ports.ProductRepository
	cache    ports.CacheService
}

// NewProductService creates a new ProductService.
func NewProductService(products ports.ProductRepository, cache ports.CacheService) *ProductService {
	return &ProductService{products: products, cache: cache}
}

// List returns products matching the filter plus the unpaginated total.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.MinPrice < 0 || (filter.MaxPrice > 0 && filter.MaxPrice < filter.MinPrice) {
		return nil, 0, fmt.Errorf("%w: invalid price bounds", domain.ErrInvalidArgument)
	}
	return s.products.List(ctx, filter)
}

// GetByID returns a single product.
func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	cacheKey := "products:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var product domain.Product
			if err := json.Unmarshal(data, &product); err == nil {
				return &product, nil
			}
		}
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(product); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 600)
		}
	}

	return product, nil
}

// GetBySlug returns a single product by its slug.
func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*domain.Product, error) {
	return s.products.GetBySlug(ctx, productSlug)
}

// Create persists a new product. A missing slug is derived from the name.
func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if strings.TrimSpace(product.Name) == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidArgument)
	}
	if product.Slug == "" {
		product.Slug = slug.Make(product.Name)
	}
	return s.products.Create(ctx, product)
}

// Update replaces the mutable fields of an existing product.
func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidArgument)
	}
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "products:id:"+product.ID)
	}
	return nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, "products:id:"+id)
	}
	return nil
}
