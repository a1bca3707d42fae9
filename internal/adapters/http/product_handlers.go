package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hyfac/catalog/internal/core/domain"
)

// ListProductsHandler returns products matching the query filters.
func ListProductsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := domain.ProductFilter{
			Category: c.Query("category"),
			Range:    c.Query("range"),
			SkinType: c.Query("skinType"),
			Search:   c.Query("search"),
			MinPrice: c.QueryFloat("minPrice", 0),
			MaxPrice: c.QueryFloat("maxPrice", 0),
			SortBy:   c.Query("sortBy"),
			Page:     c.QueryInt("page", 1),
			Limit:    c.QueryInt("limit", 20),
		}
		if raw := c.Query("inStock"); raw != "" {
			v := raw == "true" || raw == "1"
			filter.InStock = &v
		}
		if filter.Page < 1 {
			filter.Page = 1
		}
		if filter.Limit <= 0 || filter.Limit > 100 {
			filter.Limit = 20
		}

		products, total, err := deps.Products.List(c.Context(), filter)
		if err != nil {
			return errFromDomain(c, err, "no products found")
		}

		pg := NewPagination(filter.Page, filter.Limit, total)
		return respondPage(c, "products retrieved", products, pg)
	}
}

// GetProductHandler returns a single product by ID.
func GetProductHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "product id is required")
		}
		product, err := deps.Products.GetByID(c.Context(), id)
		if err != nil {
			return errFromDomain(c, err, "product not found")
		}
		return respond(c, 200, "product retrieved", product)
	}
}

// GetProductBySlugHandler returns a single product by slug.
func GetProductBySlugHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return errBadRequest(c, "product slug is required")
		}
		product, err := deps.Products.GetBySlug(c.Context(), slug)
		if err != nil {
			return errFromDomain(c, err, "product not found")
		}
		return respond(c, 200, "product retrieved", product)
	}
}

// CreateProductHandler creates a product from a JSON body.
func CreateProductHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var product domain.Product
		if err := c.BodyParser(&product); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Products.Create(c.Context(), &product); err != nil {
			return errFromDomain(c, err, "product not found")
		}
		return respond(c, 201, "product created", product)
	}
}

// UpdateProductHandler updates a product by ID.
func UpdateProductHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "product id is required")
		}
		var product domain.Product
		if err := c.BodyParser(&product); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		product.ID = id
		if err := deps.Products.Update(c.Context(), &product); err != nil {
			return errFromDomain(c, err, "product not found")
		}
		return respond(c, 200, "product updated", product)
	}
}

// DeleteProductHandler deletes a product by ID.
func DeleteProductHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "product id is required")
		}
		if err := deps.Products.Delete(c.Context(), id); err != nil {
			return errFromDomain(c, err, "product not found")
		}
		return respond(c, 200, "product deleted", nil)
	}
}
