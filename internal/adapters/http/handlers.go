package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hyfac/catalog/internal/core/domain"
	"github.com/hyfac/catalog/internal/pkg/metrics"
)

// ListStoresHandler returns stores matching the query filters.
func ListStoresHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := domain.StoreFilter{
			PostalCode: c.Query("postalCode"),
			City:       c.Query("city"),
			Range:      c.Query("range"),
			Search:     c.Query("search"),
			Page:       c.QueryInt("page", 1),
			Limit:      c.QueryInt("limit", 50),
		}
		if filter.Page < 1 {
			filter.Page = 1
		}
		if filter.Limit <= 0 || filter.Limit > 200 {
			filter.Limit = 50
		}

		stores, total, err := deps.Stores.List(c.Context(), filter)
		if err != nil {
			return errInternal(c, err.Error())
		}

		pg := NewPagination(filter.Page, filter.Limit, total)
		return respondPage(c, "stores retrieved", stores, pg)
	}
}

// NearbyStoresHandler returns active stores within a radius of a point,
// sorted by distance.
func NearbyStoresHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("lat") == "" || c.Query("lng") == "" {
			return errBadRequest(c, "lat and lng are required")
		}
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		radius := c.QueryFloat("radius", 0)

		metrics.NearbySearches.Inc()

		stores, err := deps.Stores.FindNearby(c.Context(), lat, lng, radius)
		if err != nil {
			return errFromDomain(c, err, "no stores found")
		}

		c.Set("Cache-Control", "public, max-age=300")
		return respond(c, 200, "nearby stores retrieved", stores)
	}
}

// SearchStoresByLocationHandler finds stores sharing a postal-code prefix
// (département match, no GPS required).
func SearchStoresByLocationHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		postalCode := c.Query("postalCode")
		if postalCode == "" {
			return errBadRequest(c, "postalCode is required")
		}
		productRange := c.Query("range")

		stores, err := deps.Stores.SearchByLocation(c.Context(), postalCode, productRange)
		if err != nil {
			return errFromDomain(c, err, "no stores found")
		}

		return respond(c, 200, "stores retrieved", stores)
	}
}

// StoreStatsHandler returns aggregate counts over the active directory.
func StoreStatsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := deps.Stores.Stats(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Cache-Control", "public, max-age=60")
		return respond(c, 200, "store statistics retrieved", stats)
	}
}

// GetStoreHandler returns a single store by ID.
func GetStoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "store id is required")
		}
		store, err := deps.Stores.GetByID(c.Context(), id)
		if err != nil {
			return errFromDomain(c, err, "store not found")
		}
		return respond(c, 200, "store retrieved", store)
	}
}

// CreateStoreHandler creates a store from a JSON body.
func CreateStoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var store domain.Store
		if err := c.BodyParser(&store); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := deps.Stores.Create(c.Context(), &store); err != nil {
			return errFromDomain(c, err, "store not found")
		}
		return respond(c, 201, "store created", store)
	}
}

// UpdateStoreHandler updates a store by ID.
func UpdateStoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "store id is required")
		}
		var store domain.Store
		if err := c.BodyParser(&store); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		store.ID = id
		if err := deps.Stores.Update(c.Context(), &store); err != nil {
			return errFromDomain(c, err, "store not found")
		}
		return respond(c, 200, "store updated", store)
	}
}

// DeleteStoreHandler deletes a store by ID.
func DeleteStoreHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "store id is required")
		}
		if err := deps.Stores.Delete(c.Context(), id); err != nil {
			return errFromDomain(c, err, "store not found")
		}
		return respond(c, 200, "store deleted", nil)
	}
}
