package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control headers on GET responses based on
// endpoint. Handlers that set their own header win.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != "GET" {
			return err
		}
		if existing := c.Get("Cache-Control"); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/api/health" || path == "/api/ready":
			ttl = "public, max-age=10" // system checks stay fresh

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/api/stores/nearby"):
			ttl = "public, max-age=300" // location queries

		case strings.HasPrefix(path, "/api/stores/search"):
			ttl = "public, max-age=300"

		case path == "/api/stores/stats":
			ttl = "public, max-age=60"

		case strings.HasPrefix(path, "/api/stores/"):
			ttl = "public, max-age=600" // single store

		case strings.HasPrefix(path, "/api/products/"):
			ttl = "public, max-age=600" // single product

		case strings.HasPrefix(path, "/api/"):
			ttl = "public, max-age=300" // default for API endpoints
		}

		if ttl != "" {
			c.Set("Cache-Control", ttl)
		}

		return err
	}
}
