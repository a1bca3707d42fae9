package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/hyfac/catalog/internal/pkg/metrics"
)

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Response compression (gzip)
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// Request ID
	app.Use(requestid.New())

	// Propagate request ID into slog context
	app.Use(RequestIDLogMiddleware())

	// Access logs (structured HTTP request logging)
	app.Use(AccessLogMiddleware())

	// Rate limiting: 120 requests per minute per IP
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return respondError(c, 429, "too many requests, please try again later")
		},
		SkipFailedRequests: false,
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	// ETag for conditional caching
	app.Use(ETagMiddleware())

	// Default Cache-Control headers
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout, fast internal checks)
	app.Get("/api/health", HealthHandler(deps))
	app.Get("/api/ready", ReadyHandler(deps))

	// REST API, 15s per-request timeout
	api := app.Group("/api")

	stores := api.Group("/stores")
	stores.Get("/", timeout.NewWithContext(ListStoresHandler(deps), 15*time.Second))
	stores.Get("/nearby", timeout.NewWithContext(NearbyStoresHandler(deps), 15*time.Second))
	stores.Get("/search/location", timeout.NewWithContext(SearchStoresByLocationHandler(deps), 15*time.Second))
	stores.Get("/stats", timeout.NewWithContext(StoreStatsHandler(deps), 15*time.Second))
	stores.Get("/:id", timeout.NewWithContext(GetStoreHandler(deps), 15*time.Second))
	stores.Post("/", timeout.NewWithContext(CreateStoreHandler(deps), 15*time.Second))
	stores.Put("/:id", timeout.NewWithContext(UpdateStoreHandler(deps), 15*time.Second))
	stores.Delete("/:id", timeout.NewWithContext(DeleteStoreHandler(deps), 15*time.Second))

	products := api.Group("/products")
	products.Get("/", timeout.NewWithContext(ListProductsHandler(deps), 15*time.Second))
	products.Get("/slug/:slug", timeout.NewWithContext(GetProductBySlugHandler(deps), 15*time.Second))
	products.Get("/:id", timeout.NewWithContext(GetProductHandler(deps), 15*time.Second))
	products.Post("/", timeout.NewWithContext(CreateProductHandler(deps), 15*time.Second))
	products.Put("/:id", timeout.NewWithContext(UpdateProductHandler(deps), 15*time.Second))
	products.Delete("/:id", timeout.NewWithContext(DeleteProductHandler(deps), 15*time.Second))

	// GraphQL
	app.Post("/graphql", GraphQLHandler(deps))

	// API documentation (Swagger UI)
	SetupDocs(app)

	// WebSocket
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}
