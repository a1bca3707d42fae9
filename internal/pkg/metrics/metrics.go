package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hyfac",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "hyfac",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Catalog metrics
	NearbySearches = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "catalog",
		Name:      "nearby_searches_total",
		Help:      "Total GPS nearby-store searches served",
	})

	StoresImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "import",
		Name:      "stores_imported_total",
		Help:      "Total stores created by the import pipeline",
	})

	StoresSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "import",
		Name:      "stores_skipped_total",
		Help:      "Total import rows skipped because the slug already exists",
	})

	ImportRowErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "import",
		Name:      "row_errors_total",
		Help:      "Total import rows that failed validation or persistence",
	})

	GeocodeRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "geocoder",
		Name:      "requests_total",
		Help:      "Total geocoding requests issued",
	})

	GeocodeFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "geocoder",
		Name:      "fallbacks_total",
		Help:      "Total geocoding attempts that fell back to table coordinates",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hyfac",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
