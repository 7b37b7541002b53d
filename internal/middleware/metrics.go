package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelist_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})

	// CatalogRequests counts outbound movie catalog requests by operation and outcome.
	CatalogRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reelist_catalog_requests_total",
		Help: "Total number of outbound catalog requests by operation and outcome",
	}, []string{"operation", "outcome"})
)

// InitMetrics creates the Prometheus middleware for HTTP request metrics.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber.Handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
