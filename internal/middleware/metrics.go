package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis failures by subsystem (cache, ratelimit, auth).
// Cache and rate limiting degrade gracefully when Redis is down, so this
// counter is the main signal that the store is unhealthy.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "glimpse_redis_errors_total",
	Help: "Total number of Redis errors by subsystem",
}, []string{"subsystem"})

var (
	promOnce  sync.Once
	fiberProm *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP metrics collector. The collector
// registers itself on the default registry, so it is created once per process
// no matter how many servers are constructed.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		fiberProm = fiberprometheus.New(serviceName)
	})
	return fiberProm
}

// MetricsMiddleware returns the request instrumentation handler for the
// given collector.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
