package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VotesRecorded counts votes successfully inserted.
	VotesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newswire_votes_recorded_total",
		Help: "Total number of votes recorded",
	})

	// DuplicateVotes counts vote attempts ignored because the user already voted.
	DuplicateVotes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newswire_votes_duplicate_total",
		Help: "Total number of duplicate vote attempts ignored",
	})

	// RedisErrors counts Redis command failures by operation.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "newswire_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// InitMetrics creates the fiberprometheus middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
