package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts counts signup and login attempts by outcome.
	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafehub_auth_attempts_total",
		Help: "Total number of signup/login attempts by flow and result",
	}, []string{"flow", "result"})

	// LikeToggles counts like and unlike operations.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafehub_like_toggles_total",
		Help: "Total number of like/unlike operations by action",
	}, []string{"action"})

	// CacheLookups counts cache-aside lookups by key family and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafehub_cache_lookups_total",
		Help: "Total number of cache lookups by key family and result",
	}, []string{"family", "result"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cafehub_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)

// RecordAuth increments the auth attempt counter.
func RecordAuth(flow, result string) {
	AuthAttempts.WithLabelValues(flow, result).Inc()
}

// RecordLike increments the like toggle counter.
func RecordLike(action string) {
	LikeToggles.WithLabelValues(action).Inc()
}
