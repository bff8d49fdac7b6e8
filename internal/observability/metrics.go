package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "glimpse_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostsCreatedTotal counts posts created through the API.
	PostsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glimpse_posts_created_total",
		Help: "Total number of posts created",
	})

	// MessagesSentTotal counts direct messages sent through the API.
	MessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glimpse_messages_sent_total",
		Help: "Total number of direct messages sent",
	})

	// FollowTogglesTotal counts follow toggles by resulting action.
	FollowTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glimpse_follow_toggles_total",
		Help: "Total number of follow toggles by action (follow/unfollow)",
	}, []string{"action"})

	// UserCascadeDeleteDuration records how long full account removals take.
	// Account removal runs a multi-table transaction, so it is the slowest
	// write path in the system and worth watching on its own.
	UserCascadeDeleteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "glimpse_user_cascade_delete_seconds",
		Help:    "Duration of full user account removal in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// TrackQuery records query latency when the returned function runs, so it
// composes with defer at the top of a repository method.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
