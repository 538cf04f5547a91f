// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewworld_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reviewworld_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SubmissionsTotal counts user submissions by entity kind.
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewworld_submissions_total",
		Help: "Total number of user submissions by entity kind",
	}, []string{"kind"})

	// ModerationDecisions counts moderation decisions by kind and outcome.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewworld_moderation_decisions_total",
		Help: "Total number of moderation decisions by entity kind and outcome",
	}, []string{"kind", "status"})

	// ReviewsWritten counts review create/update/delete operations.
	ReviewsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewworld_reviews_written_total",
		Help: "Total number of review write operations by type",
	}, []string{"operation"})

	// ReportsFiled counts filed reports by reason code.
	ReportsFiled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewworld_reports_filed_total",
		Help: "Total number of reports filed by reason code",
	}, []string{"reason"})

	// StatsCacheLookups counts stats cache hits and misses.
	StatsCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reviewworld_stats_cache_lookups_total",
		Help: "Total number of stats cache lookups by result",
	}, []string{"result"})
)

