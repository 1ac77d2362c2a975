// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// JobsPosted counts successfully created job postings by type.
	JobsPosted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_jobs_posted_total",
		Help: "Total number of job postings created",
	}, []string{"job_type"})

	// ApplicationsSubmitted counts applications, split by whether a resume was attached.
	ApplicationsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_applications_submitted_total",
		Help: "Total number of applications submitted",
	}, []string{"with_resume"})

	// ApplicationStatusChanges counts status updates by target status.
	ApplicationStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_application_status_changes_total",
		Help: "Total number of application status updates",
	}, []string{"status"})

	// AuthEvents counts register/login/logout outcomes.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_auth_events_total",
		Help: "Authentication events by action and outcome",
	}, []string{"action", "outcome"})

	// CacheLookups counts cache-aside lookups by backend and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_cache_lookups_total",
		Help: "Cache lookups by backend and result",
	}, []string{"backend", "result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

const queryStartKey = "observability:query_start"

// RegisterQueryMetrics installs GORM callbacks that feed DatabaseQueryLatency.
func RegisterQueryMetrics(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			v, ok := tx.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			start, ok := v.(time.Time)
			if !ok {
				return
			}
			table := tx.Statement.Table
			if table == "" {
				table = "unknown"
			}
			DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
		}
	}

	cb := db.Callback()
	steps := []struct {
		name string
		err  error
	}{
		{"create:before", cb.Create().Before("gorm:create").Register("metrics:before_create", before)},
		{"create:after", cb.Create().After("gorm:create").Register("metrics:after_create", after("create"))},
		{"query:before", cb.Query().Before("gorm:query").Register("metrics:before_query", before)},
		{"query:after", cb.Query().After("gorm:query").Register("metrics:after_query", after("query"))},
		{"update:before", cb.Update().Before("gorm:update").Register("metrics:before_update", before)},
		{"update:after", cb.Update().After("gorm:update").Register("metrics:after_update", after("update"))},
		{"delete:before", cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before)},
		{"delete:after", cb.Delete().After("gorm:delete").Register("metrics:after_delete", after("delete"))},
		{"row:before", cb.Row().Before("gorm:row").Register("metrics:before_row", before)},
		{"row:after", cb.Row().After("gorm:row").Register("metrics:after_row", after("row"))},
	}
	for _, step := range steps {
		if step.err != nil {
			return step.err
		}
	}
	return nil
}
