package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder metrics
var (
	// PomodorosStarted tracks timer entries opened via the start endpoint
	PomodorosStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pomodoros_started_total",
			Help: "Total timer entries opened",
		},
	)

	// PomodorosCompleted tracks timer entries closed via the end endpoint
	PomodorosCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pomodoros_completed_total",
			Help: "Total timer entries closed",
		},
	)

	// LoginAttempts tracks login attempts by outcome (success/failure)
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "login_attempts_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// Stats metrics
var (
	// StatsRequests tracks per-user stats lookups by outcome (ok/unknown_user)
	StatsRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stats_requests_total",
			Help: "Total per-user stats lookups by outcome",
		},
		[]string{"outcome"},
	)

	// StatsQueryDuration tracks how long building a user stats payload takes
	StatsQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stats_query_duration_seconds",
			Help:    "Duration of building a full user stats payload",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
	)
)
