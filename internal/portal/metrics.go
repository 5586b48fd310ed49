package portal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// pageViews counts page shell renders by page state.
	pageViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aigency",
		Subsystem: "portal",
		Name:      "page_views_total",
		Help:      "Page renders by page state.",
	}, []string{"page"})

	// dataFetches counts backend collection loads by collection and outcome.
	dataFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aigency",
		Subsystem: "portal",
		Name:      "data_fetches_total",
		Help:      "Backend collection loads by collection and outcome.",
	}, []string{"collection", "outcome"})

	// fetchDuration tracks backend load latency per collection.
	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aigency",
		Subsystem: "portal",
		Name:      "data_fetch_duration_seconds",
		Help:      "Backend collection load duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"collection"})

	// loginAttempts counts sign-in attempts by portal and outcome.
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aigency",
		Subsystem: "portal",
		Name:      "login_attempts_total",
		Help:      "Sign-in attempts by portal and outcome.",
	}, []string{"portal", "outcome"})
)
