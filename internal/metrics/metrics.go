// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_api_requests_total",
			Help: "Total number of API requests by endpoint and outcome",
		},
		[]string{"endpoint", "success"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adscout_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"endpoint"},
	)

	SearchQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_search_queries_total",
			Help: "Total number of search queries by outcome",
		},
		[]string{"outcome"},
	)

	SearchQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adscout_search_query_duration_seconds",
			Help:    "Duration of individual search queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ScrapeRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_scrape_runs_total",
			Help: "Total number of research runs by subject type and data quality",
		},
		[]string{"type", "quality"},
	)

	MediaGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adscout_media_generations_total",
			Help: "Total number of media generations by type and outcome",
		},
		[]string{"type", "success"},
	)
)

// ObserveQuery records one executed search query. Its signature matches
// the pipeline's per-query observer.
func ObserveQuery(_ string, elapsed time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	SearchQueries.WithLabelValues(outcome).Inc()
	SearchQueryDuration.Observe(elapsed.Seconds())
}

// ObserveRequest records one API request.
func ObserveRequest(endpoint string, success bool, elapsed time.Duration) {
	APIRequests.WithLabelValues(endpoint, strconv.FormatBool(success)).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveScrape records a finished research run. Failed runs use the
// quality label "none".
func ObserveScrape(subjectType, quality string) {
	if quality == "" {
		quality = "none"
	}
	ScrapeRuns.WithLabelValues(subjectType, quality).Inc()
}

// ObserveMedia records a finished media generation.
func ObserveMedia(mediaType string, success bool) {
	MediaGenerations.WithLabelValues(mediaType, strconv.FormatBool(success)).Inc()
}
