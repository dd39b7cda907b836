// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline metrics
	activePipelines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "video_digest_active_pipelines",
		Help: "Number of pipeline runs currently in progress",
	})

	pipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_digest_pipeline_runs_total",
		Help: "Total number of pipeline runs by outcome",
	}, []string{"outcome"})

	stageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "video_digest_stage_duration_seconds",
		Help:    "Time spent in each pipeline stage",
		Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
	}, []string{"stage"})

	// Fetch metrics
	fetchAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_digest_fetch_attempts_total",
		Help: "Fetch strategy attempts by strategy and result",
	}, []string{"strategy", "result"})

	// Summary metrics
	summaries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_digest_summaries_total",
		Help: "Summaries produced by outcome",
	}, []string{"outcome"})

	// HTTP metrics
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_digest_http_requests_total",
		Help: "HTTP requests by matched route and status code",
	}, []string{"route", "code"})
)

// PipelineStarted marks one more run in flight.
func PipelineStarted() {
	activePipelines.Inc()
}

// PipelineFinished records the outcome of a run ("success" or a failed stage).
func PipelineFinished(outcome string) {
	activePipelines.Dec()
	pipelineRuns.WithLabelValues(outcome).Inc()
}

// ObserveStage records how long a stage took.
func ObserveStage(stage string, d time.Duration) {
	stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// FetchAttempt records one strategy attempt. result is "success",
// "resolve_failed", "transfer_failed" or "no_audio".
func FetchAttempt(strategy, result string) {
	fetchAttempts.WithLabelValues(strategy, result).Inc()
}

// Summary records a summarizer outcome.
func Summary(outcome string) {
	summaries.WithLabelValues(outcome).Inc()
}

// HTTPRequest counts one served request. route must come from a fixed set
// (the mux pattern), never from the raw URL.
func HTTPRequest(route, code string) {
	httpRequests.WithLabelValues(route, code).Inc()
}
