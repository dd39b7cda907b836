package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns the routed handler wrapped in the middleware chain.
func (a *implAPI) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", a.handleRoot)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.Handle("POST /process", a.rateLimit(http.HandlerFunc(a.handleProcess)))
	mux.HandleFunc("GET /ui", a.handleUI)

	if a.metricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	return a.requestID(a.cors(a.instrument(mux)))
}
