// Package metrics holds the Prometheus instruments for the journal service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mindtracker/internal/models"
)

// Metrics is nil-safe: every Observe method is a no-op on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	EntriesCreated   *prometheus.CounterVec
	PromptsGenerated *prometheus.CounterVec
	FeedbackRecorded *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		EntriesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindtracker_entries_created_total",
				Help: "Journal entries stored, by classified mood",
			},
			[]string{"mood"},
		),
		PromptsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindtracker_prompts_generated_total",
				Help: "Journaling prompts served, by source (model or fallback)",
			},
			[]string{"source"},
		),
		FeedbackRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindtracker_prompt_feedback_total",
				Help: "Prompt feedback votes recorded",
			},
			[]string{"vote"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mindtracker_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mindtracker_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) ObserveEntry(mood models.Mood) {
	if m == nil {
		return
	}
	m.EntriesCreated.WithLabelValues(string(mood)).Inc()
}

func (m *Metrics) ObservePrompt(source models.PromptSource) {
	if m == nil {
		return
	}
	m.PromptsGenerated.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) ObserveFeedback(up bool) {
	if m == nil {
		return
	}
	vote := "down"
	if up {
		vote = "up"
	}
	m.FeedbackRecorded.WithLabelValues(vote).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request count and latency keyed by the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
