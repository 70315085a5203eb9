package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so several servers (tests) can coexist.
type Metrics struct {
	Registry *prometheus.Registry

	inFlight           prometheus.Gauge
	requests           *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	entriesCreated     prometheus.Counter
	validationFailures prometheus.Counter
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "guestbook",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "guestbook",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "guestbook",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"method", "path"}),
		entriesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guestbook",
			Name:      "entries_created_total",
			Help:      "Entries accepted and stored.",
		}),
		validationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "guestbook",
			Name:      "entry_validation_failures_total",
			Help:      "Submissions rejected for a blank message.",
		}),
	}

	m.Registry.MustRegister(
		m.inFlight, m.requests, m.duration, m.entriesCreated, m.validationFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := wrapRecorder(w)
		start := time.Now()

		m.inFlight.Inc()
		defer m.inFlight.Dec()

		next.ServeHTTP(rec, r)

		path := canonicalPath(r.URL.Path)
		method := strings.ToUpper(r.Method)
		m.requests.WithLabelValues(method, path, strconv.Itoa(rec.status)).Inc()
		m.duration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	})
}

// canonicalPath folds static asset paths into one label value.
func canonicalPath(p string) string {
	switch p {
	case "/api/entries", "/healthz", "/metrics":
		return p
	}
	return "static"
}
