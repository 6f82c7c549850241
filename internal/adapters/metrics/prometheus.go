// Package metrics exports service counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"conferencecentral/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "conferencecentral"

type Prometheus struct {
	registry      *prometheus.Registry
	registrations *prometheus.CounterVec
	tasks         *prometheus.CounterVec
	cacheRefresh  *prometheus.CounterVec
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
}

// NewPrometheus registers the collectors on a fresh registry, together with the Go and process collectors.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_attempts_total",
			Help:      "Conference register/unregister attempts by outcome.",
		}, []string{"outcome"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_completed_total",
			Help:      "Background tasks finished, by task name and result.",
		}, []string{"task", "result"}),
		cacheRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_refreshes_total",
			Help:      "Cache entry refreshes, by key and whether the entry was set or cleared.",
		}, []string{"cache", "state"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	p.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.registrations, p.tasks, p.cacheRefresh, p.requests, p.latency,
	)
	return p
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Prometheus) RegistrationAttempt(outcome string) {
	p.registrations.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) TaskCompleted(task string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.tasks.WithLabelValues(task, result).Inc()
}

func (p *Prometheus) CacheRefreshed(cache string, populated bool) {
	state := "cleared"
	if populated {
		state = "set"
	}
	p.cacheRefresh.WithLabelValues(cache, state).Inc()
}

func (p *Prometheus) ObserveRequest(method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.latency.WithLabelValues(method, route).Observe(d.Seconds())
}

var _ domain.Metrics = (*Prometheus)(nil)

// Noop discards everything.
type Noop struct{}

func (Noop) RegistrationAttempt(string)                        {}
func (Noop) TaskCompleted(string, error)                       {}
func (Noop) CacheRefreshed(string, bool)                       {}
func (Noop) ObserveRequest(string, string, int, time.Duration) {}
