// Package metrics exposes Prometheus counters for the client: outbound API
// calls, auth transitions and guard decisions. A nil *Metrics is valid and
// records nothing.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry    *prometheus.Registry
	handler     http.Handler
	apiRequests *prometheus.CounterVec
	auth        *prometheus.CounterVec
	navigations *prometheus.CounterVec
}

// New creates the metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "midpoint_api_requests_total",
		Help: "Outbound API calls by operation and HTTP status (0 = transport failure).",
	}, []string{"op", "code"})
	auth := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "midpoint_auth_transitions_total",
		Help: "Session manager actions by outcome.",
	}, []string{"action", "result"})
	navigations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "midpoint_navigations_total",
		Help: "Route transitions by route name and guard outcome.",
	}, []string{"route", "outcome"})
	registry.MustRegister(apiRequests, auth, navigations)

	return &Metrics{
		registry:    registry,
		handler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		apiRequests: apiRequests,
		auth:        auth,
		navigations: navigations,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

func (m *Metrics) ObserveRequest(op string, status int) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(op, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveAuth(action, result string) {
	if m == nil {
		return
	}
	m.auth.WithLabelValues(action, result).Inc()
}

func (m *Metrics) ObserveNavigation(route, outcome string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(route, outcome).Inc()
}
