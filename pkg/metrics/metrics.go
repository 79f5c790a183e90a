// Package metrics exposes the prometheus counters of herald.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "herald"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

var deliveryBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// Metrics collects the counters of event dispatch and status delivery.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	events          *prometheus.CounterVec
	publications    *prometheus.CounterVec
	deliveries      *prometheus.CounterVec
	deliveryLatency *prometheus.HistogramVec
}

// New registers the collectors with registerer, prometheus.DefaultRegisterer if nil.
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "build_events_total",
		Help:      "Build lifecycle events dispatched by kind and outcome.",
	}, []string{"kind", "outcome"})
	publications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publications_total",
		Help:      "Publisher callbacks by publisher and outcome.",
	}, []string{"publisher", "outcome"})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_deliveries_total",
		Help:      "Commit status deliveries by driver, state and outcome.",
	}, []string{"driver", "state", "outcome"})
	deliveryLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "status_delivery_duration_seconds",
		Help:      "Latency of commit status deliveries including retries.",
		Buckets:   deliveryBuckets,
	}, []string{"driver"})

	return &Metrics{
		events:          registerCounterVec(registerer, events),
		publications:    registerCounterVec(registerer, publications),
		deliveries:      registerCounterVec(registerer, deliveries),
		deliveryLatency: registerHistogramVec(registerer, deliveryLatency),
	}
}

// Handler serves the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncEvent counts a dispatched lifecycle event.
func (m *Metrics) IncEvent(kind, outcome string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind, outcome).Inc()
}

// IncPublication counts a publisher callback.
func (m *Metrics) IncPublication(publisher, outcome string) {
	if m == nil {
		return
	}
	m.publications.WithLabelValues(publisher, outcome).Inc()
}

// ObserveDelivery records a commit status delivery.
func (m *Metrics) ObserveDelivery(driver, state, outcome string, took time.Duration) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(driver, state, outcome).Inc()
	if outcome != OutcomeSkipped {
		m.deliveryLatency.WithLabelValues(driver).Observe(took.Seconds())
	}
}

func registerCounterVec(registerer prometheus.Registerer, counter *prometheus.CounterVec) *prometheus.CounterVec {
	if err := registerer.Register(counter); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return counter
}

func registerHistogramVec(registerer prometheus.Registerer, histogram *prometheus.HistogramVec) *prometheus.HistogramVec {
	if err := registerer.Register(histogram); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing
			}
		}
	}
	return histogram
}
