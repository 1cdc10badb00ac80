package services

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess           = "success"
	OutcomeValidationError   = "validation_error"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeConflict          = "conflict"
	OutcomeError             = "error"
)

// CheckoutMetrics keeps checkout and HTTP counters for the /metrics endpoint.
type CheckoutMetrics struct {
	Checkouts    *prometheus.CounterVec
	Duration     prometheus.Histogram
	HTTPRequests *prometheus.CounterVec
}

// NewCheckoutMetrics registers the collectors on reg.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	m := &CheckoutMetrics{
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "checkout_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pos",
			Name:      "checkout_duration_seconds",
			Help:      "Time spent in the checkout transaction.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pos",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.Checkouts, m.Duration, m.HTTPRequests)
	return m
}

// Observe records one checkout attempt. Safe on a nil receiver.
func (m *CheckoutMetrics) Observe(err error, took time.Duration) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(CheckoutOutcome(err)).Inc()
	m.Duration.Observe(took.Seconds())
}

// CheckoutOutcome classifies a checkout result.
func CheckoutOutcome(err error) string {
	var (
		verr *ValidationError
		serr *InsufficientStockError
		cerr *ConflictError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &verr):
		return OutcomeValidationError
	case errors.As(err, &serr):
		return OutcomeInsufficientStock
	case errors.As(err, &cerr):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
