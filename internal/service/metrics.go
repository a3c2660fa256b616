package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts reconciliation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	reconciliations *prometheus.CounterVec
}

// NewMetrics registers the service collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reconciliations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_reconciliations_total",
				Help: "Payment updates by outcome.",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(m.reconciliations)
	return m
}

func (m *Metrics) observeReconciliation(resp *Response, err error) {
	if m == nil {
		return
	}
	m.reconciliations.WithLabelValues(outcomeLabel(resp, err)).Inc()
}

func outcomeLabel(resp *Response, err error) string {
	switch {
	case err != nil:
		return "error"
	case resp == nil:
		return "unknown"
	case resp.Success:
		return "applied"
	case resp.Outcome == OutcomeNotFound:
		return "not_found"
	default:
		return "rejected"
	}
}
