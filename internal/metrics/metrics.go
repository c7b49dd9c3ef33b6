// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/settleup/internal/calculator"
)

const namespace = "settleup"

// Settlement outcomes, used as the "outcome" label.
const (
	OutcomeOK                 = "ok"
	OutcomeInvalid            = "invalid"
	OutcomeInvariantViolation = "invariant_violation"
	OutcomeTooLarge           = "too_large"
	OutcomeError              = "error"
)

// Metrics groups every collector. Create one per registry with New.
type Metrics struct {
	TransactionsRecorded prometheus.Counter
	LedgerResets         prometheus.Counter
	Settlements          *prometheus.CounterVec
	PlanTransfers        prometheus.Histogram
	SettleDuration       prometheus.Histogram
	RPCRequests          *prometheus.CounterVec
	RPCDuration          *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		TransactionsRecorded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_recorded_total",
			Help:      "Transactions appended to ledgers.",
		}),
		LedgerResets: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_resets_total",
			Help:      "Ledgers cleared with ResetLedger.",
		}),
		Settlements: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settlements_total",
			Help:      "Settlement computations by outcome.",
		}, []string{"outcome"}),
		PlanTransfers: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "plan_transfers",
			Help:      "Number of transfers per computed settlement plan.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		SettleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settle_duration_seconds",
			Help:      "Time spent aggregating and settling a ledger.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		RPCRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
}

// ObserveSettlement records one settlement computation.
func (m *Metrics) ObserveSettlement(transfers int, took time.Duration, err error) {
	m.Settlements.WithLabelValues(Outcome(err)).Inc()
	m.SettleDuration.Observe(took.Seconds())
	if err == nil {
		m.PlanTransfers.Observe(float64(transfers))
	}
}

// Outcome classifies a settlement error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, calculator.ErrValidation):
		return OutcomeInvalid
	case errors.Is(err, calculator.ErrInvariantViolation):
		return OutcomeInvariantViolation
	case errors.Is(err, calculator.ErrTooManyParticipants):
		return OutcomeTooLarge
	default:
		return OutcomeError
	}
}

// Handler exposes the gatherer's metrics in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
