package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	EvidenceIntakes    prometheus.Counter
	EvidenceRemovals   prometheus.Counter
	TransfersRequested prometheus.Counter
	TransfersApproved  prometheus.Counter
	TransfersRejected  prometheus.Counter
	DecisionConflicts  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EvidenceIntakes: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custodia_evidence_intakes_total",
			Help: "Total number of evidence items taken into custody",
		}),
		EvidenceRemovals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custodia_evidence_removals_total",
			Help: "Total number of evidence items deleted",
		}),
		TransfersRequested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custodia_transfers_requested_total",
			Help: "Total number of custody transfer requests opened",
		}),
		TransfersApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custodia_transfers_approved_total",
			Help: "Total number of custody transfers approved",
		}),
		TransfersRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custodia_transfers_rejected_total",
			Help: "Total number of custody transfers rejected",
		}),
		DecisionConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custodia_transfer_decision_conflicts_total",
			Help: "Total number of decisions rejected because the transfer was already terminal",
		}),
	}
}

func (m *Metrics) IncrementEvidenceIntakes() {
	if m != nil {
		m.EvidenceIntakes.Inc()
	}
}

func (m *Metrics) IncrementEvidenceRemovals() {
	if m != nil {
		m.EvidenceRemovals.Inc()
	}
}

func (m *Metrics) IncrementTransfersRequested() {
	if m != nil {
		m.TransfersRequested.Inc()
	}
}

func (m *Metrics) IncrementTransfersApproved() {
	if m != nil {
		m.TransfersApproved.Inc()
	}
}

func (m *Metrics) IncrementTransfersRejected() {
	if m != nil {
		m.TransfersRejected.Inc()
	}
}

func (m *Metrics) IncrementDecisionConflicts() {
	if m != nil {
		m.DecisionConflicts.Inc()
	}
}
