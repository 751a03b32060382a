package ledger

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	initializeInstruction   = "initialize"
	createRecordInstruction = "create_record"
	grantAccessInstruction  = "grant_access"
	revokeAccessInstruction = "revoke_access"

	okOutcome  = "ok"
	errOutcome = "error"
)

type instructionMetrics struct {
	outcomes *prom.CounterVec
}

func newInstructionMetrics() *instructionMetrics {
	outcomes := prom.NewCounterVec(
		prom.CounterOpts{
			Namespace: "healthrec",
			Subsystem: "ledger",
			Name:      "instruction_count",
			Help:      "Total number of ledger instructions processed.",
		},
		[]string{"instruction", "outcome"},
	)
	return &instructionMetrics{outcomes: outcomes}
}

func (im *instructionMetrics) observe(instruction string, err error) {
	outcome := okOutcome
	if err != nil {
		outcome = errOutcome
	}
	im.outcomes.WithLabelValues(instruction, outcome).Inc()
}

// RegisterMetrics registers the ledger's Prometheus collectors with the given registerer.
func (l *Ledger) RegisterMetrics(registerer prom.Registerer) error {
	return registerer.Register(l.metrics.outcomes)
}
