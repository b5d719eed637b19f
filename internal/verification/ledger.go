package verification

import (
	"context"
	"fmt"
	"math/rand/v2"
)

// Ledger records a verification execution against a distributed ledger and
// returns the reference the receipt carries. The demo ships a simulated
// implementation; a real chain client slots in without touching the
// evaluator or composer.
type Ledger interface {
	RecordExecution(ctx context.Context, receipt ExecutionReceipt) (ChainReference, error)
}

// SimulatedLedger fabricates ledger references for the demo network. Block
// labels are pseudo-random and carry no meaning beyond looking plausible.
type SimulatedLedger struct {
	network  string
	executor string
}

func NewSimulatedLedger(network, executor string) *SimulatedLedger {
	return &SimulatedLedger{network: network, executor: executor}
}

func (l *SimulatedLedger) RecordExecution(_ context.Context, _ ExecutionReceipt) (ChainReference, error) {
	return ChainReference{
		Block:    fmt.Sprintf("DEMO-BLOCK-%d", rand.IntN(1_000_000)),
		Network:  l.network,
		Executor: l.executor,
	}, nil
}
