package verification

import (
	"fmt"
	"time"
)

// Clock supplies the evaluation-time instant; injected for testability.
type Clock func() time.Time

// Evaluator applies the eligibility rules to a mint attempt. This is pure
// domain logic - no I/O, no side effects. Rules run in a fixed order and
// every rule is evaluated even after an earlier one fails, so the receipt
// records the complete verdict.
type Evaluator struct {
	policy Policy
	clock  Clock
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) EvaluatorOption {
	return func(e *Evaluator) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// NewEvaluator constructs an Evaluator with the given policy thresholds.
func NewEvaluator(policy Policy, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		policy: policy,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Evaluate checks all six rules and returns the verdict plus one message per
// failed rule, in rule order.
func (e *Evaluator) Evaluate(input Input) (RuleVerdict, []string) {
	var verdict RuleVerdict
	var errs []string

	// Rule 1: bond must be active.
	if input.Bond.ActiveStatus {
		verdict.BondActive = true
	} else {
		errs = append(errs, "Bond is not active")
	}

	// Rule 2: enough unissued supply to cover the order.
	remaining := input.Bond.TotalSupply - input.Bond.IssuedSupply
	if float64(remaining) >= input.Units {
		verdict.SupplyAvailable = true
	} else {
		errs = append(errs, fmt.Sprintf("Insufficient supply: %d units remaining", remaining))
	}

	// Rule 3: APY within policy bounds.
	if input.Bond.APYBasisPoints >= e.policy.APYMinBasisPoints && input.Bond.APYBasisPoints <= e.policy.APYMaxBasisPoints {
		verdict.APYValid = true
	} else {
		errs = append(errs, fmt.Sprintf("Invalid APY: %d basis points", input.Bond.APYBasisPoints))
	}

	// Rule 4: maturity strictly in the future.
	if input.Bond.MaturityDate.After(e.clock()) {
		verdict.MaturityFuture = true
	} else {
		errs = append(errs, "Bond maturity date has passed")
	}

	// Rule 5: order meets the minimum investment.
	if input.InvestedAmount >= e.policy.MinimumInvestment {
		verdict.MinimumInvestmentMet = true
	} else {
		errs = append(errs, fmt.Sprintf("Investment below minimum: ₹%v", input.InvestedAmount))
	}

	// Rule 6: wallet address length heuristic.
	if len(input.WalletAddress) >= e.policy.MinWalletAddressLength {
		verdict.WalletValid = true
	} else {
		errs = append(errs, "Invalid wallet address")
	}

	return verdict, errs
}
