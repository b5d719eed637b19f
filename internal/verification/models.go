package verification

import "time"

// BondMetadata is the issuer-side state a mint attempt is checked against.
// The caller owns it; the evaluator never mutates it.
type BondMetadata struct {
	ActiveStatus   bool      `json:"active_status"`
	TotalSupply    int64     `json:"total_supply"`
	IssuedSupply   int64     `json:"issued_supply"`
	APYBasisPoints int64     `json:"apy_basis_points"`
	MaturityDate   time.Time `json:"maturity_date"`
}

// Input carries one mint attempt. Constructed fresh per attempt; never
// persisted itself, only denormalized onto the receipt.
type Input struct {
	WalletAddress  string       `json:"wallet_address"`
	BondID         string       `json:"bond_id"`
	BondName       string       `json:"bond_name"`
	Units          float64      `json:"units"`
	InvestedAmount float64      `json:"invested_amount"`
	Bond           BondMetadata `json:"bond_metadata"`
}

// RuleVerdict records the outcome of every eligibility rule, in evaluation
// order. Derived once, never mutated.
type RuleVerdict struct {
	BondActive           bool `json:"bond_active"`
	SupplyAvailable      bool `json:"supply_available"`
	APYValid             bool `json:"apy_valid"`
	MaturityFuture       bool `json:"maturity_future"`
	MinimumInvestmentMet bool `json:"minimum_investment_met"`
	WalletValid          bool `json:"wallet_valid"`
}

// AllPassed reports whether every rule held.
func (v RuleVerdict) AllPassed() bool {
	return v.BondActive &&
		v.SupplyAvailable &&
		v.APYValid &&
		v.MaturityFuture &&
		v.MinimumInvestmentMet &&
		v.WalletValid
}

// ExecutionStatus classifies the terminal state of one verification run.
type ExecutionStatus string

const (
	StatusVerified ExecutionStatus = "VERIFIED"
	StatusFailed   ExecutionStatus = "FAILED"
	StatusError    ExecutionStatus = "ERROR"
)

// ChainReference points at the simulated ledger write backing a receipt.
// Opaque pass-through values; nothing validates them.
type ChainReference struct {
	Block    string `json:"block"`
	Network  string `json:"network"`
	Executor string `json:"executor"`
}

// ExecutionReceipt attests that the eligibility rules were evaluated for one
// mint attempt. Immutable after creation except for the external transaction
// link, which is attached at most once in the normal flow.
type ExecutionReceipt struct {
	ReceiptID      string          `json:"receipt_id"`
	ReceiptHash    string          `json:"receipt_hash"`
	WalletAddress  string          `json:"wallet_address"`
	BondID         string          `json:"bond_id"`
	BondName       string          `json:"bond_name"`
	Units          float64         `json:"units"`
	InvestedAmount float64         `json:"invested_amount"`
	Rules          RuleVerdict     `json:"rules_verified"`
	Status         ExecutionStatus `json:"execution_status"`
	Errors         []string        `json:"verification_errors,omitempty"`

	ChainBlock    string `json:"chain_block"`
	ChainNetwork  string `json:"chain_network"`
	ChainExecutor string `json:"chain_executor"`

	ExternalTxHash      *string `json:"external_tx_hash"`
	ExternalTxConfirmed bool    `json:"external_tx_confirmed"`

	CreatedAt time.Time `json:"created_at"`
}

// clone returns a deep copy so stores never leak shared slices or pointers.
func (r ExecutionReceipt) clone() ExecutionReceipt {
	out := r
	if r.Errors != nil {
		out.Errors = append([]string(nil), r.Errors...)
	}
	if r.ExternalTxHash != nil {
		tx := *r.ExternalTxHash
		out.ExternalTxHash = &tx
	}
	return out
}

// Result is what the workflow hands back to callers. Success reflects
// persistence only; Verified reflects the rule verdict. Callers must branch
// on Verified before issuing the external transaction.
type Result struct {
	Success   bool            `json:"success"`
	ReceiptID string          `json:"receipt_id,omitempty"`
	Verified  bool            `json:"verified"`
	Status    ExecutionStatus `json:"execution_status"`
	Errors    []string        `json:"errors,omitempty"`
}
