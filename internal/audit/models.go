package audit

import "time"

// Event is emitted from domain logic to capture key actions in the mint
// lifecycle. Keep it transport-agnostic so sinks can fan out.
type Event struct {
	Timestamp     time.Time `json:"timestamp"`
	WalletAddress string    `json:"wallet_address"`
	ReceiptID     string    `json:"receipt_id,omitempty"`
	BondID        string    `json:"bond_id,omitempty"`
	Action        string    `json:"action"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason,omitempty"`
}

// Actions recorded by the verification workflow.
const (
	ActionMintVerification = "mint_verification"
	ActionTxLinked         = "tx_linked"
	ActionReceiptPersist   = "receipt_persist"
)
