package verification

import "context"

// Store persists execution receipts. Implementations translate backend
// failures into sentinel errors so the service layer stays backend-agnostic:
// duplicate receipt id -> sentinel.ErrConflict, missing receipt ->
// sentinel.ErrNotFound.
type Store interface {
	// Create inserts a new immutable receipt.
	Create(ctx context.Context, receipt ExecutionReceipt) error
	// Get returns the receipt with the given identifier.
	Get(ctx context.Context, receiptID string) (ExecutionReceipt, error)
	// AttachExternalTx links an external transaction signature to a receipt
	// and marks it confirmed. Calling twice overwrites the hash
	// (last-write-wins).
	AttachExternalTx(ctx context.Context, receiptID, txHash string) error
	// ListByWallet returns a wallet's receipts, newest first.
	ListByWallet(ctx context.Context, walletAddress string) ([]ExecutionReceipt, error)
}
