package holdings

import "context"

// Store persists bond positions. Same sentinel-error contract as the receipt
// store: duplicate id -> sentinel.ErrConflict.
type Store interface {
	Save(ctx context.Context, holding Holding) error
	// ListByWallet returns a wallet's positions, most recent purchase first.
	ListByWallet(ctx context.Context, walletAddress string) ([]Holding, error)
}
