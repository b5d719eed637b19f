package portfolio

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"bondbuy/internal/holdings"
	"bondbuy/internal/verification"
)

// HoldingsReader is the slice of the holdings service the summary needs.
type HoldingsReader interface {
	ListByWallet(ctx context.Context, walletAddress string) ([]holdings.Position, error)
}

// ReceiptsReader is the slice of the verification service the summary needs.
type ReceiptsReader interface {
	WalletReceipts(ctx context.Context, walletAddress string) ([]verification.ExecutionReceipt, error)
}

// Summary is the dashboard view of one wallet: positions, receipts, and the
// simulated accrual totals.
type Summary struct {
	WalletAddress      string                           `json:"wallet_address"`
	Positions          []holdings.Position              `json:"positions"`
	Receipts           []verification.ExecutionReceipt  `json:"receipts"`
	TotalInvested      float64                          `json:"total_invested"`
	TotalAccruedYield  float64                          `json:"total_accrued_yield"`
	PositionCount      int                              `json:"position_count"`
	VerifiedMintCount  int                              `json:"verified_mint_count"`
	RejectedMintCount  int                              `json:"rejected_mint_count"`
	GeneratedAt        time.Time                        `json:"generated_at"`
}

// Service assembles the portfolio read model. Holdings and receipts come
// from independent stores, so both reads run concurrently with shared
// cancellation.
type Service struct {
	holdings HoldingsReader
	receipts ReceiptsReader
	clock    func() time.Time
}

func NewService(holdings HoldingsReader, receipts ReceiptsReader) *Service {
	return &Service{holdings: holdings, receipts: receipts, clock: time.Now}
}

// Summarize gathers one wallet's full portfolio view.
func (s *Service) Summarize(ctx context.Context, walletAddress string) (Summary, error) {
	g, ctx := errgroup.WithContext(ctx)

	var positions []holdings.Position
	var receipts []verification.ExecutionReceipt

	g.Go(func() error {
		var err error
		positions, err = s.holdings.ListByWallet(ctx, walletAddress)
		return err
	})
	g.Go(func() error {
		var err error
		receipts, err = s.receipts.WalletReceipts(ctx, walletAddress)
		return err
	})

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		WalletAddress: walletAddress,
		Positions:     positions,
		Receipts:      receipts,
		PositionCount: len(positions),
		GeneratedAt:   s.clock().UTC(),
	}
	if summary.Positions == nil {
		summary.Positions = []holdings.Position{}
	}
	if summary.Receipts == nil {
		summary.Receipts = []verification.ExecutionReceipt{}
	}

	for _, p := range positions {
		summary.TotalInvested += p.InvestedAmount
		summary.TotalAccruedYield += p.AccruedYield
	}
	for _, r := range receipts {
		switch r.Status {
		case verification.StatusVerified:
			summary.VerifiedMintCount++
		case verification.StatusFailed:
			summary.RejectedMintCount++
		}
	}

	return summary, nil
}
