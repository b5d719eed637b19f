package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bondbuy/internal/holdings"
	"bondbuy/internal/verification"
)

const testWallet = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"

type stubHoldings struct {
	positions []holdings.Position
	err       error
}

func (s stubHoldings) ListByWallet(context.Context, string) ([]holdings.Position, error) {
	return s.positions, s.err
}

type stubReceipts struct {
	receipts []verification.ExecutionReceipt
	err      error
}

func (s stubReceipts) WalletReceipts(context.Context, string) ([]verification.ExecutionReceipt, error) {
	return s.receipts, s.err
}

func TestSummarize(t *testing.T) {
	positions := []holdings.Position{
		{Holding: holdings.Holding{ID: "h-1", InvestedAmount: 1000}, AccruedYield: 71.8},
		{Holding: holdings.Holding{ID: "h-2", InvestedAmount: 500}, AccruedYield: 18.6},
	}
	receipts := []verification.ExecutionReceipt{
		{ReceiptID: "WEIL-1-AAAAAAAA", Status: verification.StatusVerified},
		{ReceiptID: "WEIL-2-BBBBBBBB", Status: verification.StatusVerified},
		{ReceiptID: "WEIL-3-CCCCCCCC", Status: verification.StatusFailed},
	}

	svc := NewService(stubHoldings{positions: positions}, stubReceipts{receipts: receipts})

	summary, err := svc.Summarize(context.Background(), testWallet)
	require.NoError(t, err)

	assert.Equal(t, testWallet, summary.WalletAddress)
	assert.Equal(t, positions, summary.Positions)
	assert.Equal(t, receipts, summary.Receipts)
	assert.Equal(t, 2, summary.PositionCount)
	assert.InDelta(t, 1500, summary.TotalInvested, 0.001)
	assert.InDelta(t, 90.4, summary.TotalAccruedYield, 0.001)
	assert.Equal(t, 2, summary.VerifiedMintCount)
	assert.Equal(t, 1, summary.RejectedMintCount)
	assert.WithinDuration(t, time.Now(), summary.GeneratedAt, time.Minute)
}

func TestSummarizeEmptyWallet(t *testing.T) {
	svc := NewService(stubHoldings{}, stubReceipts{})

	summary, err := svc.Summarize(context.Background(), testWallet)
	require.NoError(t, err)

	// Nil slices normalize to empty so the JSON payload is always arrays.
	assert.NotNil(t, summary.Positions)
	assert.NotNil(t, summary.Receipts)
	assert.Empty(t, summary.Positions)
	assert.Empty(t, summary.Receipts)
	assert.Zero(t, summary.TotalInvested)
	assert.Zero(t, summary.VerifiedMintCount)
}

func TestSummarizePropagatesErrors(t *testing.T) {
	t.Run("holdings read fails", func(t *testing.T) {
		svc := NewService(stubHoldings{err: errors.New("db down")}, stubReceipts{})
		_, err := svc.Summarize(context.Background(), testWallet)
		assert.EqualError(t, err, "db down")
	})

	t.Run("receipts read fails", func(t *testing.T) {
		svc := NewService(stubHoldings{}, stubReceipts{err: errors.New("db down")})
		_, err := svc.Summarize(context.Background(), testWallet)
		assert.EqualError(t, err, "db down")
	})
}
