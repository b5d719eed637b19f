package holdings

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"bondbuy/internal/bonds"
	dErrors "bondbuy/pkg/domain-errors"
	"bondbuy/pkg/platform/sentinel"
)

// Catalog is the slice of the bond catalog this service needs: listing
// lookups and the post-mint supply reservation.
type Catalog interface {
	Get(ctx context.Context, bondID string) (bonds.Bond, error)
	Reserve(ctx context.Context, bondID string, units int64) error
}

// PurchaseRequest records a confirmed mint as a position. The tx hash comes
// from the external transaction the caller already completed.
type PurchaseRequest struct {
	WalletAddress  string  `json:"wallet_address"`
	BondID         string  `json:"bond_id"`
	Units          float64 `json:"units"`
	InvestedAmount float64 `json:"invested_amount"`
	TxHash         string  `json:"tx_hash"`
}

// Position is a holding with its simulated accrual at read time.
type Position struct {
	Holding
	AccruedYield float64 `json:"accrued_yield"`
}

// Service owns the holdings lifecycle: record a confirmed purchase, list a
// wallet's positions with live yield.
type Service struct {
	store   Store
	catalog Catalog
	logger  *slog.Logger
	clock   func() time.Time
}

func NewService(store Store, catalog Catalog, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		logger:  logger,
		clock:   time.Now,
	}
}

// WithClock overrides the service clock; used by tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// RecordPurchase saves a new position and moves the purchased units from the
// catalog's remaining supply.
func (s *Service) RecordPurchase(ctx context.Context, req PurchaseRequest) (Holding, error) {
	if req.WalletAddress == "" || req.BondID == "" || req.TxHash == "" {
		return Holding{}, dErrors.New(dErrors.CodeBadRequest, "wallet_address, bond_id and tx_hash are required")
	}
	if req.Units <= 0 || req.InvestedAmount <= 0 {
		return Holding{}, dErrors.New(dErrors.CodeBadRequest, "units and invested_amount must be positive")
	}

	bond, err := s.catalog.Get(ctx, req.BondID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Holding{}, dErrors.New(dErrors.CodeNotFound, "bond not found")
		}
		return Holding{}, dErrors.Wrap(dErrors.CodeInternal, "failed to load bond", err)
	}

	holding := Holding{
		ID:             uuid.NewString(),
		WalletAddress:  req.WalletAddress,
		BondID:         bond.ID,
		BondName:       bond.Name,
		Units:          req.Units,
		InvestedAmount: req.InvestedAmount,
		PurchaseDate:   s.clock().UTC(),
		APY:            bond.APY,
		MaturityDate:   bond.MaturityDate,
		TxHash:         req.TxHash,
	}

	if err := s.store.Save(ctx, holding); err != nil {
		return Holding{}, dErrors.Wrap(dErrors.CodeInternal, "failed to save holding", err)
	}

	if err := s.catalog.Reserve(ctx, bond.ID, int64(math.Ceil(req.Units))); err != nil {
		// The position is already durable; log the supply drift instead of
		// failing the caller.
		s.logger.WarnContext(ctx, "supply reservation failed after purchase",
			"bond_id", bond.ID,
			"holding_id", holding.ID,
			"error", err.Error(),
		)
	}

	s.logger.InfoContext(ctx, "holding recorded",
		"holding_id", holding.ID,
		"bond_id", bond.ID,
		"wallet_address", req.WalletAddress,
	)
	return holding, nil
}

// ListByWallet returns a wallet's positions with yield accrued up to now.
func (s *Service) ListByWallet(ctx context.Context, walletAddress string) ([]Position, error) {
	list, err := s.store.ListByWallet(ctx, walletAddress)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to list holdings", err)
	}

	now := s.clock()
	out := make([]Position, 0, len(list))
	for _, h := range list {
		out = append(out, Position{Holding: h, AccruedYield: h.AccruedYield(now)})
	}
	return out, nil
}
