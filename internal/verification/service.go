package verification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"bondbuy/internal/audit"
	"bondbuy/internal/platform/metrics"
	dErrors "bondbuy/pkg/domain-errors"
	"bondbuy/pkg/platform/sentinel"
)

var tracer = otel.Tracer("bondbuy/verification")

// Service orchestrates the mint verification workflow:
// evaluate rules -> compose receipt -> record ledger reference -> persist.
// A FAILED verdict still persists; the receipt records the rejection, not
// just successful mints. Linking the external transaction is a separate
// step the caller drives after the on-chain transfer completes.
type Service struct {
	evaluator *Evaluator
	composer  *Composer
	ledger    Ledger
	store     Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditor   *audit.Publisher
}

func NewService(
	evaluator *Evaluator,
	composer *Composer,
	ledger Ledger,
	store Store,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	auditor *audit.Publisher,
) *Service {
	return &Service{
		evaluator: evaluator,
		composer:  composer,
		ledger:    ledger,
		store:     store,
		logger:    logger,
		metrics:   metrics,
		auditor:   auditor,
	}
}

// Verify runs the full workflow for one mint attempt. Success reflects
// persistence only: a rule rejection returns Success=true with
// Verified=false, while a store failure returns Success=false with no
// receipt id. A panic anywhere in evaluation or composition maps to an
// ERROR result instead of crashing the caller.
func (s *Service) Verify(ctx context.Context, input Input) (result Result) {
	ctx, span := tracer.Start(ctx, "verification.Verify")
	defer span.End()
	span.SetAttributes(
		attribute.String("bond.id", input.BondID),
		attribute.Float64("mint.units", input.Units),
	)

	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.ErrorContext(ctx, "verification panicked",
				"bond_id", input.BondID,
				"wallet_address", input.WalletAddress,
				"panic", rec,
			)
			result = Result{
				Success:  false,
				Verified: false,
				Status:   StatusError,
				Errors:   []string{fmt.Sprintf("verification failed unexpectedly: %v", rec)},
			}
			s.observe(string(StatusError), start)
		}
	}()

	verdict, ruleErrs := s.evaluator.Evaluate(input)

	receipt, err := s.composer.Compose(input, verdict, ruleErrs)
	if err != nil {
		s.logger.ErrorContext(ctx, "receipt composition failed", "bond_id", input.BondID, "error", err.Error())
		s.observe(string(StatusError), start)
		return Result{
			Success:  false,
			Verified: false,
			Status:   StatusError,
			Errors:   []string{"failed to compose receipt"},
		}
	}

	ref, err := s.ledger.RecordExecution(ctx, receipt)
	if err != nil {
		s.logger.ErrorContext(ctx, "ledger record failed", "receipt_id", receipt.ReceiptID, "error", err.Error())
		s.observe(string(StatusError), start)
		return Result{
			Success:  false,
			Verified: false,
			Status:   StatusError,
			Errors:   []string{"ledger unavailable"},
		}
	}
	receipt.ChainBlock = ref.Block
	receipt.ChainNetwork = ref.Network
	receipt.ChainExecutor = ref.Executor

	if err := s.store.Create(ctx, receipt); err != nil {
		reason := "failed to save receipt"
		if errors.Is(err, sentinel.ErrConflict) {
			reason = "receipt identifier already exists"
		}
		s.logger.ErrorContext(ctx, "receipt persistence failed",
			"receipt_id", receipt.ReceiptID,
			"wallet_address", input.WalletAddress,
			"error", err.Error(),
		)
		s.emit(ctx, audit.Event{
			WalletAddress: input.WalletAddress,
			ReceiptID:     receipt.ReceiptID,
			BondID:        input.BondID,
			Action:        audit.ActionReceiptPersist,
			Status:        "failed",
			Reason:        reason,
		})
		s.observe(string(receipt.Status), start)
		return Result{
			Success:  false,
			Verified: false,
			Status:   receipt.Status,
			Errors:   []string{reason},
		}
	}

	s.logger.InfoContext(ctx, "mint verification complete",
		"receipt_id", receipt.ReceiptID,
		"bond_id", input.BondID,
		"status", string(receipt.Status),
	)
	s.emit(ctx, audit.Event{
		WalletAddress: input.WalletAddress,
		ReceiptID:     receipt.ReceiptID,
		BondID:        input.BondID,
		Action:        audit.ActionMintVerification,
		Status:        string(receipt.Status),
		Reason:        firstOrEmpty(ruleErrs),
	})
	s.observe(string(receipt.Status), start)
	if s.metrics != nil {
		s.metrics.ReceiptsPersisted.Inc()
	}

	return Result{
		Success:   true,
		ReceiptID: receipt.ReceiptID,
		Verified:  receipt.Status == StatusVerified,
		Status:    receipt.Status,
		Errors:    ruleErrs,
	}
}

// AttachTransaction links the external transaction signature to a persisted
// receipt. Last-write-wins when called twice.
func (s *Service) AttachTransaction(ctx context.Context, receiptID, txHash string) error {
	ctx, span := tracer.Start(ctx, "verification.AttachTransaction")
	defer span.End()

	if receiptID == "" || txHash == "" {
		return dErrors.New(dErrors.CodeBadRequest, "receipt id and transaction hash are required")
	}

	if err := s.store.AttachExternalTx(ctx, receiptID, txHash); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "receipt not found")
		}
		s.logger.ErrorContext(ctx, "transaction link failed", "receipt_id", receiptID, "error", err.Error())
		return dErrors.Wrap(dErrors.CodeInternal, "failed to link transaction", err)
	}

	s.logger.InfoContext(ctx, "external transaction linked", "receipt_id", receiptID)
	s.emit(ctx, audit.Event{
		ReceiptID: receiptID,
		Action:    audit.ActionTxLinked,
		Status:    "confirmed",
	})
	if s.metrics != nil {
		s.metrics.TransactionsLinked.Inc()
	}
	return nil
}

// Receipt returns a persisted receipt for the read-only detail view.
func (s *Service) Receipt(ctx context.Context, receiptID string) (ExecutionReceipt, error) {
	receipt, err := s.store.Get(ctx, receiptID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return ExecutionReceipt{}, dErrors.New(dErrors.CodeNotFound, "receipt not found")
		}
		return ExecutionReceipt{}, dErrors.Wrap(dErrors.CodeInternal, "failed to load receipt", err)
	}
	return receipt, nil
}

// WalletReceipts returns a wallet's receipts, newest first.
func (s *Service) WalletReceipts(ctx context.Context, walletAddress string) ([]ExecutionReceipt, error) {
	receipts, err := s.store.ListByWallet(ctx, walletAddress)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to list receipts", err)
	}
	return receipts, nil
}

func (s *Service) observe(status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveVerification(status, time.Since(start))
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor != nil {
		s.auditor.Emit(ctx, event)
	}
}

func firstOrEmpty(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	return errs[0]
}
