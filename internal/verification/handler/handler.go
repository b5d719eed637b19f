package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bondbuy/internal/platform/middleware"
	"bondbuy/internal/verification"
	dErrors "bondbuy/pkg/domain-errors"
	"bondbuy/pkg/platform/httputil"
)

// Service defines the verification operations the transport layer needs.
type Service interface {
	Verify(ctx context.Context, input verification.Input) verification.Result
	AttachTransaction(ctx context.Context, receiptID, txHash string) error
	Receipt(ctx context.Context, receiptID string) (verification.ExecutionReceipt, error)
	WalletReceipts(ctx context.Context, walletAddress string) ([]verification.ExecutionReceipt, error)
}

// Handler exposes the verification workflow over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the verification routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify", h.handleVerify)
	r.Get("/receipts/{receiptID}", h.handleGetReceipt)
	r.Post("/receipts/{receiptID}/transaction", h.handleAttachTransaction)
	r.Get("/wallets/{walletAddress}/receipts", h.handleWalletReceipts)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input verification.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if input.WalletAddress == "" || input.BondID == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "wallet_address and bond_id are required"))
		return
	}
	if input.Units <= 0 || input.InvestedAmount <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "units and invested_amount must be positive"))
		return
	}

	result := h.service.Verify(ctx, input)
	if !result.Success {
		h.logger.WarnContext(ctx, "verification workflow did not persist",
			"request_id", middleware.GetRequestID(ctx),
			"bond_id", input.BondID,
			"status", string(result.Status),
		)
	}

	// The result is the contract either way; persistence failures surface in
	// the payload, not the status line.
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	receiptID := chi.URLParam(r, "receiptID")

	receipt, err := h.service.Receipt(r.Context(), receiptID)
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(r.Context(), "failed to load receipt",
				"request_id", middleware.GetRequestID(r.Context()),
				"receipt_id", receiptID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, receipt)
}

type attachTransactionRequest struct {
	TxHash string `json:"tx_hash"`
}

func (h *Handler) handleAttachTransaction(w http.ResponseWriter, r *http.Request) {
	receiptID := chi.URLParam(r, "receiptID")

	var req attachTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.AttachTransaction(r.Context(), receiptID, req.TxHash); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"receipt_id":   receiptID,
		"tx_hash":      req.TxHash,
		"tx_confirmed": true,
		"linked_at":    time.Now().UTC(),
	})
}

func (h *Handler) handleWalletReceipts(w http.ResponseWriter, r *http.Request) {
	walletAddress := chi.URLParam(r, "walletAddress")

	receipts, err := h.service.WalletReceipts(r.Context(), walletAddress)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list receipts",
			"request_id", middleware.GetRequestID(r.Context()),
			"wallet_address", walletAddress,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if receipts == nil {
		receipts = []verification.ExecutionReceipt{}
	}

	httputil.WriteJSON(w, http.StatusOK, receipts)
}
