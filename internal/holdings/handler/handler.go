package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bondbuy/internal/holdings"
	"bondbuy/internal/platform/middleware"
	dErrors "bondbuy/pkg/domain-errors"
	"bondbuy/pkg/platform/httputil"
)

// Service defines the holdings operations the transport layer needs.
type Service interface {
	RecordPurchase(ctx context.Context, req holdings.PurchaseRequest) (holdings.Holding, error)
	ListByWallet(ctx context.Context, walletAddress string) ([]holdings.Position, error)
}

// Handler exposes bond positions over HTTP.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the holdings routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/holdings", h.handleRecordPurchase)
	r.Get("/wallets/{walletAddress}/holdings", h.handleListHoldings)
}

func (h *Handler) handleRecordPurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req holdings.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	holding, err := h.service.RecordPurchase(ctx, req)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "failed to record purchase",
				"request_id", middleware.GetRequestID(ctx),
				"bond_id", req.BondID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, holding)
}

func (h *Handler) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	walletAddress := chi.URLParam(r, "walletAddress")

	positions, err := h.service.ListByWallet(r.Context(), walletAddress)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list holdings",
			"request_id", middleware.GetRequestID(r.Context()),
			"wallet_address", walletAddress,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, positions)
}
