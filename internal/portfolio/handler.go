package portfolio

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bondbuy/internal/platform/middleware"
	dErrors "bondbuy/pkg/domain-errors"
	"bondbuy/pkg/platform/httputil"
)

// Handler exposes the aggregated portfolio view.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the portfolio route.
func (h *Handler) Register(r chi.Router) {
	r.Get("/wallets/{walletAddress}/portfolio", h.handleGetPortfolio)
}

func (h *Handler) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	walletAddress := chi.URLParam(r, "walletAddress")

	summary, err := h.service.Summarize(r.Context(), walletAddress)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build portfolio summary",
			"request_id", middleware.GetRequestID(r.Context()),
			"wallet_address", walletAddress,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to build portfolio", err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, summary)
}
