package jwttoken

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bondbuy/internal/platform/middleware"
	dErrors "bondbuy/pkg/domain-errors"
	"bondbuy/pkg/platform/httputil"
)

// Handler exchanges the operator secret for a short-lived admin token. The
// server only holds the bcrypt hash of the secret; a deployment without a
// configured hash does not mount this endpoint at all.
type Handler struct {
	service    *Service
	secretHash string
	tokenTTL   time.Duration
	logger     *slog.Logger
}

func NewHandler(service *Service, secretHash string, tokenTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		service:    service,
		secretHash: secretHash,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// Register mounts the token issuance route.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/token", h.handleIssueToken)
}

type issueTokenRequest struct {
	Secret string `json:"secret"`
}

type issueTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *Handler) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Secret == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "secret is required"))
		return
	}

	if err := VerifySecret(req.Secret, h.secretHash); err != nil {
		h.logger.WarnContext(ctx, "rejected admin token request",
			"request_id", middleware.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid secret"))
		return
	}

	token, err := h.service.GenerateToken("admin", "admin", h.tokenTTL)
	if err != nil {
		h.logger.ErrorContext(ctx, "token generation failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to issue token", err))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, issueTokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.tokenTTL.Seconds()),
	})
}
