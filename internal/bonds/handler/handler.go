package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bondbuy/internal/bonds"
	"bondbuy/internal/platform/middleware"
	dErrors "bondbuy/pkg/domain-errors"
	"bondbuy/pkg/platform/httputil"
	"bondbuy/pkg/platform/sentinel"
)

// Handler exposes the bond catalog. Reads are public; mutations sit behind
// the admin router.
type Handler struct {
	catalog *bonds.Catalog
	logger  *slog.Logger
}

func New(catalog *bonds.Catalog, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register mounts the public catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/bonds", h.handleListBonds)
	r.Get("/bonds/{bondID}", h.handleGetBond)
}

// RegisterAdmin mounts catalog mutations; the caller wraps the router with
// the admin auth middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/bonds", h.handleRegisterBond)
	r.Post("/bonds/{bondID}/deactivate", h.handleDeactivateBond)
}

func (h *Handler) handleListBonds(w http.ResponseWriter, r *http.Request) {
	listings, err := h.catalog.List(r.Context())
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to list bonds", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listings)
}

func (h *Handler) handleGetBond(w http.ResponseWriter, r *http.Request) {
	bondID := chi.URLParam(r, "bondID")
	bond, err := h.catalog.Get(r.Context(), bondID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "bond not found"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to load bond", err))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, bond)
}

func (h *Handler) handleRegisterBond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var bond bonds.Bond
	if err := json.NewDecoder(r.Body).Decode(&bond); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if bond.ID == "" || bond.Name == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "id and name are required"))
		return
	}
	if bond.TotalSupply <= 0 || bond.IssuedSupply < 0 || bond.IssuedSupply > bond.TotalSupply {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "supply figures are inconsistent"))
		return
	}

	if err := h.catalog.Register(ctx, bond); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeConflict, "bond id already registered"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to register bond", err))
		return
	}

	h.logger.InfoContext(ctx, "bond registered",
		"request_id", middleware.GetRequestID(ctx),
		"bond_id", bond.ID,
		"admin", middleware.GetSubject(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, bond)
}

func (h *Handler) handleDeactivateBond(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bondID := chi.URLParam(r, "bondID")

	if err := h.catalog.Deactivate(ctx, bondID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "bond not found"))
			return
		}
		httputil.WriteError(w, dErrors.Wrap(dErrors.CodeInternal, "failed to deactivate bond", err))
		return
	}

	h.logger.InfoContext(ctx, "bond deactivated",
		"request_id", middleware.GetRequestID(ctx),
		"bond_id", bondID,
		"admin", middleware.GetSubject(ctx),
	)
	w.WriteHeader(http.StatusNoContent)
}
