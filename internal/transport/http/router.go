package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bondsHandler "bondbuy/internal/bonds/handler"
	holdingsHandler "bondbuy/internal/holdings/handler"
	"bondbuy/internal/jwttoken"
	"bondbuy/internal/platform/middleware"
	"bondbuy/internal/portfolio"
	verificationHandler "bondbuy/internal/verification/handler"
	"bondbuy/pkg/platform/httputil"
)

// Handlers groups the feature handlers the router mounts. The transport
// layer stays thin; business logic lives behind each handler's service.
type Handlers struct {
	Verification *verificationHandler.Handler
	Bonds        *bondsHandler.Handler
	Holdings     *holdingsHandler.Handler
	Portfolio    *portfolio.Handler

	// Auth is optional; nil when no admin secret hash is configured.
	Auth *jwttoken.Handler
}

// NewRouter wires all public endpoints plus the admin surface.
func NewRouter(logger *slog.Logger, jwtValidator middleware.JWTValidator, h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	h.Verification.Register(r)
	h.Bonds.Register(r)
	h.Holdings.Register(r)
	h.Portfolio.Register(r)
	if h.Auth != nil {
		h.Auth.Register(r)
	}

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin(jwtValidator, logger))
		h.Bonds.RegisterAdmin(admin)
	})

	return r
}
