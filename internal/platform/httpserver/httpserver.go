package httpserver

import (
	"net/http"

	"bondbuy/internal/platform/config"
)

// New builds the API server with the configured connection-level timeouts.
// The per-request deadline is enforced separately by the router's Timeout
// middleware, so WriteTimeout only has to bound slow clients, not handlers.
func New(addr string, handler http.Handler, cfg config.HTTPConfig) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}
