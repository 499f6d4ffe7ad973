package handler

import (
	"log/slog"
	"net/http"

	"github.com/vortex/xdiff/internal/middleware"
	"github.com/vortex/xdiff/internal/service"
)

// NewRouter builds the HTTP mux with all routes and middleware.
func NewRouter(logger *slog.Logger, svc service.DiffService, maxBodyBytes int64) http.Handler {
	mux := http.NewServeMux()

	diff := NewDiffHandler(svc)

	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("GET /ready", Health)

	mux.HandleFunc("POST /api/v1/diff", diff.Diff)
	mux.HandleFunc("POST /api/v1/render", diff.Render)

	// Apply middleware chain (innermost first)
	var h http.Handler = mux
	h = middleware.MaxBodySize(maxBodyBytes)(h)
	h = middleware.CORS(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)

	return h
}
