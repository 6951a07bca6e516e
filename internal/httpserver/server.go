// Package httpserver exposes the liveness HTTP surface used by hosting
// platforms to verify the bot process is up.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Server is a small HTTP server with liveness endpoints.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// New creates the liveness server. adminCount is reported by /health.
func New(port int, adminCount int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "http_server")

	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "Telegram Bot is running! ✅")
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"status": "ok",
			"admins": adminCount,
		}); err != nil {
			log.Error("Failed to write health response", "error", err)
		}
	})

	// Webhook delivery is not used; the bot runs long polling. The route
	// exists so platform probes posting here get a 200.
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		fmt.Fprint(w, "OK")
	})

	return &Server{
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

// Handler returns the server's HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// ListenAndServe runs the server until Shutdown is called.
// It returns nil on graceful shutdown.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Starting HTTP server", "addr", s.srv.Addr)
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}
