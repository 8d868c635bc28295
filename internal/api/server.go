// Package api serves one verse-selection session over HTTP and WebSocket.
//
// The Server owns its Selection, optional range store and optional content
// provider. Every committed selection change is broadcast to WebSocket
// clients; mutating requests also persist the ranges to the store.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/werd/core/selection"
	"github.com/FocuswithJustin/werd/core/verse"
	"github.com/FocuswithJustin/werd/internal/content"
	"github.com/FocuswithJustin/werd/internal/logging"
)

// Version is reported by the root and health endpoints.
const Version = "0.1.0"

// RangeStore persists selection ranges per profile.
type RangeStore interface {
	LoadRanges(ctx context.Context, profile string) ([]verse.Range, error)
	SaveRanges(ctx context.Context, profile string, ranges []verse.Range) (bool, error)
}

// Server is the HTTP front end of a selection session.
type Server struct {
	cfg      Config
	sel      *selection.Selection
	store    RangeStore
	content  content.Provider
	hub      *Hub
	upgrader websocket.Upgrader
	started  time.Time
	stop     context.CancelFunc
}

// Option configures a Server.
type Option func(*Server)

// WithStore persists ranges to st under the configured profile.
func WithStore(st RangeStore) Option {
	return func(s *Server) { s.store = st }
}

// WithContent enables word-level page content and line grouping.
func WithContent(p content.Provider) Option {
	return func(s *Server) { s.content = p }
}

// New creates a server around sel and starts its WebSocket hub. Call Close
// to stop the hub.
func New(cfg Config, sel *selection.Selection, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:     cfg.withDefaults(),
		sel:     sel,
		hub:     NewHub(),
		started: time.Now(),
		stop:    cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originAllowed(s.cfg.AllowedOrigins),
	}
	go s.hub.Run(ctx)
	sel.OnChange(func(ch selection.Change) {
		s.hub.Broadcast(newSelectionMessage(ch))
	})
	return s
}

// Close stops the WebSocket hub and disconnects its clients.
func (s *Server) Close() {
	s.stop()
	<-s.hub.done
}

// Load restores the selection from the store. Without a store it does
// nothing.
func (s *Server) Load(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	ranges, err := s.store.LoadRanges(ctx, s.cfg.Profile)
	if err != nil {
		return fmt.Errorf("loading profile %q: %w", s.cfg.Profile, err)
	}
	s.sel.Restore(ranges)
	logging.Info("selection restored", "profile", s.cfg.Profile, "ranges", len(ranges))
	return nil
}

// persist saves the current ranges. Failures are logged; the in-memory
// selection stays authoritative.
func (s *Server) persist(ctx context.Context) {
	if s.store == nil {
		return
	}
	if _, err := s.store.SaveRanges(ctx, s.cfg.Profile, s.sel.Ranges()); err != nil {
		logging.ErrorContext(ctx, "failed to persist selection", "profile", s.cfg.Profile, "error", err)
	}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/surahs", s.handleSurahs)
	mux.HandleFunc("GET /api/surahs/{id}", s.handleSurah)
	mux.HandleFunc("GET /api/pages/{page}", s.handlePage)
	mux.HandleFunc("GET /api/juz/{juz}", s.handleJuz)
	mux.HandleFunc("GET /api/verses/{key}", s.handleVerse)
	mux.HandleFunc("GET /api/ranges/{expr}", s.handleRangeExpr)

	mux.HandleFunc("GET /api/selection", s.handleSelection)
	mux.HandleFunc("GET /api/selection/keys", s.handleSelectedKeys)
	mux.HandleFunc("POST /api/selection/tap", s.handleTap)
	mux.HandleFunc("PUT /api/selection/pending", s.handleSetPending)
	mux.HandleFunc("DELETE /api/selection/pending", s.handleClearPending)
	mux.HandleFunc("POST /api/selection/ranges", s.handleAddRange)
	mux.HandleFunc("DELETE /api/selection/ranges", s.handleClearRanges)
	mux.HandleFunc("DELETE /api/selection/ranges/{id}", s.handleRemoveRange)
	mux.HandleFunc("POST /api/selection/undo", s.handleUndo)
	mux.HandleFunc("POST /api/selection/redo", s.handleRedo)

	mux.HandleFunc("GET /api/progress", s.handleProgress)
	mux.HandleFunc("GET /api/progress/server", s.handleServerData)
	mux.HandleFunc("PUT /api/progress/server", s.handleRestoreServerData)

	mux.HandleFunc("GET /ws", s.handleWebSocket)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
	})

	var handler http.Handler = securityHeaders(mux)
	if s.cfg.RateLimit.RequestsPerMinute > 0 {
		handler = NewRateLimiter(s.cfg.RateLimit).Middleware(handler)
	}
	handler = AuthMiddleware(s.cfg.Auth, handler)
	handler = corsMiddleware(s.cfg.AllowedOrigins, handler)
	return logging.CombinedMiddleware(handler)
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	protocol := "http"
	if s.cfg.TLS.Enabled {
		protocol = "https"
	} else {
		logging.Warn("TLS disabled - using plain HTTP",
			"recommendation", "consider using TLS or reverse proxy for production")
	}
	logging.ServerStartup("api", protocol, s.cfg.Port,
		"profile", s.cfg.Profile,
		"store", s.store != nil,
		"content", s.content != nil,
		"auth", s.cfg.Auth.Enabled)

	errCh := make(chan error, 1)
	go func() {
		if s.cfg.TLS.Enabled {
			errCh <- srv.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			errCh <- srv.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) {
		return serveErr
	}
	return err
}
