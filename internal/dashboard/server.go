// Package dashboard serves the usage dashboard page and the raw data series.
package dashboard

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/theirongolddev/tokenledger/internal/logger"
	"github.com/theirongolddev/tokenledger/internal/store"
)

// Route paths.
const (
	DashboardPath = "/apps/token-dashboard"
	DataRoute     = "/data/token_usage.json"
)

// DefaultAddr listens on all interfaces.
const DefaultAddr = "0.0.0.0:18888"

//go:embed static/index.html
var defaultPage []byte

// Config controls the server.
type Config struct {
	Addr string
	// DataPath is the store file served at DataRoute.
	DataPath string
	// HTMLPath overrides the embedded page. A configured path that does
	// not exist yields 404 rather than falling back.
	HTMLPath string
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg Config
}

// New returns a server with defaults applied.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return &Server{cfg: cfg}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.cfg.Addr }

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleRoot)
	r.Get(DashboardPath, s.handleDashboard)
	r.Get(DashboardPath+"/", s.handleDashboard)
	r.Get(DataRoute, s.handleData)
	r.Get(DataRoute+"/", s.handleData)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("dashboard http server: %w", err)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, DashboardPath, http.StatusFound)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	page := defaultPage
	if s.cfg.HTMLPath != "" {
		data, err := os.ReadFile(s.cfg.HTMLPath) //nolint:gosec // page path comes from config
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Warn("reading dashboard page", "path", s.cfg.HTMLPath, "error", err)
			}
			notFound(w, nil)
			return
		}
		page = data
	}
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func (s *Server) handleData(w http.ResponseWriter, _ *http.Request) {
	data, err := store.ReadRaw(s.cfg.DataPath)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Warn("reading store", "path", s.cfg.DataPath, "error", err)
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("{}"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not Found"))
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
