// Package server exposes a store over the mind map REST API.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"neonmap/internal/apperr"
	"neonmap/internal/config"
	"neonmap/internal/store"
)

// Backend is what the API needs from a store: the adapter operations plus full
// records for listings.
type Backend interface {
	store.Adapter
	Records(ctx context.Context, f store.Filter) ([]store.Record, error)
}

type Server struct {
	backend   Backend
	cfg       config.ServerConfig
	principal store.Principal
	log       *zap.Logger
}

func New(backend Backend, cfg config.ServerConfig, principal store.Principal, log *zap.Logger) *Server {
	return &Server{backend: backend, cfg: cfg, principal: principal, log: log}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)

	r.Route("/api/mindmaps/maps", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Patch("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// authenticate checks the bearer token when one is configured and binds the
// served principal to the request.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			respondError(w, http.StatusUnauthorized, "invalid or missing token")
			return
		}
		next.ServeHTTP(w, r.WithContext(store.WithPrincipal(r.Context(), s.principal)))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// fail reports err with the status of its kind. Internal causes are logged
// and not echoed.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.StatusOf(err)
	msg := apperr.MessageOf(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("requestID", chimiddleware.GetReqID(r.Context())),
			zap.Error(err))
		msg = http.StatusText(status)
	}
	respondError(w, status, msg)
}
