package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ratespot/ratespot/internal/auth"
	"github.com/ratespot/ratespot/internal/config"
	"github.com/ratespot/ratespot/internal/repository"
	"github.com/ratespot/ratespot/internal/store"
)

const maxRequestBody = 1 << 20 // 1 MiB

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg     config.Config
	store   *store.Store
	repo    *repository.Repository
	tokens  *auth.TokenService
	logger  *log.Logger
	router  chi.Router
	httpSrv *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, repo *repository.Repository, tokens *auth.TokenService, logger *log.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		repo:   repo,
		tokens: tokens,
		logger: logger,
		router: r,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/healthz", s.handleHealthz)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/stores", func(r chi.Router) {
			r.Get("/", s.handleListStores)
			r.Get("/owner-dashboard", s.handleOwnerDashboard)
		})
		r.Post("/ratings", s.handleSubmitRating)
		r.Put("/users/password", s.handleChangePassword)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/stats", s.handleAdminStats)
			r.Get("/users", s.handleAdminListUsers)
			r.Get("/stores", s.handleAdminListStores)
			r.Post("/users", s.handleAdminCreateUser)
			r.Post("/stores", s.handleAdminCreateStore)
		})
	})
}

// Start boots the HTTP server asynchronously.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

type msgResponse struct {
	Msg string `json:"msg"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondMsg(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, msgResponse{Msg: msg})
}

func (s *Server) respondInternal(w http.ResponseWriter) {
	s.respondMsg(w, http.StatusInternalServerError, "Server error.")
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondMsg(w, http.StatusBadRequest, "Malformed JSON payload.")
	case errors.As(err, &typeError):
		s.respondMsg(w, http.StatusBadRequest, "Invalid value for field "+typeError.Field+".")
	case errors.Is(err, io.EOF):
		s.respondMsg(w, http.StatusBadRequest, "Request body cannot be empty.")
	default:
		s.respondMsg(w, http.StatusBadRequest, "Unable to parse request body.")
	}
}
