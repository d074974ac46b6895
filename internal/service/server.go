// Package service exposes the analysis pipeline as a small JSON API.
// The same pipeline backs the CLI, so a sheet posted to the service
// grades exactly as it would locally.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Jayk56/dslyrics/internal/history"
	"github.com/Jayk56/dslyrics/pkg/lint"
	"github.com/Jayk56/dslyrics/pkg/parser"
	"github.com/Jayk56/dslyrics/pkg/pipeline"

	// register lint rules
	_ "github.com/Jayk56/dslyrics/pkg/lint/rules"
)

// maxAnalyzeBody caps request bodies well above the lyrics size limit
// so oversized sheets fail validation rather than decoding.
const maxAnalyzeBody = 1 << 20

// Server is the analysis API server.
type Server struct {
	addr     string
	pipeline *pipeline.Analyzer
	store    *history.Store
	logger   *slog.Logger
	validate *validator.Validate
}

// Config holds configuration for the API server.
type Config struct {
	Addr     string
	Pipeline *pipeline.Analyzer
	Store    *history.Store // optional; analyses persist when set
	Logger   *slog.Logger
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Server{
		addr:     cfg.Addr,
		pipeline: cfg.Pipeline,
		store:    cfg.Store,
		logger:   logger,
		validate: validator.New(),
	}
}

// Handler returns the routed HTTP handler. It is exposed separately
// from Serve so tests can drive the API without a listener.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/rules", s.handleRules)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
	})

	return r
}

// Serve starts the API server and blocks until the context is
// cancelled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, lint.AllInfo())
}

// handleAnalyze runs the full pipeline over a posted sheet. Sheets that
// fail to parse come back as 422 with the failing position; everything
// else that parses gets a report, findings and all.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	body := http.MaxBytesReader(w, r.Body, maxAnalyzeBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, firstValidationError(err))
		return
	}

	name := req.Name
	if name == "" {
		name = "(request)"
	}

	rep, err := s.pipeline.AnalyzeContext(r.Context(), name, req.Lyrics)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			s.jsonResponse(w, http.StatusUnprocessableEntity, ParseErrorResponse{
				Error:  pe.Message,
				Line:   pe.Pos.Line,
				Column: pe.Pos.Column,
			})
			return
		}
		s.logger.Error("analysis failed", "name", name, "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	rep.ID = uuid.New().String()

	// Persistence is best effort; a full history database should not
	// fail the analysis that produced a perfectly good report.
	if s.store != nil {
		if _, err := s.store.Save(r.Context(), rep); err != nil {
			s.logger.Error("failed to save report", "id", rep.ID, "error", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "history is not enabled on this server")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list reports", "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	s.jsonResponse(w, http.StatusOK, entries)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, "history is not enabled on this server")
		return
	}

	id := chi.URLParam(r, "id")
	rep, err := s.store.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			s.errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("failed to load report", "id", id, "error", err)
		s.errorResponse(w, http.StatusInternalServerError, "failed to load report")
		return
	}

	s.jsonResponse(w, http.StatusOK, rep)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
