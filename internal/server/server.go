// Package server exposes form link resolution over HTTP, together with
// Prometheus metrics for every resolution it performs.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vvka-141/sflink/pkg/sflink"
)

const shutdownTimeout = 10 * time.Second

// Resolution outcomes recorded in sflink_resolutions_total.
const (
	OutcomeFound        = "found"
	OutcomeNone         = "none"
	OutcomeInvalidTitle = "invalid_title"
	OutcomeUnavailable  = "store_unavailable"
	OutcomeError        = "error"
)

// Resolver is the part of resolver.Service the server calls.
type Resolver interface {
	ParseTitle(text string) (sflink.PageIdentity, error)
	FormEditLink(ctx context.Context, target sflink.PageIdentity) (string, bool, error)
	ArticleForms(ctx context.Context, page sflink.PageIdentity) ([]string, error)
}

// FormEditLinkResponse is the body of GET /formedit-link.
type FormEditLinkResponse struct {
	URL string `json:"url"`
}

// ArticleFormsResponse is the body of GET /article-forms.
type ArticleFormsResponse struct {
	Forms []string `json:"forms"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Server serves link resolution requests. Safe for concurrent use.
type Server struct {
	links       Resolver
	logger      sflink.Logger
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	mux         *http.ServeMux
}

// New creates a Server with its own metrics registry.
func New(links Resolver, logger sflink.Logger) *Server {
	if links == nil {
		panic("links cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	registry := prometheus.NewRegistry()
	s := &Server{
		links:    links,
		logger:   logger,
		registry: registry,
		resolutions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "sflink_resolutions_total",
			Help: "Form link resolutions by operation and outcome.",
		}, []string{"operation", "outcome"}),
		mux: http.NewServeMux(),
	}

	s.mux.HandleFunc("/formedit-link", s.handleFormEditLink)
	s.mux.HandleFunc("/article-forms", s.handleArticleForms)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}

func (s *Server) handleFormEditLink(w http.ResponseWriter, r *http.Request) {
	const operation = "formedit_link"
	page, ok := s.pageFromQuery(w, r, operation)
	if !ok {
		return
	}

	url, found, err := s.links.FormEditLink(r.Context(), page)
	if err != nil {
		s.fail(w, operation, err)
		return
	}
	if !found {
		s.resolutions.WithLabelValues(operation, OutcomeNone).Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.resolutions.WithLabelValues(operation, OutcomeFound).Inc()
	s.writeJSON(w, http.StatusOK, FormEditLinkResponse{URL: url})
}

func (s *Server) handleArticleForms(w http.ResponseWriter, r *http.Request) {
	const operation = "article_forms"
	page, ok := s.pageFromQuery(w, r, operation)
	if !ok {
		return
	}

	forms, err := s.links.ArticleForms(r.Context(), page)
	if err != nil {
		s.fail(w, operation, err)
		return
	}

	outcome := OutcomeFound
	if len(forms) == 0 {
		outcome = OutcomeNone
		forms = []string{}
	}
	s.resolutions.WithLabelValues(operation, outcome).Inc()
	s.writeJSON(w, http.StatusOK, ArticleFormsResponse{Forms: forms})
}

// pageFromQuery reads the title parameter. It writes the error response itself
// and returns false when the request cannot proceed.
func (s *Server) pageFromQuery(w http.ResponseWriter, r *http.Request, operation string) (sflink.PageIdentity, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return sflink.PageIdentity{}, false
	}

	text := r.URL.Query().Get("title")
	if text == "" {
		s.resolutions.WithLabelValues(operation, OutcomeInvalidTitle).Inc()
		s.writeJSONError(w, http.StatusBadRequest, "title_required", "title query parameter is required")
		return sflink.PageIdentity{}, false
	}

	page, err := s.links.ParseTitle(text)
	if err != nil {
		s.resolutions.WithLabelValues(operation, OutcomeInvalidTitle).Inc()
		s.writeJSONError(w, http.StatusBadRequest, "invalid_title", err.Error())
		return sflink.PageIdentity{}, false
	}
	return page, true
}

func (s *Server) fail(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, sflink.ErrPropertyStoreUnavailable) {
		s.resolutions.WithLabelValues(operation, OutcomeUnavailable).Inc()
		s.logger.Error("%s: %v", operation, err)
		s.writeJSONError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
		return
	}

	s.resolutions.WithLabelValues(operation, OutcomeError).Inc()
	s.logger.Error("%s: %v", operation, err)
	s.writeJSONError(w, http.StatusInternalServerError, "resolution_failed", err.Error())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON sends data with status. The status is already written when encoding
// fails, so the failure is only logged.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}
