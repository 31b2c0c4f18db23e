package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeberg.org/snonux/pagelingo/internal"
	"codeberg.org/snonux/pagelingo/internal/fragment"
	"codeberg.org/snonux/pagelingo/internal/translate"
)

// Server serves the translation backend API.
type Server struct {
	orchestrator *translate.Orchestrator
	addr         string
	mux          *http.ServeMux
}

// healthResponse is the GET /health body.
type healthResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Providers []string `json:"providers"`
	Timestamp string   `json:"timestamp"`
}

// New creates a server bound to addr, e.g. ":5000".
func New(orchestrator *translate.Orchestrator, addr string) *Server {
	s := &Server{
		orchestrator: orchestrator,
		addr:         addr,
		mux:          http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.withCORS(s.handleHealth))
	s.mux.HandleFunc("/translate", s.withCORS(s.handleTranslate))

	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		// Translation jobs may legitimately take minutes when a
		// fallback model needs warming up.
		WriteTimeout: 5 * time.Minute,
	}

	log.Printf("pagelingo backend listening on %s", s.addr)
	return srv.ListenAndServe()
}

// withCORS adds the CORS headers the browser extension needs and
// answers preflight requests.
func (s *Server) withCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Version:   internal.Version,
		Providers: s.orchestrator.ProviderNames(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	requestID := uuid.NewString()

	var req translate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, &translate.Response{
			Success:   false,
			Error:     fmt.Sprintf("invalid request body: %v", err),
			ErrorKind: "other",
		})
		return
	}

	if strings.TrimSpace(req.Content) == "" && len(req.Fragments) == 0 {
		writeJSON(w, http.StatusBadRequest, &translate.Response{
			Success:   false,
			Error:     "missing content in request",
			ErrorKind: "other",
		})
		return
	}

	// Plain content goes through preprocessing; caller-supplied fragments
	// carry whitespace semantics the cleaner would destroy.
	if len(req.Fragments) == 0 {
		req.Content = fragment.CleanText(req.Content)
	}

	source := "direct request"
	if req.PageInfo != nil && req.PageInfo.URL != "" {
		source = req.PageInfo.URL
	}
	log.Printf("[%s] translating %d bytes to %s from %s",
		requestID, len(req.Content), req.TargetLanguage, source)

	resp := s.orchestrator.Translate(r.Context(), &req)
	if !resp.Success {
		log.Printf("[%s] translation failed (%s): %s", requestID, resp.ErrorKind, resp.Error)
		writeJSON(w, statusForKind(resp.ErrorKind), resp)
		return
	}

	log.Printf("[%s] translated %d bytes", requestID, resp.Metadata.TranslatedLength)
	writeJSON(w, http.StatusOK, resp)
}

// statusForKind maps an error kind onto an HTTP status: request
// problems are 4xx, provider problems 502, internal invariant
// violations 500.
func statusForKind(kind string) int {
	switch kind {
	case "unsupported_language":
		return http.StatusBadRequest
	case "no_provider_configured", "unauthenticated":
		return http.StatusServiceUnavailable
	case "rate_limited", "model_loading", "network_error", "all_providers_exhausted":
		return http.StatusBadGateway
	case "incomplete_results":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		log.Printf("failed to write response: %v", err)
	}
}
