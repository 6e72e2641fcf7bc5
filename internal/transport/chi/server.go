// Package chi exposes the chat pipeline over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	cataloguc "github.com/kailas-cloud/ragchat/internal/usecase/catalog"
	convuc "github.com/kailas-cloud/ragchat/internal/usecase/conversation"
	raguc "github.com/kailas-cloud/ragchat/internal/usecase/rag"
	"github.com/kailas-cloud/ragchat/internal/version"
)

// Pinger checks storage connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the use case services.
type Server struct {
	pipeline      *raguc.Service
	chat          *convuc.Service
	models        *cataloguc.Service
	store         Pinger
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	pipeline *raguc.Service,
	chat *convuc.Service,
	models *cataloguc.Service,
	store Pinger,
	logger *zap.Logger,
) *Server {
	s := &Server{
		pipeline: pipeline,
		chat:     chat,
		models:   models,
		store:    store,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidSearchMode, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrSessionNotFound, http.StatusNotFound, CodeSessionNotFound),
		sentinelHandler(domain.ErrRetrieval, http.StatusBadGateway, CodeRetrievalFailed),
		sentinelHandler(domain.ErrGeneration, http.StatusBadGateway, CodeGenerationFailed),
	}
	return s
}

// Routes mounts the API endpoints on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/query", s.Query)
		r.Post("/chat", s.Chat)
		r.Get("/models", s.Models)
		r.Route("/sessions/{session}", func(r chi.Router) {
			r.Get("/messages", s.SessionMessages)
			r.Delete("/", s.DeleteSession)
			r.Get("/preferences", s.GetPreferences)
			r.Put("/preferences", s.PutPreferences)
		})
	})
}

// Query handles POST /api/v1/query. Stateless: one retrieve-and-generate
// cycle, errors surface as HTTP failures.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pipelineReq, err := pipelineRequest(req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if pipelineReq.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Query is required")
		return
	}

	resp, err := s.pipeline.QueryAndGenerate(r.Context(), pipelineReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Chat handles POST /api/v1/chat. Conversational: the exchange is stored and
// pipeline failures come back as an error-flagged assistant message with
// status 200, so the conversation survives a bad turn.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	pipelineReq, err := pipelineRequest(req.QueryRequest)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if pipelineReq.Query == "" {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "Query is required")
		return
	}

	sessionID, msg, err := s.chat.Ask(r.Context(), req.SessionID, pipelineReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{SessionID: sessionID, Message: msg})
}

// SessionMessages handles GET /api/v1/sessions/{session}/messages.
func (s *Server) SessionMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session")

	messages, err := s.chat.History(r.Context(), sessionID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessagesResponse{SessionID: sessionID, Messages: messages})
}

// DeleteSession handles DELETE /api/v1/sessions/{session}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.Clear(r.Context(), chi.URLParam(r, "session")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetPreferences handles GET /api/v1/sessions/{session}/preferences.
func (s *Server) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.chat.Preferences(r.Context(), chi.URLParam(r, "session"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// PutPreferences handles PUT /api/v1/sessions/{session}/preferences.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs domain.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if prefs.MaxResults < 1 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "max_results must be at least 1")
		return
	}
	if prefs.Temperature < 0 || prefs.Temperature > 1 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "temperature must be between 0 and 1")
		return
	}

	if err := s.chat.SetPreferences(r.Context(), chi.URLParam(r, "session"), prefs); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// Models handles GET /api/v1/models. When the catalog is unavailable the
// static model list is served with the fallback flag set.
func (s *Server) Models(w http.ResponseWriter, r *http.Request) {
	models, err := s.models.TextModels(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if len(models) == 0 {
		ids := domain.FallbackTextModelIDs()
		fallback := make([]domain.FoundationModel, len(ids))
		for i, id := range ids {
			fallback[i] = domain.FoundationModel{ModelID: id, OutputModalities: []string{domain.ModalityText}}
		}
		writeJSON(w, http.StatusOK, ModelsResponse{Models: fallback, Fallback: true})
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: models})
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Version: version.Version})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: version.Version})
}

// pipelineRequest maps the wire request to a pipeline request, validating
// the search mode.
func pipelineRequest(req QueryRequest) (raguc.Request, error) {
	mode, err := domain.ParseSearchMode(req.SearchMode)
	if err != nil {
		return raguc.Request{}, err
	}
	return raguc.Request{
		Query:       req.Query,
		MaxResults:  req.MaxResults,
		ModelID:     req.ModelID,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		SearchMode:  mode,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidSearchMode,
		domain.ErrSessionNotFound,
		domain.ErrRetrieval,
		domain.ErrGeneration,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
