// Package conversation manages chat sessions: message history, preferences,
// and running the answer pipeline on behalf of a session.
package conversation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/logger"
	"github.com/kailas-cloud/ragchat/internal/usecase/rag"
)

// Service handles conversational chat on top of the answer pipeline.
type Service struct {
	repo     Repository
	pipeline Pipeline
}

// New creates a conversation service.
func New(repo Repository, pipeline Pipeline) *Service {
	return &Service{repo: repo, pipeline: pipeline}
}

// Ask records the user question, runs the pipeline, and records the reply.
// An empty sessionID starts a new session. A pipeline failure does not fail
// the call: the error text is stored and returned as an error-flagged
// assistant message so the conversation keeps its history. Storage failures
// do surface as errors.
func (s *Service) Ask(ctx context.Context, sessionID string, req rag.Request) (string, domain.Message, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	userMsg := domain.Message{
		ID:        uuid.NewString(),
		Role:      domain.RoleUser,
		Content:   req.Query,
		Timestamp: domain.Timestamp(),
	}
	if err := s.repo.AppendMessage(ctx, sessionID, userMsg); err != nil {
		return "", domain.Message{}, fmt.Errorf("store user message: %w", err)
	}

	reply := domain.Message{
		ID:        uuid.NewString(),
		Role:      domain.RoleAssistant,
		Timestamp: domain.Timestamp(),
	}

	resp, err := s.pipeline.QueryAndGenerate(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Warn("pipeline failed, storing error message",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		reply.Content = err.Error()
		reply.Error = true
	} else {
		reply.Content = resp.Response
		reply.Sources = resp.Sources
		reply.Metadata = &resp.Metadata
	}

	if err := s.repo.AppendMessage(ctx, sessionID, reply); err != nil {
		return "", domain.Message{}, fmt.Errorf("store assistant message: %w", err)
	}
	return sessionID, reply, nil
}

// History returns the session's messages in order. Unknown sessions report
// domain.ErrSessionNotFound.
func (s *Service) History(ctx context.Context, sessionID string) ([]domain.Message, error) {
	messages, err := s.repo.Messages(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return messages, nil
}

// Clear removes the session's history and preferences.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.repo.Delete(ctx, sessionID)
}

// Preferences returns the session's preferences, defaulted when unset.
func (s *Service) Preferences(ctx context.Context, sessionID string) (domain.Preferences, error) {
	return s.repo.Preferences(ctx, sessionID)
}

// SetPreferences stores the session's preferences.
func (s *Service) SetPreferences(ctx context.Context, sessionID string, prefs domain.Preferences) error {
	return s.repo.SetPreferences(ctx, sessionID, prefs)
}
