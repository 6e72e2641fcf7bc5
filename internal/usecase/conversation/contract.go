package conversation

import (
	"context"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/usecase/rag"
)

// Repository persists session history and preferences.
type Repository interface {
	AppendMessage(ctx context.Context, sessionID string, msg domain.Message) error
	Messages(ctx context.Context, sessionID string) ([]domain.Message, error)
	Delete(ctx context.Context, sessionID string) error
	Preferences(ctx context.Context, sessionID string) (domain.Preferences, error)
	SetPreferences(ctx context.Context, sessionID string, prefs domain.Preferences) error
}

// Pipeline runs one retrieve-then-generate cycle.
type Pipeline interface {
	QueryAndGenerate(ctx context.Context, req rag.Request) (domain.RagResponse, error)
}
