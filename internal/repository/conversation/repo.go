// Package conversation persists session message history and preferences in
// a key-value store with per-session expiry.
package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/ragchat/internal/db"
	"github.com/kailas-cloud/ragchat/internal/domain"
)

// Repository stores messages as a JSON list and preferences as a JSON value,
// both under the session id. Every write refreshes the session TTL.
type Repository struct {
	store     db.Store
	keyPrefix string
	ttl       time.Duration
}

// New creates a conversation repository.
func New(store db.Store, keyPrefix string, ttl time.Duration) *Repository {
	return &Repository{store: store, keyPrefix: keyPrefix, ttl: ttl}
}

func (r *Repository) messagesKey(sessionID string) string {
	return r.keyPrefix + "session:" + sessionID + ":messages"
}

func (r *Repository) prefsKey(sessionID string) string {
	return r.keyPrefix + "session:" + sessionID + ":prefs"
}

// AppendMessage adds a message to the session history and refreshes its TTL.
func (r *Repository) AppendMessage(ctx context.Context, sessionID string, msg domain.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	key := r.messagesKey(sessionID)
	if err := r.store.Append(ctx, key, data); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	if r.ttl > 0 {
		if err := r.store.Expire(ctx, key, r.ttl); err != nil {
			return fmt.Errorf("refresh session ttl: %w", err)
		}
	}
	return nil
}

// Messages returns the session history in insertion order. A session with no
// stored messages yields an empty slice, not an error.
func (r *Repository) Messages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	items, err := r.store.Range(ctx, r.messagesKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("read messages: %w", err)
	}

	messages := make([]domain.Message, 0, len(items))
	for _, item := range items {
		var msg domain.Message
		if err := json.Unmarshal(item, &msg); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// Delete removes the session history and preferences.
func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	if err := r.store.Delete(ctx, r.messagesKey(sessionID), r.prefsKey(sessionID)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Preferences returns the stored preferences, or defaults when the session
// has none yet.
func (r *Repository) Preferences(ctx context.Context, sessionID string) (domain.Preferences, error) {
	data, err := r.store.Get(ctx, r.prefsKey(sessionID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.DefaultPreferences(), nil
		}
		return domain.Preferences{}, fmt.Errorf("read preferences: %w", err)
	}

	var prefs domain.Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return domain.Preferences{}, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, nil
}

// SetPreferences stores the session preferences with the session TTL.
func (r *Repository) SetPreferences(ctx context.Context, sessionID string, prefs domain.Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := r.store.Set(ctx, r.prefsKey(sessionID), data, r.ttl); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
