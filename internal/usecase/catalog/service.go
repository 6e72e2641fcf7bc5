// Package catalog lists the text generation models available to the account.
package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/logger"
)

// Service filters the model catalog to text output models and caches the
// first successful result for the lifetime of the instance.
type Service struct {
	lister ModelLister

	mu     sync.Mutex
	cached []domain.FoundationModel
	filled bool
}

// New creates a catalog service.
func New(lister ModelLister) *Service {
	return &Service{lister: lister}
}

// TextModels returns models whose output modalities include TEXT. The first
// successful upstream call is cached; later calls never hit the network.
// An upstream failure yields an empty list without an error and is not
// cached, so the next call retries. Callers decide whether to substitute a
// fallback list.
func (s *Service) TextModels(ctx context.Context) ([]domain.FoundationModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filled {
		return s.cached, nil
	}

	models, err := s.lister.ListModels(ctx)
	if err != nil {
		logger.FromContext(ctx).Warn("model catalog unavailable", zap.Error(err))
		return []domain.FoundationModel{}, nil
	}

	filtered := make([]domain.FoundationModel, 0, len(models))
	for _, m := range models {
		if m.SupportsTextOutput() {
			filtered = append(filtered, m)
		}
	}

	s.cached = filtered
	s.filled = true
	return s.cached, nil
}
