// Package retrieval queries the knowledge base and wraps results with timing
// information.
package retrieval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/logger"
	"github.com/kailas-cloud/ragchat/internal/metrics"
)

// Service handles knowledge base retrieval.
type Service struct {
	kb KnowledgeBaseClient
}

// New creates a retrieval service.
func New(kb KnowledgeBaseClient) *Service {
	return &Service{kb: kb}
}

// Retrieve searches the knowledge base and returns passages in the order the
// backend ranked them, together with the measured query time. Failures are
// reported as domain.ErrRetrieval with the transport cause wrapped.
func (s *Service) Retrieve(
	ctx context.Context, query string, maxResults int, mode domain.SearchMode,
) (domain.RetrievalResult, error) {
	start := time.Now()

	passages, err := s.kb.Search(ctx, query, maxResults, mode)
	elapsed := time.Since(start)

	modeLabel := mode.String()
	metrics.RetrievalRequestDuration.WithLabelValues(modeLabel).Observe(elapsed.Seconds())
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues(modeLabel, "error").Inc()
		logger.FromContext(ctx).Warn("knowledge base retrieval failed",
			zap.String("search_type", modeLabel),
			zap.Error(err),
		)
		return domain.RetrievalResult{}, fmt.Errorf("%w: %w", domain.ErrRetrieval, err)
	}

	metrics.RetrievalRequestsTotal.WithLabelValues(modeLabel, "success").Inc()
	metrics.RetrievalPassagesTotal.WithLabelValues(modeLabel).Add(float64(len(passages)))

	return domain.RetrievalResult{
		Query:            query,
		Results:          passages,
		TotalResults:     len(passages),
		QueryTimeSeconds: elapsed.Seconds(),
		Timestamp:        domain.Timestamp(),
		SearchType:       mode,
	}, nil
}
