package retrieval

import (
	"context"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// KnowledgeBaseClient performs one search against the knowledge base.
type KnowledgeBaseClient interface {
	Search(ctx context.Context, query string, maxResults int, mode domain.SearchMode) ([]domain.RetrievedPassage, error)
}
