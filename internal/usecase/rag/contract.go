package rag

import (
	"context"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// Retriever searches the knowledge base.
type Retriever interface {
	Retrieve(ctx context.Context, query string, maxResults int, mode domain.SearchMode) (domain.RetrievalResult, error)
}

// Generator invokes a foundation model with retrieved context.
type Generator interface {
	Generate(ctx context.Context, query string, passages []string, modelID string, temperature float64, maxTokens int) (domain.GeneratedAnswer, error)
}
