// Package rag sequences knowledge base retrieval and model generation into a
// single answer with source citations and timing metadata.
package rag

import (
	"context"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// Defaults applied when a request field is zero.
const (
	DefaultMaxResults  = 5
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4096
)

// Request is one pipeline invocation. Zero-valued fields take defaults; the
// model id falls back to the service's configured default.
type Request struct {
	Query       string
	MaxResults  int
	ModelID     string
	Temperature float64
	MaxTokens   int
	SearchMode  domain.SearchMode
}

func (r *Request) applyDefaults(defaultModelID string) {
	if r.MaxResults <= 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.ModelID == "" {
		r.ModelID = defaultModelID
	}
	if r.Temperature == 0 {
		r.Temperature = DefaultTemperature
	}
	if r.MaxTokens <= 0 {
		r.MaxTokens = DefaultMaxTokens
	}
	if r.SearchMode == "" {
		r.SearchMode = domain.SearchHybrid
	}
}

// Service runs the retrieve-then-generate pipeline.
type Service struct {
	retriever      Retriever
	generator      Generator
	defaultModelID string
}

// New creates a pipeline service.
func New(retriever Retriever, generator Generator, defaultModelID string) *Service {
	return &Service{retriever: retriever, generator: generator, defaultModelID: defaultModelID}
}

// QueryAndGenerate retrieves passages for the query, generates an answer
// grounded in them, and assembles the response with citations and timing.
// A failure in either step aborts the whole call; generation never runs
// after retrieval has failed. Identical queries always re-issue both calls.
func (s *Service) QueryAndGenerate(ctx context.Context, req Request) (domain.RagResponse, error) {
	req.applyDefaults(s.defaultModelID)

	retrieval, err := s.retriever.Retrieve(ctx, req.Query, req.MaxResults, req.SearchMode)
	if err != nil {
		return domain.RagResponse{}, err
	}

	passages := make([]string, len(retrieval.Results))
	for i, r := range retrieval.Results {
		passages[i] = r.Content
	}

	answer, err := s.generator.Generate(ctx, req.Query, passages, req.ModelID, req.Temperature, req.MaxTokens)
	if err != nil {
		return domain.RagResponse{}, err
	}

	return domain.RagResponse{
		Query:    req.Query,
		Response: answer.Text,
		Sources:  formatSources(retrieval.Results),
		Metadata: domain.ResponseMetadata{
			KBQueryTime:    retrieval.QueryTimeSeconds,
			GenerationTime: answer.GenerationTimeSeconds,
			// Sum of phase times, not a wall-clock span.
			TotalTime:    retrieval.QueryTimeSeconds + answer.GenerationTimeSeconds,
			TotalResults: retrieval.TotalResults,
			ModelID:      req.ModelID,
			SearchType:   req.SearchMode,
			Temperature:  req.Temperature,
			Timestamp:    domain.Timestamp(),
		},
	}, nil
}
