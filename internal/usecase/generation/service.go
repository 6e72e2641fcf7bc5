// Package generation builds model prompts, dispatches requests by model
// family, and extracts answer text from the family-specific response shapes.
package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/logger"
	"github.com/kailas-cloud/ragchat/internal/metrics"
)

// Service handles foundation model invocation.
type Service struct {
	invoker ModelInvoker
}

// New creates a generation service.
func New(invoker ModelInvoker) *Service {
	return &Service{invoker: invoker}
}

// Generate builds a prompt from the query and context passages, invokes the
// model, and returns the extracted answer. Failures are reported as
// domain.ErrGeneration with the transport cause wrapped.
func (s *Service) Generate(
	ctx context.Context, query string, passages []string, modelID string, temperature float64, maxTokens int,
) (domain.GeneratedAnswer, error) {
	prompt := buildPrompt(query, passages)
	family := familyFor(modelID)

	body, err := json.Marshal(family.request(prompt, temperature, maxTokens))
	if err != nil {
		return domain.GeneratedAnswer{}, fmt.Errorf("%w: marshal request for %s: %w", domain.ErrGeneration, modelID, err)
	}

	promptChars := utf8.RuneCountInString(prompt)
	metrics.GenerationPromptChars.WithLabelValues(family.name).Observe(float64(promptChars))

	start := time.Now()
	respBody, err := s.invoker.Invoke(ctx, modelID, body)
	elapsed := time.Since(start)

	metrics.GenerationRequestDuration.WithLabelValues(family.name).Observe(elapsed.Seconds())
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(family.name, "error").Inc()
		logger.FromContext(ctx).Warn("model invocation failed",
			zap.String("model_id", modelID),
			zap.Error(err),
		)
		return domain.GeneratedAnswer{}, fmt.Errorf("%w: %w", domain.ErrGeneration, err)
	}
	metrics.GenerationRequestsTotal.WithLabelValues(family.name, "success").Inc()

	return domain.GeneratedAnswer{
		Text:                  strings.TrimSpace(family.extract(respBody)),
		ModelID:               modelID,
		Temperature:           temperature,
		MaxTokens:             maxTokens,
		GenerationTimeSeconds: elapsed.Seconds(),
		Timestamp:             domain.Timestamp(),
		ContextPassageCount:   len(passages),
		PromptLengthChars:     promptChars,
	}, nil
}
