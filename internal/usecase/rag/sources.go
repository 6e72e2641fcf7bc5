package rag

import (
	"math"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

const previewLimit = 200

// formatSources builds 1-based citations in retrieval order. Previews longer
// than 200 characters are cut and marked with an ellipsis; scores round to
// three decimals.
func formatSources(passages []domain.RetrievedPassage) []domain.SourceCitation {
	sources := make([]domain.SourceCitation, len(passages))
	for i, p := range passages {
		sources[i] = domain.SourceCitation{
			Index:          i + 1,
			ContentPreview: preview(p.Content),
			Score:          math.Round(p.Score*1000) / 1000,
			Location:       p.Location,
			DocumentName:   p.Location.DocumentName(),
		}
	}
	return sources
}

// preview truncates to previewLimit characters, not bytes, so multi-byte
// content keeps the full budget and never splits a rune.
func preview(content string) string {
	runes := []rune(content)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return content
}
