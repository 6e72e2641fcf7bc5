package domain

import "fmt"

// SearchMode selects the knowledge base retrieval strategy.
type SearchMode string

const (
	SearchHybrid   SearchMode = "HYBRID"
	SearchSemantic SearchMode = "SEMANTIC"
	SearchKeyword  SearchMode = "KEYWORD"
)

// ParseSearchMode validates a search mode string. Empty defaults to HYBRID.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(s) {
	case "":
		return SearchHybrid, nil
	case SearchHybrid, SearchSemantic, SearchKeyword:
		return SearchMode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSearchMode, s)
	}
}

func (m SearchMode) String() string { return string(m) }
