package domain

// SourceCitation is the user-facing reference to a retrieved passage.
// Index is 1-based and follows the retrieval order; the preview is always
// truncated, never the full passage.
type SourceCitation struct {
	Index          int           `json:"index"`
	ContentPreview string        `json:"content_preview"`
	Score          float64       `json:"score"`
	Location       ProvenanceRef `json:"location"`
	DocumentName   string        `json:"document_name,omitempty"`
}

// ResponseMetadata carries timing and debug information for one pipeline run.
// TotalTime is the sum of the two phase durations, not a wall-clock span.
type ResponseMetadata struct {
	KBQueryTime    float64    `json:"kb_query_time"`
	GenerationTime float64    `json:"generation_time"`
	TotalTime      float64    `json:"total_time"`
	TotalResults   int        `json:"total_results"`
	ModelID        string     `json:"model_id"`
	SearchType     SearchMode `json:"search_type"`
	Temperature    float64    `json:"temperature"`
	Timestamp      string     `json:"timestamp"`
}

// RagResponse is the complete pipeline output and the sole contract the
// presentation layer consumes.
type RagResponse struct {
	Query    string           `json:"query"`
	Response string           `json:"response"`
	Sources  []SourceCitation `json:"sources"`
	Metadata ResponseMetadata `json:"metadata"`
}
