package domain

// GeneratedAnswer is the outcome of a single foundation model invocation.
type GeneratedAnswer struct {
	Text                  string  `json:"text"`
	ModelID               string  `json:"model_id"`
	Temperature           float64 `json:"temperature"`
	MaxTokens             int     `json:"max_tokens"`
	GenerationTimeSeconds float64 `json:"generation_time_seconds"`
	Timestamp             string  `json:"timestamp"`
	ContextPassageCount   int     `json:"context_passage_count"`
	PromptLengthChars     int     `json:"prompt_length_chars"`
}
