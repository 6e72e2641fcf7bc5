package domain

// Role identifies the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a conversation session. Assistant messages carry
// sources and metadata when the pipeline succeeded; Error marks assistant
// messages that render a pipeline failure inline instead of an answer.
type Message struct {
	ID        string            `json:"id"`
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Timestamp string            `json:"timestamp"`
	Sources   []SourceCitation  `json:"sources,omitempty"`
	Metadata  *ResponseMetadata `json:"metadata,omitempty"`
	Error     bool              `json:"error,omitempty"`
	Feedback  string            `json:"feedback,omitempty"`
}

// Preferences holds per-session display and query defaults.
type Preferences struct {
	MaxResults          int     `json:"max_results"`
	Temperature         float64 `json:"temperature"`
	ShowSourceCitations bool    `json:"show_source_citations"`
	AutoScroll          bool    `json:"auto_scroll"`
}

// DefaultPreferences returns the preferences applied to new sessions.
func DefaultPreferences() Preferences {
	return Preferences{
		MaxResults:          5,
		Temperature:         0.7,
		ShowSourceCitations: true,
		AutoScroll:          true,
	}
}
