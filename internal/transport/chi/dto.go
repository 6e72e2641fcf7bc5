package chi

import "github.com/kailas-cloud/ragchat/internal/domain"

// ErrorCode is a machine-readable error discriminator.
type ErrorCode string

const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeRetrievalFailed  ErrorCode = "retrieval_failed"
	CodeGenerationFailed ErrorCode = "generation_failed"
	CodeSessionNotFound  ErrorCode = "session_not_found"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the error body for every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// QueryRequest invokes the pipeline once, without session state. Omitted
// fields take server defaults.
type QueryRequest struct {
	Query       string  `json:"query"`
	MaxResults  int     `json:"max_results,omitempty"`
	ModelID     string  `json:"model_id,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	SearchMode  string  `json:"search_mode,omitempty"`
}

// ChatRequest invokes the pipeline within a conversation session. An empty
// session id starts a new session.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	QueryRequest
}

// ChatResponse returns the assistant message and the session it belongs to.
type ChatResponse struct {
	SessionID string         `json:"session_id"`
	Message   domain.Message `json:"message"`
}

// MessagesResponse is a session's full history.
type MessagesResponse struct {
	SessionID string           `json:"session_id"`
	Messages  []domain.Message `json:"messages"`
}

// ModelsResponse lists selectable text models. Fallback is set when the
// upstream catalog was unavailable and the static list is served instead.
type ModelsResponse struct {
	Models   []domain.FoundationModel `json:"models"`
	Fallback bool                     `json:"fallback,omitempty"`
}

// HealthResponse reports service and storage status.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
