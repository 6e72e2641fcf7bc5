package generation

import "context"

// ModelInvoker sends a serialized request body to a foundation model and
// returns the raw response body.
type ModelInvoker interface {
	Invoke(ctx context.Context, modelID string, body []byte) ([]byte, error)
}
