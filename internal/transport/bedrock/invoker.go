package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const contentTypeJSON = "application/json"

// InvokeAPI is the slice of the bedrock-runtime API this adapter consumes.
// *bedrockruntime.Client satisfies it.
type InvokeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Invoker calls a foundation model with a model-family-specific JSON payload
// and returns the raw response body.
type Invoker struct {
	api InvokeAPI
}

// NewInvoker creates a foundation model invoker.
func NewInvoker(api InvokeAPI) *Invoker {
	return &Invoker{api: api}
}

// Invoke sends body to modelID and returns the response payload bytes.
func (i *Invoker) Invoke(ctx context.Context, modelID string, body []byte) ([]byte, error) {
	out, err := i.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        body,
		ContentType: aws.String(contentTypeJSON),
		Accept:      aws.String(contentTypeJSON),
	})
	if err != nil {
		return nil, fmt.Errorf("invoke model %s: %w", modelID, err)
	}
	return out.Body, nil
}
