package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParameterGetter is the slice of the SSM API this package consumes.
// *ssm.Client satisfies it.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ssmOverlay mirrors the JSON document the deployment pipeline writes to the
// parameter store. Field names follow that document, not this package.
type ssmOverlay struct {
	KnowledgeBaseID string  `json:"knowledgeBaseId"`
	Region          string  `json:"region"`
	EmbeddingModel  string  `json:"embeddingModel"`
	DefaultModelID  string  `json:"defaultModelId"`
	MaxResults      int     `json:"maxResults"`
	Temperature     float64 `json:"temperature"`
}

// ApplySSM fetches the configured SSM parameter and merges its non-empty
// fields over the file config. Callers treat a failure as non-fatal and keep
// the file values; the merged config is re-validated.
func (c *Config) ApplySSM(ctx context.Context, client ParameterGetter) error {
	if c.AWS.SSMParameter == "" {
		return nil
	}

	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.AWS.SSMParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("get parameter %s: %w", c.AWS.SSMParameter, err)
	}

	var overlay ssmOverlay
	if err := json.Unmarshal([]byte(aws.ToString(out.Parameter.Value)), &overlay); err != nil {
		return fmt.Errorf("parse parameter %s: %w", c.AWS.SSMParameter, err)
	}

	if overlay.KnowledgeBaseID != "" {
		c.AWS.KnowledgeBaseID = overlay.KnowledgeBaseID
	}
	if overlay.Region != "" {
		c.AWS.Region = overlay.Region
	}
	if overlay.EmbeddingModel != "" {
		c.AWS.EmbeddingModel = overlay.EmbeddingModel
	}
	if overlay.DefaultModelID != "" {
		c.Generation.DefaultModelID = overlay.DefaultModelID
	}
	if overlay.MaxResults > 0 {
		c.Retrieval.MaxResults = overlay.MaxResults
	}
	if overlay.Temperature > 0 {
		c.Generation.Temperature = overlay.Temperature
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("config invalid after SSM overlay: %w", err)
	}
	return nil
}
