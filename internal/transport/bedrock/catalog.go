package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// CatalogAPI is the slice of the bedrock control-plane API this adapter
// consumes. *bedrock.Client satisfies it.
type CatalogAPI interface {
	ListFoundationModels(ctx context.Context, params *bedrock.ListFoundationModelsInput, optFns ...func(*bedrock.Options)) (*bedrock.ListFoundationModelsOutput, error)
}

// Catalog lists foundation models from the Bedrock control plane.
type Catalog struct {
	api CatalogAPI
}

// NewCatalog creates a model catalog client.
func NewCatalog(api CatalogAPI) *Catalog {
	return &Catalog{api: api}
}

// ListModels returns every model the account can see; filtering happens in
// the use case layer.
func (c *Catalog) ListModels(ctx context.Context) ([]domain.FoundationModel, error) {
	out, err := c.api.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{})
	if err != nil {
		return nil, fmt.Errorf("list foundation models: %w", err)
	}

	models := make([]domain.FoundationModel, 0, len(out.ModelSummaries))
	for _, summary := range out.ModelSummaries {
		models = append(models, modelFromSummary(summary))
	}
	return models, nil
}

func modelFromSummary(s bedrocktypes.FoundationModelSummary) domain.FoundationModel {
	return domain.FoundationModel{
		ModelID:                    aws.ToString(s.ModelId),
		ModelName:                  aws.ToString(s.ModelName),
		ProviderName:               aws.ToString(s.ProviderName),
		InputModalities:            modalitiesToStrings(s.InputModalities),
		OutputModalities:           modalitiesToStrings(s.OutputModalities),
		ResponseStreamingSupported: aws.ToBool(s.ResponseStreamingSupported),
	}
}

func modalitiesToStrings(ms []bedrocktypes.ModelModality) []string {
	if len(ms) == 0 {
		return nil
	}
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = string(m)
	}
	return out
}
