// Package ragchat is the in-process SDK for the retrieve-and-generate
// pipeline: query a Bedrock Knowledge Base, answer with a foundation model,
// and get back citations and timing metadata without running the HTTP server.
package ragchat

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
	"github.com/kailas-cloud/ragchat/internal/transport/bedrock"
	cataloguc "github.com/kailas-cloud/ragchat/internal/usecase/catalog"
	generationuc "github.com/kailas-cloud/ragchat/internal/usecase/generation"
	raguc "github.com/kailas-cloud/ragchat/internal/usecase/rag"
	retrievaluc "github.com/kailas-cloud/ragchat/internal/usecase/retrieval"
)

// Re-exported pipeline types, so callers never import internal packages.
type (
	RagResponse      = domain.RagResponse
	SourceCitation   = domain.SourceCitation
	ResponseMetadata = domain.ResponseMetadata
	FoundationModel  = domain.FoundationModel
	SearchMode       = domain.SearchMode
)

// Search modes accepted by Query.
const (
	SearchHybrid   = domain.SearchHybrid
	SearchSemantic = domain.SearchSemantic
	SearchKeyword  = domain.SearchKeyword
)

// Sentinel errors returned by Query.
var (
	ErrRetrieval  = domain.ErrRetrieval
	ErrGeneration = domain.ErrGeneration
)

const defaultModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"

// Client is the ragchat SDK entry point.
type Client struct {
	pipeline *raguc.Service
	catalog  *cataloguc.Service
}

// QueryOptions tunes a single Query call. Zero values take defaults.
type QueryOptions struct {
	MaxResults  int
	ModelID     string
	Temperature float64
	MaxTokens   int
	SearchMode  SearchMode
}

// New creates a ragchat Client. A knowledge base id is required; AWS
// credentials come from the default chain unless clients are injected.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		defaultModelID: defaultModelID,
		logger:         zap.NewNop(),
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.knowledgeBaseID == "" {
		return nil, errors.New("ragchat: knowledge base id required (use WithKnowledgeBase)")
	}

	if cfg.retrieveAPI == nil || cfg.invokeAPI == nil || cfg.catalogAPI == nil {
		loadOpts := []func(*awsconfig.LoadOptions) error{}
		if cfg.region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("ragchat: load aws config: %w", err)
		}
		if cfg.retrieveAPI == nil {
			cfg.retrieveAPI = bedrockagentruntime.NewFromConfig(awsCfg)
		}
		if cfg.invokeAPI == nil {
			cfg.invokeAPI = bedrockruntime.NewFromConfig(awsCfg)
		}
		if cfg.catalogAPI == nil {
			cfg.catalogAPI = awsbedrock.NewFromConfig(awsCfg)
		}
	}

	retriever := bedrock.NewRetriever(cfg.retrieveAPI, cfg.knowledgeBaseID, cfg.logger)
	invoker := bedrock.NewInvoker(cfg.invokeAPI)

	return &Client{
		pipeline: raguc.New(retrievaluc.New(retriever), generationuc.New(invoker), cfg.defaultModelID),
		catalog:  cataloguc.New(bedrock.NewCatalog(cfg.catalogAPI)),
	}, nil
}

// Query runs one retrieve-and-generate cycle.
func (c *Client) Query(ctx context.Context, query string, opts QueryOptions) (RagResponse, error) {
	return c.pipeline.QueryAndGenerate(ctx, raguc.Request{
		Query:       query,
		MaxResults:  opts.MaxResults,
		ModelID:     opts.ModelID,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
		SearchMode:  opts.SearchMode,
	})
}

// Models lists text generation models. When the upstream catalog is
// unavailable it returns an empty slice; FallbackModelIDs supplies a static
// list for that case.
func (c *Client) Models(ctx context.Context) ([]FoundationModel, error) {
	return c.catalog.TextModels(ctx)
}

// FallbackModelIDs is the static model list for when the catalog is down.
func FallbackModelIDs() []string {
	return domain.FallbackTextModelIDs()
}
