package ragchat

import (
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/transport/bedrock"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	region          string
	knowledgeBaseID string
	defaultModelID  string

	retrieveAPI bedrock.RetrieveAPI
	invokeAPI   bedrock.InvokeAPI
	catalogAPI  bedrock.CatalogAPI

	logger *zap.Logger
}

// WithRegion sets the AWS region the clients connect to.
func WithRegion(region string) Option {
	return optionFunc(func(c *clientConfig) {
		c.region = region
	})
}

// WithKnowledgeBase sets the knowledge base queried by retrieval.
func WithKnowledgeBase(id string) Option {
	return optionFunc(func(c *clientConfig) {
		c.knowledgeBaseID = id
	})
}

// WithDefaultModel sets the model used when a query names none.
func WithDefaultModel(modelID string) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultModelID = modelID
	})
}

// WithRetrieveClient injects a knowledge base client, replacing the one
// built from the AWS config. Primarily for tests.
func WithRetrieveClient(api bedrock.RetrieveAPI) Option {
	return optionFunc(func(c *clientConfig) {
		c.retrieveAPI = api
	})
}

// WithInvokeClient injects a model invocation client.
func WithInvokeClient(api bedrock.InvokeAPI) Option {
	return optionFunc(func(c *clientConfig) {
		c.invokeAPI = api
	})
}

// WithCatalogClient injects a model catalog client.
func WithCatalogClient(api bedrock.CatalogAPI) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogAPI = api
	})
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
