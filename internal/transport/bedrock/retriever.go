// Package bedrock adapts the AWS Bedrock SDK clients to the capability
// interfaces the use case layer consumes: knowledge base search, foundation
// model invocation, and the model catalog.
package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

// RetrieveAPI is the slice of the bedrock-agent-runtime API this adapter
// consumes. *bedrockagentruntime.Client satisfies it.
type RetrieveAPI interface {
	Retrieve(ctx context.Context, params *bedrockagentruntime.RetrieveInput, optFns ...func(*bedrockagentruntime.Options)) (*bedrockagentruntime.RetrieveOutput, error)
}

// Retriever queries a Bedrock Knowledge Base and converts results to domain
// passages.
type Retriever struct {
	api             RetrieveAPI
	knowledgeBaseID string
	logger          *zap.Logger
}

// NewRetriever creates a knowledge base retriever.
func NewRetriever(api RetrieveAPI, knowledgeBaseID string, logger *zap.Logger) *Retriever {
	return &Retriever{api: api, knowledgeBaseID: knowledgeBaseID, logger: logger}
}

// Search issues one retrieve call. The search mode string passes through to
// the service unmapped; the remote side rejects modes it does not support.
func (r *Retriever) Search(
	ctx context.Context, query string, maxResults int, mode domain.SearchMode,
) ([]domain.RetrievedPassage, error) {
	out, err := r.api.Retrieve(ctx, &bedrockagentruntime.RetrieveInput{
		KnowledgeBaseId: aws.String(r.knowledgeBaseID),
		RetrievalQuery:  &agenttypes.KnowledgeBaseQuery{Text: aws.String(query)},
		RetrievalConfiguration: &agenttypes.KnowledgeBaseRetrievalConfiguration{
			VectorSearchConfiguration: &agenttypes.KnowledgeBaseVectorSearchConfiguration{
				NumberOfResults:    aws.Int32(int32(maxResults)),
				OverrideSearchType: agenttypes.SearchType(mode.String()),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve from knowledge base %s: %w", r.knowledgeBaseID, err)
	}

	passages := make([]domain.RetrievedPassage, 0, len(out.RetrievalResults))
	for _, item := range out.RetrievalResults {
		passages = append(passages, passageFromRetrievalResult(item))
	}
	return passages, nil
}

func passageFromRetrievalResult(item agenttypes.KnowledgeBaseRetrievalResult) domain.RetrievedPassage {
	p := domain.RetrievedPassage{
		Score:    aws.ToFloat64(item.Score),
		Location: provenanceFromLocation(item.Location),
		Metadata: metadataToMap(item.Metadata),
	}
	if item.Content != nil {
		p.Content = aws.ToString(item.Content.Text)
	}
	return p
}

func provenanceFromLocation(loc *agenttypes.RetrievalResultLocation) domain.ProvenanceRef {
	if loc == nil {
		return domain.ProvenanceRef{}
	}

	locType := string(loc.Type)
	switch {
	case loc.S3Location != nil:
		return domain.ParseProvenance(locType, aws.ToString(loc.S3Location.Uri))
	case loc.WebLocation != nil:
		return domain.ParseProvenance(locType, aws.ToString(loc.WebLocation.Url))
	default:
		return domain.ProvenanceRef{Type: locType}
	}
}
