package ragchat

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrock"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

type fakeRetrieveAPI struct{}

func (fakeRetrieveAPI) Retrieve(
	_ context.Context, _ *bedrockagentruntime.RetrieveInput, _ ...func(*bedrockagentruntime.Options),
) (*bedrockagentruntime.RetrieveOutput, error) {
	return &bedrockagentruntime.RetrieveOutput{
		RetrievalResults: []agenttypes.KnowledgeBaseRetrievalResult{
			{
				Content: &agenttypes.RetrievalResultContent{Text: aws.String("the sky is blue")},
				Score:   aws.Float64(0.88),
				Location: &agenttypes.RetrievalResultLocation{
					Type:       agenttypes.RetrievalResultLocationTypeS3,
					S3Location: &agenttypes.RetrievalResultS3Location{Uri: aws.String("s3://kb/docs/sky.md")},
				},
			},
		},
	}, nil
}

type fakeInvokeAPI struct{}

func (fakeInvokeAPI) InvokeModel(
	_ context.Context, _ *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options),
) (*bedrockruntime.InvokeModelOutput, error) {
	return &bedrockruntime.InvokeModelOutput{
		Body: []byte(`{"content":[{"text":"Blue, because of Rayleigh scattering."}]}`),
	}, nil
}

type fakeCatalogAPI struct{}

func (fakeCatalogAPI) ListFoundationModels(
	_ context.Context, _ *awsbedrock.ListFoundationModelsInput, _ ...func(*awsbedrock.Options),
) (*awsbedrock.ListFoundationModelsOutput, error) {
	return &awsbedrock.ListFoundationModelsOutput{
		ModelSummaries: []bedrocktypes.FoundationModelSummary{
			{
				ModelId:          aws.String("anthropic.claude-3-haiku-20240307-v1:0"),
				OutputModalities: []bedrocktypes.ModelModality{bedrocktypes.ModelModalityText},
			},
		},
	}, nil
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	c, err := New(
		WithKnowledgeBase("KBTEST"),
		WithRetrieveClient(fakeRetrieveAPI{}),
		WithInvokeClient(fakeInvokeAPI{}),
		WithCatalogClient(fakeCatalogAPI{}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresKnowledgeBase(t *testing.T) {
	if _, err := New(WithRetrieveClient(fakeRetrieveAPI{})); err == nil {
		t.Fatal("expected error without knowledge base id")
	}
}

func TestClient_Query(t *testing.T) {
	c := newTestClient(t)

	resp, err := c.Query(context.Background(), "why is the sky blue?", QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if resp.Response != "Blue, because of Rayleigh scattering." {
		t.Errorf("response = %q", resp.Response)
	}
	if len(resp.Sources) != 1 || resp.Sources[0].DocumentName != "sky.md" {
		t.Errorf("sources = %+v", resp.Sources)
	}
	if resp.Metadata.ModelID == "" {
		t.Error("default model not applied")
	}
}

func TestClient_Models(t *testing.T) {
	c := newTestClient(t)

	models, err := c.Models(context.Background())
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("models = %d", len(models))
	}
	if models[0].ModelID != "anthropic.claude-3-haiku-20240307-v1:0" {
		t.Errorf("model = %+v", models[0])
	}
}

func TestFallbackModelIDs(t *testing.T) {
	if len(FallbackModelIDs()) != 3 {
		t.Errorf("fallback list = %v", FallbackModelIDs())
	}
}
