package config

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		AWS: AWSConfig{
			Region:          "us-east-1",
			KnowledgeBaseID: "KB123456",
		},
		Session: SessionConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_MissingKnowledgeBaseID(t *testing.T) {
	cfg := validConfig()
	cfg.AWS.KnowledgeBaseID = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing knowledge base id")
	}
	if err.Error() != "aws.knowledge_base_id is required" {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestValidate_BadSearchMode(t *testing.T) {
	cfg := validConfig()
	cfg.Retrieval.SearchMode = "FULLTEXT"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown search mode")
	}
}

func TestValidate_TemperatureRange(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Temperature = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for temperature outside [0,1]")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		AWS:     AWSConfig{KnowledgeBaseID: "KB123456"},
		Session: SessionConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()

	if cfg.AWS.Region != "us-east-1" {
		t.Errorf("region default = %q", cfg.AWS.Region)
	}
	if cfg.Retrieval.MaxResults != 5 {
		t.Errorf("max_results default = %d", cfg.Retrieval.MaxResults)
	}
	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("temperature default = %g", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 4096 {
		t.Errorf("max_tokens default = %d", cfg.Generation.MaxTokens)
	}
	if cfg.Retrieval.SearchMode != "HYBRID" {
		t.Errorf("search_mode default = %q", cfg.Retrieval.SearchMode)
	}
	if cfg.Session.KeyPrefix != "ragchat:" {
		t.Errorf("key_prefix default = %q", cfg.Session.KeyPrefix)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("RAGCHAT_TEST_KB", "KB999")

	out := expandEnvVars([]byte("kb: ${RAGCHAT_TEST_KB}\nregion: ${RAGCHAT_TEST_UNSET:-eu-west-1}\n"))
	want := "kb: KB999\nregion: eu-west-1\n"
	if string(out) != want {
		t.Errorf("expanded = %q, want %q", out, want)
	}
}

// --- SSM overlay ---

type mockParamGetter struct {
	value string
	err   error
	calls int
}

func (m *mockParamGetter) GetParameter(
	_ context.Context, _ *ssm.GetParameterInput, _ ...func(*ssm.Options),
) (*ssm.GetParameterOutput, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &ssm.GetParameterOutput{
		Parameter: &ssmtypes.Parameter{Value: aws.String(m.value)},
	}, nil
}

func TestApplySSM_MergesOverFileConfig(t *testing.T) {
	cfg := validConfig()
	cfg.AWS.SSMParameter = "/ragchat/dev/frontend-config"

	client := &mockParamGetter{
		value: `{"knowledgeBaseId":"KB-FROM-SSM","temperature":0.3,"maxResults":8}`,
	}
	if err := cfg.ApplySSM(context.Background(), client); err != nil {
		t.Fatalf("ApplySSM: %v", err)
	}

	if cfg.AWS.KnowledgeBaseID != "KB-FROM-SSM" {
		t.Errorf("knowledge base id = %q", cfg.AWS.KnowledgeBaseID)
	}
	if cfg.Generation.Temperature != 0.3 {
		t.Errorf("temperature = %g", cfg.Generation.Temperature)
	}
	if cfg.Retrieval.MaxResults != 8 {
		t.Errorf("max_results = %d", cfg.Retrieval.MaxResults)
	}
	// Untouched fields keep file values.
	if cfg.AWS.Region != "us-east-1" {
		t.Errorf("region overwritten: %q", cfg.AWS.Region)
	}
}

func TestApplySSM_FailureLeavesConfigIntact(t *testing.T) {
	cfg := validConfig()
	cfg.AWS.SSMParameter = "/ragchat/dev/frontend-config"
	before := cfg

	client := &mockParamGetter{err: errors.New("ParameterNotFound")}
	if err := cfg.ApplySSM(context.Background(), client); err == nil {
		t.Fatal("expected error from failed parameter fetch")
	}

	if cfg.AWS != before.AWS || cfg.Generation != before.Generation {
		t.Error("config mutated despite overlay failure")
	}
}

func TestApplySSM_NoParameterConfigured(t *testing.T) {
	cfg := validConfig()

	client := &mockParamGetter{}
	if err := cfg.ApplySSM(context.Background(), client); err != nil {
		t.Fatalf("ApplySSM without parameter name: %v", err)
	}
	if client.calls != 0 {
		t.Error("GetParameter should not be called when no parameter is configured")
	}
}
