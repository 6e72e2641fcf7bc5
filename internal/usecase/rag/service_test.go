package rag

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/kailas-cloud/ragchat/internal/domain"
)

type mockRetriever struct {
	result domain.RetrievalResult
	err    error

	gotQuery      string
	gotMaxResults int
	gotMode       domain.SearchMode
}

func (m *mockRetriever) Retrieve(
	_ context.Context, query string, maxResults int, mode domain.SearchMode,
) (domain.RetrievalResult, error) {
	m.gotQuery = query
	m.gotMaxResults = maxResults
	m.gotMode = mode
	return m.result, m.err
}

type mockGenerator struct {
	answer domain.GeneratedAnswer
	err    error
	calls  int

	gotPassages []string
	gotModelID  string
	gotTemp     float64
	gotTokens   int
}

func (m *mockGenerator) Generate(
	_ context.Context, _ string, passages []string, modelID string, temperature float64, maxTokens int,
) (domain.GeneratedAnswer, error) {
	m.calls++
	m.gotPassages = passages
	m.gotModelID = modelID
	m.gotTemp = temperature
	m.gotTokens = maxTokens
	return m.answer, m.err
}

func passageFixture(content string, score float64, key string) domain.RetrievedPassage {
	return domain.RetrievedPassage{
		Content: content,
		Score:   score,
		Location: domain.ProvenanceRef{
			Type: domain.ProvenanceTypeS3, URI: "s3://docs/" + key, Bucket: "docs", Key: key,
		},
	}
}

func TestQueryAndGenerate_HappyPath(t *testing.T) {
	ret := &mockRetriever{result: domain.RetrievalResult{
		Query: "refund policy",
		Results: []domain.RetrievedPassage{
			passageFixture("refunds take 14 days", 0.91234, "policies/refund.pdf"),
			passageFixture("contact support first", 0.8, "faq/support.md"),
		},
		TotalResults:     2,
		QueryTimeSeconds: 0.25,
		SearchType:       domain.SearchHybrid,
	}}
	gen := &mockGenerator{answer: domain.GeneratedAnswer{
		Text:                  "Refunds take 14 days.",
		GenerationTimeSeconds: 1.5,
	}}
	svc := New(ret, gen, "anthropic.claude-3-5-sonnet-20240620-v1:0")

	resp, err := svc.QueryAndGenerate(context.Background(), Request{Query: "refund policy"})
	if err != nil {
		t.Fatalf("QueryAndGenerate: %v", err)
	}

	if resp.Response != "Refunds take 14 days." {
		t.Errorf("response = %q", resp.Response)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("sources = %d", len(resp.Sources))
	}
	if resp.Sources[0].Index != 1 || resp.Sources[1].Index != 2 {
		t.Errorf("citation indexes = %d, %d", resp.Sources[0].Index, resp.Sources[1].Index)
	}
	if resp.Sources[0].Score != 0.912 {
		t.Errorf("score not rounded to 3 decimals: %v", resp.Sources[0].Score)
	}
	if resp.Sources[0].DocumentName != "refund.pdf" {
		t.Errorf("document name = %q", resp.Sources[0].DocumentName)
	}

	md := resp.Metadata
	if md.TotalTime != md.KBQueryTime+md.GenerationTime {
		t.Errorf("total_time = %v, want sum of %v and %v", md.TotalTime, md.KBQueryTime, md.GenerationTime)
	}
	if md.TotalResults != 2 || md.SearchType != domain.SearchHybrid {
		t.Errorf("metadata = %+v", md)
	}
	if md.Timestamp == "" {
		t.Error("timestamp not set")
	}

	// Generator receives passage contents only, in retrieval order.
	if len(gen.gotPassages) != 2 || gen.gotPassages[0] != "refunds take 14 days" {
		t.Errorf("generator passages = %v", gen.gotPassages)
	}
}

func TestQueryAndGenerate_AppliesDefaults(t *testing.T) {
	ret := &mockRetriever{result: domain.RetrievalResult{}}
	gen := &mockGenerator{}
	svc := New(ret, gen, "default-model")

	if _, err := svc.QueryAndGenerate(context.Background(), Request{Query: "q"}); err != nil {
		t.Fatalf("QueryAndGenerate: %v", err)
	}

	if ret.gotMaxResults != 5 || ret.gotMode != domain.SearchHybrid {
		t.Errorf("retriever got (%d, %s)", ret.gotMaxResults, ret.gotMode)
	}
	if gen.gotModelID != "default-model" || gen.gotTemp != 0.7 || gen.gotTokens != 4096 {
		t.Errorf("generator got (%q, %v, %d)", gen.gotModelID, gen.gotTemp, gen.gotTokens)
	}
}

func TestQueryAndGenerate_ExplicitValuesWin(t *testing.T) {
	ret := &mockRetriever{result: domain.RetrievalResult{}}
	gen := &mockGenerator{}
	svc := New(ret, gen, "default-model")

	_, err := svc.QueryAndGenerate(context.Background(), Request{
		Query:       "q",
		MaxResults:  10,
		ModelID:     "amazon.titan-text-express-v1",
		Temperature: 0.2,
		MaxTokens:   1024,
		SearchMode:  domain.SearchSemantic,
	})
	if err != nil {
		t.Fatalf("QueryAndGenerate: %v", err)
	}

	if ret.gotMaxResults != 10 || ret.gotMode != domain.SearchSemantic {
		t.Errorf("retriever got (%d, %s)", ret.gotMaxResults, ret.gotMode)
	}
	if gen.gotModelID != "amazon.titan-text-express-v1" || gen.gotTemp != 0.2 || gen.gotTokens != 1024 {
		t.Errorf("generator got (%q, %v, %d)", gen.gotModelID, gen.gotTemp, gen.gotTokens)
	}
}

func TestQueryAndGenerate_RetrievalFailureSkipsGeneration(t *testing.T) {
	ret := &mockRetriever{err: domain.ErrRetrieval}
	gen := &mockGenerator{}
	svc := New(ret, gen, "m")

	_, err := svc.QueryAndGenerate(context.Background(), Request{Query: "q"})
	if !errors.Is(err, domain.ErrRetrieval) {
		t.Fatalf("expected ErrRetrieval, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("generator invoked %d times after retrieval failure", gen.calls)
	}
}

func TestQueryAndGenerate_GenerationFailurePropagates(t *testing.T) {
	ret := &mockRetriever{result: domain.RetrievalResult{}}
	gen := &mockGenerator{err: domain.ErrGeneration}
	svc := New(ret, gen, "m")

	_, err := svc.QueryAndGenerate(context.Background(), Request{Query: "q"})
	if !errors.Is(err, domain.ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestFormatSources_PreviewTruncation(t *testing.T) {
	sources := formatSources([]domain.RetrievedPassage{
		{Content: strings.Repeat("a", 250), Score: 0.5},
		{Content: "short", Score: 0.4},
		{Content: strings.Repeat("b", 201), Score: 0.3},
		{Content: strings.Repeat("c", 200), Score: 0.2},
	})

	if len(sources[0].ContentPreview) != previewLimit+3 {
		t.Errorf("preview length = %d", len(sources[0].ContentPreview))
	}
	if !strings.HasSuffix(sources[0].ContentPreview, "...") {
		t.Errorf("preview not marked: %q", sources[0].ContentPreview[195:])
	}
	if sources[1].ContentPreview != "short" {
		t.Errorf("short preview altered: %q", sources[1].ContentPreview)
	}
	if sources[1].DocumentName != "" {
		t.Errorf("document name without key: %q", sources[1].DocumentName)
	}
	// One past the limit truncates, exactly at the limit does not.
	if len(sources[2].ContentPreview) != 203 {
		t.Errorf("201-char preview length = %d", len(sources[2].ContentPreview))
	}
	if len(sources[3].ContentPreview) != 200 || strings.HasSuffix(sources[3].ContentPreview, "...") {
		t.Errorf("200-char preview altered: length %d", len(sources[3].ContentPreview))
	}
}

func TestFormatSources_PreviewCountsCharactersNotBytes(t *testing.T) {
	// 250 three-byte runes: a byte-based cut would keep 66 characters and
	// split the 67th.
	sources := formatSources([]domain.RetrievedPassage{
		{Content: strings.Repeat("日", 250), Score: 0.5},
	})

	got := sources[0].ContentPreview
	if !utf8.ValidString(got) {
		t.Fatalf("preview is not valid UTF-8: %q", got[:20])
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long preview not marked: %q", got[len(got)-10:])
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n != previewLimit {
		t.Errorf("preview kept %d characters, want %d", n, previewLimit)
	}
}

func TestFormatSources_ShortMultiBytePreviewUntouched(t *testing.T) {
	content := strings.Repeat("ü", 150)
	sources := formatSources([]domain.RetrievedPassage{{Content: content, Score: 0.5}})
	if sources[0].ContentPreview != content {
		t.Errorf("150-character preview altered: %q", sources[0].ContentPreview)
	}
}

func TestFormatSources_Idempotent(t *testing.T) {
	passages := []domain.RetrievedPassage{
		passageFixture(strings.Repeat("x", 300), 0.91234, "a/b.pdf"),
		passageFixture("short", 0.5, "c.md"),
	}

	first := formatSources(passages)
	second := formatSources(passages)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("formatting not idempotent:\n%+v\n%+v", first, second)
	}
}
