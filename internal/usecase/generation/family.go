package generation

import (
	"encoding/json"
	"strings"
)

const (
	anthropicVersion = "bedrock-2023-05-31"
	titanTopP        = 0.9

	// noResponseText is returned when the model reply decodes but holds no
	// text at the family's expected path.
	noResponseText = "No response generated"
)

// modelFamily binds a model id substring to that family's request shape and
// response text location.
type modelFamily struct {
	name      string
	substring string
	request   func(prompt string, temperature float64, maxTokens int) any
	extract   func(body []byte) string
}

// families is checked in order; the first substring match wins. Unmatched
// model ids fall back to the Claude request shape and raw-body extraction.
var families = []modelFamily{
	{
		name:      "claude",
		substring: "anthropic.claude",
		request:   claudeRequest,
		extract:   claudeText,
	},
	{
		name:      "titan",
		substring: "amazon.titan",
		request:   titanRequest,
		extract:   titanText,
	},
	{
		name:      "ai21",
		substring: "ai21.j2",
		request:   ai21Request,
		extract:   ai21Text,
	},
}

var fallbackFamily = modelFamily{
	name:      "other",
	substring: "",
	request:   claudeRequest,
	extract:   rawText,
}

func familyFor(modelID string) modelFamily {
	for _, f := range families {
		if strings.Contains(modelID, f.substring) {
			return f
		}
	}
	return fallbackFamily
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func claudeRequest(prompt string, temperature float64, maxTokens int) any {
	return struct {
		AnthropicVersion string          `json:"anthropic_version"`
		MaxTokens        int             `json:"max_tokens"`
		Temperature      float64         `json:"temperature"`
		Messages         []claudeMessage `json:"messages"`
	}{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		Messages:         []claudeMessage{{Role: "user", Content: prompt}},
	}
}

func titanRequest(prompt string, temperature float64, maxTokens int) any {
	type textGenerationConfig struct {
		MaxTokenCount int     `json:"maxTokenCount"`
		Temperature   float64 `json:"temperature"`
		TopP          float64 `json:"topP"`
	}
	return struct {
		InputText            string               `json:"inputText"`
		TextGenerationConfig textGenerationConfig `json:"textGenerationConfig"`
	}{
		InputText: prompt,
		TextGenerationConfig: textGenerationConfig{
			MaxTokenCount: maxTokens,
			Temperature:   temperature,
			TopP:          titanTopP,
		},
	}
}

func ai21Request(prompt string, temperature float64, maxTokens int) any {
	return struct {
		Prompt      string  `json:"prompt"`
		MaxTokens   int     `json:"maxTokens"`
		Temperature float64 `json:"temperature"`
	}{
		Prompt:      prompt,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

func claudeText(body []byte) string {
	var resp struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Content) == 0 || resp.Content[0].Text == "" {
		return noResponseText
	}
	return resp.Content[0].Text
}

func titanText(body []byte) string {
	var resp struct {
		Results []struct {
			OutputText string `json:"outputText"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Results) == 0 || resp.Results[0].OutputText == "" {
		return noResponseText
	}
	return resp.Results[0].OutputText
}

func ai21Text(body []byte) string {
	var resp struct {
		Completions []struct {
			Data struct {
				Text string `json:"text"`
			} `json:"data"`
		} `json:"completions"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Completions) == 0 || resp.Completions[0].Data.Text == "" {
		return noResponseText
	}
	return resp.Completions[0].Data.Text
}

// rawText hands back the body verbatim. Unknown families have no known text
// path, so the caller at least sees what the model said.
func rawText(body []byte) string {
	return string(body)
}
