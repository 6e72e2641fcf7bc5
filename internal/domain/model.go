package domain

import "slices"

// ModalityText is the output modality of text generation models.
const ModalityText = "TEXT"

// FoundationModel describes an entry from the model catalog service.
type FoundationModel struct {
	ModelID                    string   `json:"model_id"`
	ModelName                  string   `json:"model_name"`
	ProviderName               string   `json:"provider_name"`
	InputModalities            []string `json:"input_modalities"`
	OutputModalities           []string `json:"output_modalities"`
	ResponseStreamingSupported bool     `json:"response_streaming_supported"`
}

// SupportsTextOutput reports whether the model can generate text.
func (m FoundationModel) SupportsTextOutput() bool {
	return slices.Contains(m.OutputModalities, ModalityText)
}

// FallbackTextModelIDs is the hardcoded model list callers fall back to when
// the catalog service returns nothing.
func FallbackTextModelIDs() []string {
	return []string{
		"anthropic.claude-3-5-sonnet-20240620-v1:0",
		"anthropic.claude-3-haiku-20240307-v1:0",
		"amazon.titan-text-express-v1",
	}
}
