package bedrock

import (
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/document"
)

// metadataToMap converts retrieval result metadata from smithy document
// values to plain Go values. Values that fail to decode are skipped; metadata
// is debug information, not a contract.
func metadataToMap(md map[string]document.Interface) map[string]any {
	if len(md) == 0 {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, doc := range md {
		if doc == nil {
			continue
		}
		var v any
		if err := doc.UnmarshalSmithyDocument(&v); err != nil {
			continue
		}
		out[k] = v
	}
	return out
}
