package domain

import (
	"strings"
	"time"
)

// ProvenanceTypeS3 is the only location type this service parses; other
// types pass through with their raw URI.
const ProvenanceTypeS3 = "S3"

// ProvenanceRef points to where a retrieved passage originated.
type ProvenanceRef struct {
	Type   string `json:"type"`
	URI    string `json:"uri"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// ParseProvenance builds a ProvenanceRef from a location type and URI.
// For S3 locations the bucket is the third slash-delimited URI segment
// ("s3://bucket/key/...") and the key is everything after it. An empty URI
// yields empty bucket and key.
func ParseProvenance(locType, uri string) ProvenanceRef {
	ref := ProvenanceRef{Type: locType, URI: uri}
	if locType != ProvenanceTypeS3 || uri == "" {
		return ref
	}

	parts := strings.Split(uri, "/")
	if len(parts) > 2 {
		ref.Bucket = parts[2]
	}
	if len(parts) > 3 {
		ref.Key = strings.Join(parts[3:], "/")
	}
	return ref
}

// DocumentName derives a display name from the last path segment of the key.
// Returns empty when there is no key to derive from.
func (p ProvenanceRef) DocumentName() string {
	if p.Key == "" {
		return ""
	}
	segments := strings.Split(p.Key, "/")
	return segments[len(segments)-1]
}

// RetrievedPassage is a scored text snippet returned by the knowledge base.
// Passages are created fresh per retrieval call and never mutated.
type RetrievedPassage struct {
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Location ProvenanceRef  `json:"location"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RetrievalResult is the outcome of a single knowledge base query.
type RetrievalResult struct {
	Query            string             `json:"query"`
	Results          []RetrievedPassage `json:"results"`
	TotalResults     int                `json:"total_results"`
	QueryTimeSeconds float64            `json:"query_time_seconds"`
	Timestamp        string             `json:"timestamp"`
	SearchType       SearchMode         `json:"search_type"`
}

// Timestamp returns the current UTC time in RFC 3339 format, the wire format
// for every timestamp this service emits.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
