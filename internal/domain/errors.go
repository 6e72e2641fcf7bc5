package domain

import "errors"

var (
	// ErrRetrieval signals a failed knowledge base search. The transport
	// cause is wrapped so callers can still inspect it.
	ErrRetrieval = errors.New("knowledge base retrieval failed")
	// ErrGeneration signals a failed foundation model invocation.
	ErrGeneration = errors.New("response generation failed")
	// ErrSessionNotFound signals a missing conversation session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidSearchMode signals an unrecognized search mode value.
	ErrInvalidSearchMode = errors.New("invalid search mode")
)
