// Package db defines the narrow storage contract conversation persistence
// sits on. The service only needs simple KV and list operations; anything
// richer lives in the managed knowledge base, not here.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrKeyNotFound signals a missing key.
var ErrKeyNotFound = errors.New("key not found")

// Op identifies the storage operation that failed.
type Op string

const (
	OpGet    Op = "get"
	OpSet    Op = "set"
	OpAppend Op = "append"
	OpRange  Op = "range"
	OpDelete Op = "delete"
	OpExpire Op = "expire"
)

// Error wraps a backend failure with the operation that produced it.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("db %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Store is the storage contract for session state.
type Store interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound for missing keys.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value. A zero ttl stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Append pushes a value onto the tail of the list at key.
	Append(ctx context.Context, key string, value []byte) error
	// Range returns every element of the list at key, in insertion order.
	// A missing key yields an empty slice, not an error.
	Range(ctx context.Context, key string) ([][]byte, error)
	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error
	// Expire sets a TTL on a key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}
