// Package kvstore is the small durable key-value layer behind reminder
// bookkeeping. Production uses Redis; tests swap in the in-memory store.
package kvstore

import "context"

// ErrNotFound is returned when a key has no value.
type notFoundError struct{}

func (notFoundError) Error() string { return "kvstore: key not found" }

var ErrNotFound error = notFoundError{}

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
