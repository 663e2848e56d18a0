// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// KeyValueCache mirrors last-known display values. It is never authoritative.
type KeyValueCache interface {
	// Get returns the cached value and whether it was found.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value under key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the value stored under key.
	Remove(ctx context.Context, key string) error
}
