// Package session implements the session-scoped key/value store that keeps
// the user collection and the login token across reloads of one console
// session.
//
// Every backend namespaces its keys by a session id, so a new session never
// sees data of another one and Clear only drops the current session's keys.
// Get returns (nil, nil) for absent keys.
package session

import (
	"context"
)

// Store is the session cache contract.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	// Apply writes all changes atomically.
	Apply(ctx context.Context, changes ...Change) error
	Close() error
}

// Change is one write of an Apply batch. Delete wins over Value.
type Change struct {
	Key    string
	Value  []byte
	Delete bool
}

// Put is a Change that sets key to value.
func Put(key string, value []byte) Change {
	return Change{Key: key, Value: value}
}

// Remove is a Change that deletes key.
func Remove(key string) Change {
	return Change{Key: key, Delete: true}
}
