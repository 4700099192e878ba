// Package metadata is the local key/value table the client uses for
// small pieces of state, such as the session token.
package metadata

import (
	"context"
)

// Repository reads and writes single metadata values by key.
// Get returns (nil, nil) for a key that was never set.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
