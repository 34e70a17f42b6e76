// Package metadata is a small key/value repository over the local database,
// used for client state that must survive restarts within a session — today
// only the access token.
package metadata

import "context"

type Repository interface {
	// Get returns the stored value, or common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
