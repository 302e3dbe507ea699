// Package session maps opaque cookie-held identifiers to the logged-in
// user's id. Sessions live in Redis in production and in an in-process
// TTL cache when no Redis URL is configured.
package session

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("session not found")

// Store is the server-side half of a session: created on login,
// destroyed on logout, expired by the backing store's TTL.
type Store interface {
	Create(ctx context.Context, userID int64) (string, error)
	Get(ctx context.Context, sessionID string) (int64, error)
	Destroy(ctx context.Context, sessionID string) error
}
