package ports

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore holds the server-side session allow-list. A session exists
// exactly while its id is present in the store; deleting the id revokes the
// session immediately regardless of the token's own expiry.
type SessionStore interface {
	Save(ctx context.Context, id, username string, ttl time.Duration) error
	// Get returns the username bound to the session id, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (string, error)
	Delete(ctx context.Context, id string) error
}
