package session

import (
	"context"
	"errors"
	"time"

	"github.com/upb/talent-portal/internal/auth"
)

// ErrNotFound is returned when no live record exists for a session ID.
var ErrNotFound = errors.New("session not found")

// Store persists session records by opaque session ID.
type Store interface {
	Get(ctx context.Context, id string) (*auth.User, error)
	Save(ctx context.Context, id string, user *auth.User, ttl time.Duration) error
	// Delete is idempotent; deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
