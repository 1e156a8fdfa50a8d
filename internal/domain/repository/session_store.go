package repository

import "context"

// SessionStore persists the username of the logged-in user.
type SessionStore interface {
	// GetUsername reports ok=false when nothing has been stored.
	GetUsername(ctx context.Context) (username string, ok bool, err error)
	PutUsername(ctx context.Context, username string) error
	Clear(ctx context.Context) error
}
