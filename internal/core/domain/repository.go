package domain

import (
	"context"
	"time"
)

type SessionRepository interface {
	// Create persists a freshly started session.
	Create(ctx context.Context, session *Session) error

	// GetByID returns the session or ErrSessionNotFound.
	GetByID(ctx context.Context, id string) (*Session, error)

	// Update stores the session if its Version still matches the stored one,
	// then increments Version. A stale version returns ErrSessionConflict.
	Update(ctx context.Context, session *Session) error

	Delete(ctx context.Context, id string) error

	// DeleteIdle removes sessions not updated since before and returns their IDs.
	DeleteIdle(ctx context.Context, before time.Time) ([]string, error)
}
