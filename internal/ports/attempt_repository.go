package ports

import (
	"context"

	"fivver/internal/domain"
)

// AttemptWriter records login attempt lifecycle events.
type AttemptWriter interface {
	Add(ctx context.Context, attempt domain.LoginAttempt) error
	Update(ctx context.Context, attempt domain.LoginAttempt) error
}

// AttemptReader reads recorded login attempts.
type AttemptReader interface {
	List(ctx context.Context, limit int) ([]domain.LoginAttempt, error)
}

// AttemptRepository is the composite interface persisting login attempt
// history.
type AttemptRepository interface {
	AttemptReader
	AttemptWriter
	Close() error
}
