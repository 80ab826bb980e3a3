// Package domain holds the core types shared across services, adapters
// and the UI.
package domain

import "time"

// AttemptOutcome classifies how a login attempt ended.
type AttemptOutcome string

const (
	// OutcomePending marks an attempt still in flight.
	OutcomePending AttemptOutcome = "pending"
	// OutcomeConnected marks an attempt with an established session.
	OutcomeConnected AttemptOutcome = "connected"
	// OutcomeFailed marks an attempt that exhausted its retries.
	OutcomeFailed AttemptOutcome = "failed"
	// OutcomeClosed marks an attempt whose session was torn down.
	OutcomeClosed AttemptOutcome = "closed"
)

// LoginAttempt records one driver-session lifecycle, from process launch
// through connect to teardown.
type LoginAttempt struct {
	ClosedAt    *time.Time
	ConnectedAt *time.Time
	Error       string
	ID          string
	Outcome     AttemptOutcome
	StartedAt   time.Time
}
