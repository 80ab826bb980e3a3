package ports

import (
	"context"
	"errors"
)

// ErrNoSession is returned when an operation requires an established
// session handle and none exists.
var ErrNoSession = errors.New("no webdriver session established")

// Credentials holds the marketplace login credentials read from the
// environment at startup.
type Credentials struct {
	Password string
	Username string
}

// WebSession is a live handle to an automated browser session brokered
// through the local driver process.
type WebSession interface {
	// Login performs the marketplace login workflow with the given
	// credentials.
	Login(ctx context.Context, creds Credentials) error

	// Close gracefully ends the browser session. Safe to call once.
	Close(ctx context.Context) error
}

// WebConnector establishes sessions against a WebDriver endpoint.
type WebConnector interface {
	// Connect establishes a new session against the endpoint URL
	// (e.g. http://localhost:4444).
	Connect(ctx context.Context, endpoint string) (WebSession, error)
}
