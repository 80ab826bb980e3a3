package ui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"fivver/internal/action"
	"fivver/internal/config"
	"fivver/internal/driver"
	"fivver/internal/logging"
	"fivver/internal/ports"
)

// Login drives the browser session: a Submit action kicks off the
// bring-up in the background and progress flows back through the action
// channel as startup messages.
type Login struct {
	actions  chan<- action.Action
	creds    ports.Credentials
	manager  *driver.Manager
	mu       sync.Mutex
	running  bool
	settings *config.Settings
}

var _ Component = (*Login)(nil)

// NewLogin creates the login component around a session manager and the
// credentials it should submit.
func NewLogin(manager *driver.Manager, creds ports.Credentials) *Login {
	return &Login{creds: creds, manager: manager}
}

func (l *Login) RegisterActionHandler(actions chan<- action.Action) {
	l.actions = actions
}

func (l *Login) RegisterSettings(settings *config.Settings) {
	l.settings = settings
}

func (l *Login) Init(width, height int) error {
	return nil
}

func (l *Login) HandleEvent(event tea.Msg) action.Action {
	return nil
}

// Update starts the session bring-up on Submit. A bring-up already in
// flight makes Submit a no-op.
func (l *Login) Update(act action.Action) action.Action {
	if _, ok := act.(action.Submit); !ok {
		return nil
	}

	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return nil
	}
	l.running = true
	l.mu.Unlock()

	go l.ensure()
	return nil
}

func (l *Login) ensure() {
	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	if err := l.manager.EnsureSession(context.Background(), l.creds); err != nil {
		logging.Logger.Error("Session bring-up failed", "error", err)
		if l.actions != nil {
			l.actions <- action.Error{Message: err.Error()}
		}
	}
}

func (l *Login) Draw(frame *Frame, area Rect) error {
	return nil
}
