// Package driver manages the lifecycle of the external WebDriver process
// and the browser session it hosts.
package driver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"fivver/internal/domain"
	"fivver/internal/logging"
	"fivver/internal/ports"
)

// State is the session lifecycle state.
type State string

const (
	// StateAbsent means no session exists and none is being prepared.
	StateAbsent State = "absent"
	// StateStarting means a session is being brought up.
	StateStarting State = "starting"
	// StateConnected means a live session handle is held.
	StateConnected State = "connected"
	// StateClosed means the session was torn down.
	StateClosed State = "closed"
)

// Stage is the kind of bring-up step a SessionError occurred in.
type Stage string

const (
	StageLaunch  Stage = "launch"
	StageConnect Stage = "connect"
	StageLogin   Stage = "login"
)

// SessionError reports a failed session bring-up, after retries were
// exhausted.
type SessionError struct {
	Err   error
	Stage Stage
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("session %s failed: %v", e.Stage, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Config carries the tunables for session bring-up.
type Config struct {
	ConnectBackoff time.Duration
	ConnectRetries int
	DriverName     string
	Endpoint       string
	LaunchRetries  int
	SettleDelay    time.Duration
}

// DefaultConfig returns the bring-up tunables used when the caller does
// not override them.
func DefaultConfig() Config {
	return Config{
		ConnectBackoff: 500 * time.Millisecond,
		ConnectRetries: 5,
		DriverName:     "geckodriver",
		Endpoint:       "http://localhost:4444",
		LaunchRetries:  3,
		SettleDelay:    2 * time.Second,
	}
}

// ExpectedStartupMessages is how many progress messages a full bring-up
// emits. UI gauges use it as the denominator.
const ExpectedStartupMessages = 3

// Manager owns at most one WebDriver session and serializes every
// lifecycle operation behind a single mutex.
type Manager struct {
	attempt    domain.LoginAttempt
	cfg        Config
	connector  ports.WebConnector
	mu         sync.Mutex
	onProgress func(string)
	process    ports.ProcessController
	repo       ports.AttemptWriter
	session    ports.WebSession
	sleep      func(time.Duration)
	state      State
}

// Option configures a Manager.
type Option func(*Manager)

// WithProgress sets the callback invoked with human-readable startup
// stage text during bring-up.
func WithProgress(fn func(string)) Option {
	return func(m *Manager) { m.onProgress = fn }
}

// WithAttemptWriter enables persistence of attempt lifecycle records.
func WithAttemptWriter(repo ports.AttemptWriter) Option {
	return func(m *Manager) { m.repo = repo }
}

// NewManager creates a session manager in the Absent state.
func NewManager(cfg Config, process ports.ProcessController, connector ports.WebConnector, opts ...Option) *Manager {
	m := &Manager{
		cfg:       cfg,
		connector: connector,
		process:   process,
		sleep:     time.Sleep,
		state:     StateAbsent,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Session returns the live session handle, or ErrNoSession when not
// connected.
func (m *Manager) Session() (ports.WebSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateConnected || m.session == nil {
		return nil, ports.ErrNoSession
	}
	return m.session, nil
}

func (m *Manager) progress(text string) {
	if m.onProgress != nil {
		m.onProgress(text)
	}
}

// EnsureSession brings up a connected, logged-in session. When one is
// already connected it is a no-op. The mutex is held for the whole
// operation, so concurrent callers serialize.
func (m *Manager) EnsureSession(ctx context.Context, creds ports.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateConnected {
		return nil
	}

	m.state = StateStarting
	m.beginAttempt(ctx)

	if err := m.bringUp(ctx, creds); err != nil {
		m.state = StateAbsent
		m.failAttempt(ctx, err)
		return err
	}

	m.state = StateConnected
	m.connectAttempt(ctx)
	return nil
}

func (m *Manager) bringUp(ctx context.Context, creds ports.Credentials) error {
	m.progress("Starting " + m.cfg.DriverName + "...")

	running, err := m.process.FindRunning(m.cfg.DriverName)
	if err != nil {
		return &SessionError{Err: err, Stage: StageLaunch}
	}

	if !running {
		if err := m.launchWithRetries(); err != nil {
			return &SessionError{Err: err, Stage: StageLaunch}
		}
		m.sleep(m.cfg.SettleDelay)
	}

	m.progress("Connecting to WebDriver...")

	session, err := m.connectWithRetries(ctx)
	if err != nil {
		return &SessionError{Err: err, Stage: StageConnect}
	}

	if err := session.Login(ctx, creds); err != nil {
		// The session is usable but the workflow failed; close it so a
		// later ensure starts clean.
		if closeErr := session.Close(ctx); closeErr != nil {
			logging.Logger.Warn("Failed to close session after login error", "error", closeErr)
		}
		return &SessionError{Err: err, Stage: StageLogin}
	}

	m.session = session
	m.progress("Session established")
	return nil
}

func (m *Manager) launchWithRetries() error {
	var lastErr error
	for attempt := 0; attempt < m.cfg.LaunchRetries; attempt++ {
		if attempt > 0 {
			m.sleep(m.cfg.ConnectBackoff)
		}
		if err := m.process.Launch(m.cfg.DriverName); err != nil {
			lastErr = err
			logging.Logger.Warn("Driver launch failed", "attempt", attempt+1, "error", err)
			continue
		}
		return nil
	}
	return fmt.Errorf("failed to launch %s after %d attempts: %w", m.cfg.DriverName, m.cfg.LaunchRetries, lastErr)
}

func (m *Manager) connectWithRetries(ctx context.Context) (ports.WebSession, error) {
	var lastErr error
	for attempt := 0; attempt < m.cfg.ConnectRetries; attempt++ {
		if attempt > 0 {
			m.sleep(m.cfg.ConnectBackoff)
		}
		session, err := m.connector.Connect(ctx, m.cfg.Endpoint)
		if err != nil {
			lastErr = err
			logging.Logger.Warn("WebDriver connect failed", "attempt", attempt+1, "error", err)
			continue
		}
		return session, nil
	}
	return nil, fmt.Errorf("failed to connect to %s after %d attempts: %w", m.cfg.Endpoint, m.cfg.ConnectRetries, lastErr)
}

// Teardown closes the session and terminates every driver process. It is
// idempotent: once Closed (or still Absent) it succeeds without touching
// the process table again.
func (m *Manager) Teardown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateClosed || m.state == StateAbsent {
		return nil
	}

	if m.session != nil {
		if err := m.session.Close(ctx); err != nil {
			// Close failures never block teardown; the process kill
			// below still reclaims the driver.
			logging.Logger.Warn("Session close failed during teardown", "error", err)
		}
		m.session = nil
	}

	if err := m.process.TerminateAll(m.cfg.DriverName); err != nil {
		m.state = StateClosed
		return fmt.Errorf("failed to terminate %s: %w", m.cfg.DriverName, err)
	}

	m.state = StateClosed
	m.closeAttempt(ctx)

	logging.Logger.Info("Session torn down", "driver", m.cfg.DriverName)
	return nil
}

func (m *Manager) beginAttempt(ctx context.Context) {
	if m.repo == nil {
		return
	}
	m.attempt = domain.LoginAttempt{
		ID:        uuid.New().String(),
		Outcome:   domain.OutcomePending,
		StartedAt: time.Now().UTC(),
	}
	if err := m.repo.Add(ctx, m.attempt); err != nil {
		logging.Logger.Warn("Failed to record attempt", "error", err)
		m.repo = nil
	}
}

func (m *Manager) connectAttempt(ctx context.Context) {
	if m.repo == nil || m.attempt.ID == "" {
		return
	}
	now := time.Now().UTC()
	m.attempt.ConnectedAt = &now
	m.attempt.Outcome = domain.OutcomeConnected
	if err := m.repo.Update(ctx, m.attempt); err != nil {
		logging.Logger.Warn("Failed to update attempt", "error", err)
	}
}

func (m *Manager) failAttempt(ctx context.Context, cause error) {
	if m.repo == nil || m.attempt.ID == "" {
		return
	}
	m.attempt.Error = cause.Error()
	m.attempt.Outcome = domain.OutcomeFailed
	if err := m.repo.Update(ctx, m.attempt); err != nil {
		logging.Logger.Warn("Failed to update attempt", "error", err)
	}
}

func (m *Manager) closeAttempt(ctx context.Context) {
	if m.repo == nil || m.attempt.ID == "" {
		return
	}
	now := time.Now().UTC()
	m.attempt.ClosedAt = &now
	m.attempt.Outcome = domain.OutcomeClosed
	if err := m.repo.Update(ctx, m.attempt); err != nil {
		logging.Logger.Warn("Failed to update attempt", "error", err)
	}
}
