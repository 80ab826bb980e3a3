package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"fivver/internal/logging"
)

// sessionModel wraps the per-session model to release its resources and
// log session lifetime
type sessionModel struct {
	tea.Model
	closed    bool
	closer    func() error
	sessionID string
	startTime time.Time
}

func (s *sessionModel) Init() tea.Cmd {
	return s.Model.Init()
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		s.close()
		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", time.Since(s.startTime).String())
	}

	updatedModel, cmd := s.Model.Update(msg)
	s.Model = updatedModel
	return s, cmd
}

func (s *sessionModel) close() {
	if s.closed || s.closer == nil {
		return
	}
	s.closed = true
	if err := s.closer(); err != nil {
		logging.Logger.Warn("Failed to release session resources",
			"error", err,
			"session_id", s.sessionID)
	}
}

func (s *sessionModel) View() string {
	return s.Model.View()
}

// teaHandler creates a fresh root model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	model, closer, err := s.factory()
	if err != nil {
		logging.Logger.Error("Failed to build session model",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	wrappedModel := &sessionModel{
		Model:     model,
		closer:    closer,
		sessionID: sessionID,
		startTime: time.Now(),
	}

	return wrappedModel, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
