package server

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type stubModel struct{}

func (stubModel) Init() tea.Cmd { return nil }

func (m stubModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

func (stubModel) View() string { return "" }

func TestSessionModelClosesResourcesOnQuit(t *testing.T) {
	var closes int
	model := &sessionModel{
		Model:     stubModel{},
		closer:    func() error { closes++; return nil },
		sessionID: "tester@localhost",
	}

	model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, closes, "closer must not run before the program ends")

	model.Update(tea.QuitMsg{})
	assert.Equal(t, 1, closes)

	// A repeated quit never releases twice.
	model.Update(tea.QuitMsg{})
	assert.Equal(t, 1, closes)
}

func TestSessionModelNilCloser(t *testing.T) {
	model := &sessionModel{Model: stubModel{}, sessionID: "tester@localhost"}

	assert.NotPanics(t, func() {
		model.Update(tea.QuitMsg{})
	})
}
