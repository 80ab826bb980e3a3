// Package app runs the action-dispatch event loop as the root bubbletea
// model. One terminal or timer event enters per Update call; every action
// it produces is drained from the queue before the next blocking wait.
package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fivver/internal/action"
	"fivver/internal/config"
	"fivver/internal/keymap"
	"fivver/internal/logging"
	"fivver/internal/theme"
	"fivver/internal/ui"
)

// LoopState is the lifecycle state of the event loop.
type LoopState string

const (
	StateRunning   LoopState = "running"
	StateSuspended LoopState = "suspended"
	StateStopped   LoopState = "stopped"
)

// sessionTeardown is the slice of the session manager the loop needs on
// Quit.
type sessionTeardown interface {
	Teardown(ctx context.Context) error
}

// Internal timer and channel messages.
type tickMsg time.Time

type renderMsg time.Time

type actionMsg struct {
	act action.Action
}

// App owns the action queue, the chord resolver and the registered
// components. It implements tea.Model; bubbletea supplies raw mode, the
// alternate screen and the one-event-at-a-time blocking wait.
type App struct {
	actions       chan action.Action
	components    []ui.Component
	height        int
	initialized   bool
	justSuspended bool
	lastError     string
	quitting      bool
	resolver      *keymap.Resolver
	session       sessionTeardown
	settings      *config.Settings
	state         LoopState
	suspended     bool
	tornDown      bool
	view          string
	width         int
}

var _ tea.Model = (*App)(nil)

// New creates the App and registers the action channel and settings on
// every component.
func New(settings *config.Settings, table keymap.Table, session sessionTeardown, components ...ui.Component) *App {
	a := &App{
		actions:    make(chan action.Action, 64),
		components: components,
		resolver:   keymap.NewResolver(table, keymap.ModeHome),
		session:    session,
		settings:   settings,
		state:      StateRunning,
	}

	for _, component := range a.components {
		component.RegisterActionHandler(a.actions)
		component.RegisterSettings(settings)
	}

	return a
}

// State returns the loop state.
func (a *App) State() LoopState { return a.state }

// ActionChannel returns the channel asynchronous work uses to feed
// actions into the loop.
func (a *App) ActionChannel() chan<- action.Action { return a.actions }

// Init starts the tick timer, the render timer and the action channel
// listener.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.tickCmd(), a.renderCmd(), a.listenCmd())
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(a.settings.TickInterval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) renderCmd() tea.Cmd {
	return tea.Tick(a.settings.FrameInterval(), func(t time.Time) tea.Msg {
		return renderMsg(t)
	})
}

func (a *App) listenCmd() tea.Cmd {
	return func() tea.Msg {
		return actionMsg{act: <-a.actions}
	}
}

// Update handles exactly one incoming event: classify it into actions,
// offer the raw event to every component, then drain the queue fully
// before returning.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var queue []action.Action
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if act, ok := a.resolver.Resolve(msg.String()); ok {
			queue = append(queue, act)
		}
	case tea.WindowSizeMsg:
		if !a.initialized {
			a.initialized = true
			a.height = msg.Height
			a.width = msg.Width
			for _, component := range a.components {
				if err := component.Init(msg.Width, msg.Height); err != nil {
					queue = append(queue, action.Error{Message: fmt.Sprintf("failed to init component: %v", err)})
				}
			}
			// Session bring-up starts as soon as the terminal is ready.
			queue = append(queue, action.Resize{Height: msg.Height, Width: msg.Width}, action.Submit{})
		} else {
			queue = append(queue, action.Resize{Height: msg.Height, Width: msg.Width})
		}
	case tea.ResumeMsg:
		queue = append(queue, action.Resume{})
	case tickMsg:
		queue = append(queue, action.Tick{})
		cmds = append(cmds, a.tickCmd())
	case renderMsg:
		queue = append(queue, action.Render{})
		cmds = append(cmds, a.renderCmd())
	case actionMsg:
		queue = append(queue, msg.act)
		cmds = append(cmds, a.listenCmd())
	}

	// Raw events also go to every component, in registration order.
	for _, component := range a.components {
		if act := component.HandleEvent(msg); act != nil {
			queue = append(queue, act)
		}
	}

	a.drain(queue)

	if a.quitting {
		a.state = StateStopped
		return a, tea.Quit
	}
	if a.suspended {
		a.state = StateSuspended
		// Release the terminal only on the transition. Messages that
		// arrive while already suspended must still re-arm their
		// timers, or ticks and renders would die across a resume.
		if a.justSuspended {
			a.justSuspended = false
			cmds = append(cmds, tea.Suspend)
		}
		return a, tea.Batch(cmds...)
	}
	a.state = StateRunning

	return a, tea.Batch(cmds...)
}

// drain processes the queue strictly in FIFO order. Actions a component
// returns from Update are appended to the tail, so they become visible
// only after everything already queued.
func (a *App) drain(queue []action.Action) {
	for len(queue) > 0 {
		act := queue[0]
		queue = queue[1:]

		switch act := act.(type) {
		case action.Tick:
			a.resolver.Reset()
		case action.Quit:
			if !a.quitting {
				a.quitting = true
				a.teardown()
			}
		case action.Suspend:
			if !a.suspended {
				a.suspended = true
				a.justSuspended = true
			}
		case action.Resume:
			a.suspended = false
			a.justSuspended = false
		case action.Resize:
			a.height = act.Height
			a.width = act.Width
			queue = a.draw(queue)
		case action.Render:
			queue = a.draw(queue)
		case action.Error:
			a.lastError = act.Message
			logging.Logger.Error("UI error", "message", act.Message)
		}

		for _, component := range a.components {
			if reaction := component.Update(act); reaction != nil {
				queue = append(queue, reaction)
			}
		}
	}
}

// teardown runs the session teardown synchronously; the drain does not
// continue until it completes.
func (a *App) teardown() {
	if a.tornDown {
		return
	}
	a.tornDown = true
	if a.session == nil {
		return
	}
	if err := a.session.Teardown(context.Background()); err != nil {
		logging.Logger.Error("Teardown failed", "error", err)
		a.lastError = err.Error()
	}
}

// draw runs a full draw pass. A component draw error becomes an Error
// action; the pass always visits every component.
func (a *App) draw(queue []action.Action) []action.Action {
	if a.width <= 0 || a.height <= 0 {
		return queue
	}

	frame := ui.NewFrame(a.width, a.height)
	area := ui.Rect{Height: a.height, Width: a.width}
	for _, component := range a.components {
		if err := component.Draw(frame, area); err != nil {
			queue = append(queue, action.Error{Message: fmt.Sprintf("failed to draw: %v", err)})
		}
	}

	view := frame.Render()
	if a.lastError != "" {
		view += "\n" + theme.ErrorStyle.Render(a.lastError)
	}
	a.view = view
	return queue
}

// View returns the last rendered frame.
func (a *App) View() string {
	return a.view
}

// Run starts the bubbletea program on the local terminal.
func (a *App) Run() error {
	program := tea.NewProgram(a, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("event loop failed: %w", err)
	}
	return nil
}
