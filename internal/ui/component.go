// Package ui holds the pluggable view components rendered by the event
// loop and the frame they draw into.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"fivver/internal/action"
	"fivver/internal/config"
)

// Component is a pluggable view driven entirely by the event loop.
// Components never talk to each other directly; coordination happens
// through the actions they emit from Update or send on the registered
// action channel.
type Component interface {
	// RegisterActionHandler hands the component the loop's action
	// channel for asynchronous emission.
	RegisterActionHandler(actions chan<- action.Action)

	// RegisterSettings hands the component the loaded settings.
	RegisterSettings(settings *config.Settings)

	// Init is called once with the initial terminal size, before the
	// first event.
	Init(width, height int) error

	// HandleEvent offers a raw terminal event to the component. The
	// returned action (nil for none) is enqueued by the loop.
	HandleEvent(event tea.Msg) action.Action

	// Update reacts to a dispatched action. The returned action (nil
	// for none) is appended to the queue tail.
	Update(act action.Action) action.Action

	// Draw renders the component into its assigned area of the frame.
	Draw(frame *Frame, area Rect) error
}
