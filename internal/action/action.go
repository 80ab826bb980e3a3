// Package action defines the messages dispatched through the application
// event loop. Built-in variants cover loop control and rendering; view
// components may define their own variants and emit them through the
// action channel they receive at registration time.
package action

import "fmt"

// Action is a discrete message produced by input handling or a component
// and consumed by the update phase of the loop. Implementations must be
// immutable once constructed.
type Action interface{}

// Tick is emitted by the tick timer. It drives animations and clears any
// in-progress key chord.
type Tick struct{}

// Render is emitted by the render timer and triggers a draw pass.
type Render struct{}

// Resize carries the new terminal dimensions.
type Resize struct {
	Height int
	Width  int
}

// Quit requests an orderly shutdown. Session teardown runs before the
// loop stops.
type Quit struct{}

// Suspend requests that the terminal be released (Ctrl+Z semantics).
type Suspend struct{}

// Resume is enqueued when the terminal is re-acquired after a suspend.
type Resume struct{}

// Submit asks the login component to start (or re-run) the login workflow.
type Submit struct{}

// Message is a generic string-keyed progress/status channel. The "startup"
// key carries human-readable startup stage text consumed by the splash
// components.
type Message struct {
	Fields map[string]string
}

// NewStartupMessage builds a Message carrying startup stage text.
func NewStartupMessage(text string) Message {
	return Message{Fields: map[string]string{"startup": text}}
}

// Error carries a non-fatal error surfaced to the user via the UI.
type Error struct {
	Message string
}

// Parse maps a configuration action name to its Action value. Used when
// loading keybinding tables from settings.
func Parse(name string) (Action, error) {
	switch name {
	case "tick":
		return Tick{}, nil
	case "render":
		return Render{}, nil
	case "quit":
		return Quit{}, nil
	case "suspend":
		return Suspend{}, nil
	case "resume":
		return Resume{}, nil
	case "submit":
		return Submit{}, nil
	}
	return nil, fmt.Errorf("unknown action name %q", name)
}

// Names returns the action names accepted in keybinding configuration.
func Names() []string {
	return []string{"tick", "render", "quit", "suspend", "resume", "submit"}
}
