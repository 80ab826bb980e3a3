// Package keymap resolves raw key presses into actions using per-mode
// keybinding tables, supporting both single-key bindings and multi-key
// chords accumulated across presses.
package keymap

import (
	"strings"

	"fivver/internal/action"
)

// Mode selects which keybinding table is active. Exactly one mode is
// active at a time.
type Mode string

// ModeHome is the only mode the application uses today. The table model
// supports additional modes without changes here.
const ModeHome Mode = "home"

// Table maps a mode to its bindings. Binding keys are encoded key
// sequences (see Sequence): a single key name for one-key bindings, or
// space-joined key names for chords.
type Table map[Mode]map[string]action.Action

// Sequence encodes an ordered list of key names as a table lookup key.
func Sequence(keys []string) string {
	return strings.Join(keys, " ")
}

// Resolver turns a stream of key presses into actions. It owns the
// pending chord buffer; the buffer is cleared on every successful
// resolution and on every tick (via Reset), bounding how long an
// incomplete chord can wait before being abandoned.
type Resolver struct {
	mode    Mode
	pending []string
	table   Table
}

// NewResolver creates a Resolver over table with the given active mode.
func NewResolver(table Table, mode Mode) *Resolver {
	return &Resolver{mode: mode, table: table}
}

// Mode returns the active mode.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// SetMode switches the active keybinding table and abandons any pending
// chord from the previous mode.
func (r *Resolver) SetMode(mode Mode) {
	r.mode = mode
	r.pending = r.pending[:0]
}

// Pending returns a copy of the accumulated chord buffer. Intended for
// status display and tests.
func (r *Resolver) Pending() []string {
	out := make([]string, len(r.pending))
	copy(out, r.pending)
	return out
}

// Resolve handles a single key press. A single-key binding always wins,
// regardless of any chord in progress. Otherwise the key is appended to
// the pending buffer and the whole accumulated sequence is looked up; on
// a miss the buffer is retained for the next key.
func (r *Resolver) Resolve(key string) (action.Action, bool) {
	bindings, ok := r.table[r.mode]
	if !ok {
		return nil, false
	}

	if act, ok := bindings[key]; ok {
		r.pending = r.pending[:0]
		return act, true
	}

	r.pending = append(r.pending, key)
	if act, ok := bindings[Sequence(r.pending)]; ok {
		r.pending = r.pending[:0]
		return act, true
	}

	return nil, false
}

// Reset abandons any chord in progress. Called on every tick.
func (r *Resolver) Reset() {
	r.pending = r.pending[:0]
}
