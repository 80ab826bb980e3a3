package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fivver/internal/action"
)

func testTable() Table {
	return Table{
		ModeHome: {
			"enter":     action.Submit{},
			"q":         action.Quit{},
			"ctrl+z":    action.Suspend{},
			"g g":       action.Render{},
			"g o d":     action.Submit{},
			Sequence([]string{"x", "q"}): action.Suspend{},
		},
	}
}

func TestResolveSingleKeyBinding(t *testing.T) {
	r := NewResolver(testTable(), ModeHome)

	act, ok := r.Resolve("enter")
	require.True(t, ok)
	assert.Equal(t, action.Submit{}, act)
	assert.Empty(t, r.Pending())
}

func TestResolveMultiKeyChord(t *testing.T) {
	r := NewResolver(testTable(), ModeHome)

	act, ok := r.Resolve("g")
	assert.False(t, ok, "chord prefix must not resolve")
	assert.Nil(t, act)

	act, ok = r.Resolve("o")
	assert.False(t, ok)
	assert.Nil(t, act)

	act, ok = r.Resolve("d")
	require.True(t, ok)
	assert.Equal(t, action.Submit{}, act)
	assert.Empty(t, r.Pending(), "buffer clears on resolution")
}

func TestStrictPrefixYieldsNothing(t *testing.T) {
	r := NewResolver(testTable(), ModeHome)

	_, ok := r.Resolve("g")
	assert.False(t, ok)
	_, ok = r.Resolve("o")
	assert.False(t, ok)
	assert.Equal(t, []string{"g", "o"}, r.Pending())
}

func TestTickResetBreaksChord(t *testing.T) {
	r := NewResolver(testTable(), ModeHome)

	_, ok := r.Resolve("g")
	require.False(t, ok)

	// Tick abandons the partial chord; completing it afterwards must not
	// produce the bound action.
	r.Reset()

	act, ok := r.Resolve("g")
	assert.False(t, ok, "second g starts a fresh chord, not g g")
	assert.Nil(t, act)
}

func TestSingleKeyBindingTakesPrecedence(t *testing.T) {
	r := NewResolver(testTable(), ModeHome)

	// "x q" is bound as a chord, but "q" alone is also bound. With "x"
	// pending, pressing "q" must resolve the single-key binding.
	_, ok := r.Resolve("x")
	require.False(t, ok)

	act, ok := r.Resolve("q")
	require.True(t, ok)
	assert.Equal(t, action.Quit{}, act)
}

func TestUnknownModeResolvesNothing(t *testing.T) {
	r := NewResolver(testTable(), Mode("settings"))

	for _, key := range []string{"enter", "q", "g"} {
		act, ok := r.Resolve(key)
		assert.False(t, ok, "key %q", key)
		assert.Nil(t, act)
	}
	assert.Empty(t, r.Pending(), "unknown mode accumulates nothing")
}

func TestSetModeClearsPending(t *testing.T) {
	r := NewResolver(testTable(), ModeHome)

	_, ok := r.Resolve("g")
	require.False(t, ok)
	require.NotEmpty(t, r.Pending())

	r.SetMode(ModeHome)
	assert.Empty(t, r.Pending())
}
