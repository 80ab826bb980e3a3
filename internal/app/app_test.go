package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fivver/internal/action"
	"fivver/internal/config"
	"fivver/internal/ui"
)

// probeAction is a component-defined action used to observe dispatch
// ordering.
type probeAction struct {
	name string
}

type recordingComponent struct {
	drawCalls    int
	drawErr      error
	handleReturn action.Action
	log          *[]string
	name         string
	reaction     action.Action
	reactTo      action.Action
	received     []action.Action
}

func (c *recordingComponent) RegisterActionHandler(chan<- action.Action) {}

func (c *recordingComponent) RegisterSettings(*config.Settings) {}

func (c *recordingComponent) Init(width, height int) error { return nil }

func (c *recordingComponent) HandleEvent(event tea.Msg) action.Action {
	ret := c.handleReturn
	c.handleReturn = nil
	return ret
}

func (c *recordingComponent) Update(act action.Action) action.Action {
	c.received = append(c.received, act)
	if c.log != nil {
		*c.log = append(*c.log, fmt.Sprintf("%s:%T", c.name, act))
	}
	if c.reactTo != nil && act == c.reactTo {
		reaction := c.reaction
		c.reactTo = nil
		return reaction
	}
	return nil
}

func (c *recordingComponent) Draw(frame *ui.Frame, area ui.Rect) error {
	c.drawCalls++
	return c.drawErr
}

type fakeTeardown struct {
	calls int
	err   error
	log   *[]string
}

func (f *fakeTeardown) Teardown(ctx context.Context) error {
	f.calls++
	if f.log != nil {
		*f.log = append(*f.log, "teardown")
	}
	return f.err
}

func newTestApp(t *testing.T, session sessionTeardown, components ...ui.Component) *App {
	t.Helper()

	settings := &config.Settings{}
	table, err := settings.BuildKeymap()
	require.NoError(t, err)

	return New(settings, table, session, components...)
}

func dispatch(a *App, act action.Action) tea.Cmd {
	_, cmd := a.Update(actionMsg{act: act})
	return cmd
}

func TestQuitTearsDownOnceAndReachesEveryComponent(t *testing.T) {
	var log []string
	session := &fakeTeardown{log: &log}
	first := &recordingComponent{log: &log, name: "first"}
	second := &recordingComponent{log: &log, name: "second"}
	third := &recordingComponent{log: &log, name: "third"}
	a := newTestApp(t, session, first, second, third)

	dispatch(a, action.Quit{})

	assert.Equal(t, 1, session.calls)
	assert.Equal(t, StateStopped, a.State())
	for _, component := range []*recordingComponent{first, second, third} {
		assert.Contains(t, component.received, action.Action(action.Quit{}))
	}

	// Teardown completes before any component observes the Quit.
	require.Len(t, log, 4)
	assert.Equal(t, "teardown", log[0])

	// A second Quit never reaches the session again.
	dispatch(a, action.Quit{})
	assert.Equal(t, 1, session.calls)
}

func TestQuitTeardownFailureStillStops(t *testing.T) {
	session := &fakeTeardown{err: errors.New("pkill failed")}
	a := newTestApp(t, session, &recordingComponent{})

	dispatch(a, action.Quit{})

	assert.Equal(t, StateStopped, a.State())
	assert.Equal(t, "pkill failed", a.lastError)
}

func TestComponentReactionsSeeOneGenerationLag(t *testing.T) {
	probe := probeAction{name: "reaction"}
	reactor := &recordingComponent{
		name:     "reactor",
		reaction: probe,
		reactTo:  action.Submit{},
	}
	observer := &recordingComponent{name: "observer"}
	a := newTestApp(t, &fakeTeardown{}, reactor, observer)

	// Submit arrives on the channel; the raw event handler of the
	// reactor injects a second action into the same drain.
	reactor.handleReturn = action.Render{}
	dispatch(a, action.Submit{})

	// The reaction is visible only after everything already queued.
	require.Equal(t, []action.Action{action.Submit{}, action.Render{}, probe}, observer.received)
}

func TestEnterResolvesToSubmitInHomeMode(t *testing.T) {
	component := &recordingComponent{}
	a := newTestApp(t, &fakeTeardown{}, component)

	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, component.received, action.Action(action.Submit{}))
}

func TestBufferedTimerWhileSuspendedKeepsTimersArmed(t *testing.T) {
	settings := &config.Settings{FrameRate: 1000, TickRate: 1000}
	table, err := settings.BuildKeymap()
	require.NoError(t, err)
	a := New(settings, table, &fakeTeardown{}, &recordingComponent{})

	// The suspend transition itself releases the terminal.
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.Equal(t, StateSuspended, a.State())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.SuspendMsg{}, cmd())

	// A tick buffered between the keypress and the process stop must
	// not re-suspend, and its re-arm command must survive so the
	// timers keep running after resume.
	_, cmd = a.Update(tickMsg(time.Now()))
	assert.Equal(t, StateSuspended, a.State())
	require.NotNil(t, cmd)
	assert.IsType(t, tickMsg(time.Time{}), cmd())

	_, cmd = a.Update(renderMsg(time.Now()))
	require.NotNil(t, cmd)
	assert.IsType(t, renderMsg(time.Time{}), cmd())

	a.Update(tea.ResumeMsg{})
	assert.Equal(t, StateRunning, a.State())
}

func TestSuspendAndResume(t *testing.T) {
	component := &recordingComponent{}
	a := newTestApp(t, &fakeTeardown{}, component)

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	assert.Equal(t, StateSuspended, a.State())

	a.Update(tea.ResumeMsg{})
	assert.Equal(t, StateRunning, a.State())
	assert.Contains(t, component.received, action.Action(action.Resume{}))
}

func TestDrawErrorBecomesErrorActionAndPassContinues(t *testing.T) {
	failing := &recordingComponent{drawErr: errors.New("bad geometry")}
	healthy := &recordingComponent{}
	a := newTestApp(t, &fakeTeardown{}, failing, healthy)
	a.height = 10
	a.width = 40

	dispatch(a, action.Render{})

	assert.Equal(t, 1, failing.drawCalls)
	assert.Equal(t, 1, healthy.drawCalls)

	var sawError bool
	for _, act := range healthy.received {
		if errAct, ok := act.(action.Error); ok {
			sawError = true
			assert.Contains(t, errAct.Message, "bad geometry")
		}
	}
	assert.True(t, sawError)
}

func TestTickClearsPendingChord(t *testing.T) {
	a := newTestApp(t, &fakeTeardown{}, &recordingComponent{})

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.NotEmpty(t, a.resolver.Pending())

	dispatch(a, action.Tick{})
	assert.Empty(t, a.resolver.Pending())
}

func TestFirstWindowSizeInitializesAndSubmits(t *testing.T) {
	component := &recordingComponent{}
	a := newTestApp(t, &fakeTeardown{}, component)

	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Contains(t, component.received, action.Action(action.Submit{}))
	assert.Contains(t, component.received, action.Action(action.Resize{Height: 24, Width: 80}))
	assert.Equal(t, 1, component.drawCalls)
}
