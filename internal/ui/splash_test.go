package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fivver/internal/action"
)

func TestSplashProgressMonotonicAndCapped(t *testing.T) {
	splash := NewSplash(SplashConfig{ExpectedMessages: 3, ShowGauge: true})

	assert.Equal(t, 0.0, splash.Progress())

	previous := 0.0
	for i := 0; i < 5; i++ {
		splash.Update(action.NewStartupMessage("stage"))
		ratio := splash.Progress()
		assert.GreaterOrEqual(t, ratio, previous)
		assert.LessOrEqual(t, ratio, 1.0)
		previous = ratio
	}

	// Five messages against an expected three pin the gauge at exactly full.
	assert.Equal(t, 1.0, splash.Progress())
}

func TestSplashProgressRatio(t *testing.T) {
	splash := NewSplash(SplashConfig{ExpectedMessages: 3})

	splash.Update(action.NewStartupMessage("one"))
	assert.InDelta(t, 1.0/3.0, splash.Progress(), 1e-9)

	splash.Update(action.NewStartupMessage("two"))
	assert.InDelta(t, 2.0/3.0, splash.Progress(), 1e-9)

	splash.Update(action.NewStartupMessage("three"))
	assert.Equal(t, 1.0, splash.Progress())
}

func TestSplashAnimationStopsAtLastFrame(t *testing.T) {
	splash := NewLoginView()

	for i := 0; i < len(logoFrames)+5; i++ {
		splash.Update(action.Tick{})
	}

	assert.Equal(t, len(logoFrames)-1, splash.counter)
	assert.False(t, splash.animated)
}

func TestSplashLoadingLineShowsMostRecentMessage(t *testing.T) {
	splash := NewLoginView()
	assert.Equal(t, "Loading...", splash.loadingLine())

	splash.Update(action.NewStartupMessage("Starting geckodriver..."))
	splash.Update(action.NewStartupMessage("Connecting to WebDriver..."))
	assert.Equal(t, "Connecting to WebDriver...", splash.loadingLine())
}

func TestSplashIgnoresUnrelatedMessages(t *testing.T) {
	splash := NewSplash(SplashConfig{ExpectedMessages: 3})

	splash.Update(action.Message{Fields: map[string]string{"other": "x"}})
	assert.Equal(t, 0.0, splash.Progress())
}

func TestSplashDrawFillsFrame(t *testing.T) {
	splash := NewLoginView()
	require.NoError(t, splash.Init(80, 24))

	frame := NewFrame(80, 24)
	require.NoError(t, splash.Draw(frame, Rect{Height: 24, Width: 80}))

	view := frame.Render()
	assert.Contains(t, view, "Loading...")
	assert.Equal(t, 24, len(strings.Split(view, "\n")))
}

func TestFrameSetContentClipsToArea(t *testing.T) {
	frame := NewFrame(10, 3)
	frame.SetContent(Rect{Height: 2, Width: 10, Y: 0}, "a\nb\nc")

	lines := strings.Split(frame.Render(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "a", lines[0])
	assert.Equal(t, "b", lines[1])
	assert.Equal(t, "", lines[2])
}
