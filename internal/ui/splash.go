package ui

import (
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fivver/internal/action"
	"fivver/internal/config"
	"fivver/internal/driver"
	"fivver/internal/theme"
)

// logoFrames animates the logo one letter at a time. The final frame is
// the full logo.
var logoFrames = []string{
	"     __\n    / /\n   / / \n  / /  \n / /   \n/_/    ",
	"     __ __\n   _/ // /\n  / __/ / \n (_  ) /  \n/  _/ /   \n/_//_/    ",
	"     __ __  __\n   _/ // /_/ /\n  / __/ __/ / \n (_  ) /_/ /  \n/  _/\\__/ /   \n/_/    /_/    ",
	"     __ __        __\n   _/ // /_____ _/ /\n  / __/ __/ __ `/ / \n (_  ) /_/ /_/ / /  \n/  _/\\__/\\__,_/ /   \n/_/          /_/    ",
	"     __ __             __\n   _/ // /_____ ______/ /\n  / __/ __/ __ `/ ___/ / \n (_  ) /_/ /_/ (__  ) /  \n/  _/\\__/\\__,_/____/ /   \n/_/               /_/    ",
	"     __ __             __    __\n   _/ // /_____ ______/ /_  / /\n  / __/ __/ __ `/ ___/ __ \\/ / \n (_  ) /_/ /_/ (__  ) / / / /  \n/  _/\\__/\\__,_/____/_/ /_/ /   \n/_/                     /_/    ",
	"     __ __             __      \n   _/ // /_____ ______/ /_     \n  / __/ __/ __ `/ ___/ __ \\    \n (_  ) /_/ /_/ (__  ) / / /    \n/  _/\\__/\\__,_/____/_/ /_/     \n/_/                            ",
}

// SplashConfig parameterizes a Splash instance.
type SplashConfig struct {
	// ExpectedMessages is the startup message count that maps to a full
	// gauge.
	ExpectedMessages int
	// Frames is the logo animation; empty disables the logo block.
	Frames []string
	// ShowGauge reserves the bottom row for a progress line gauge.
	ShowGauge bool
}

// Splash renders the animated startup logo and/or a progress gauge fed
// by startup messages.
type Splash struct {
	actions  chan<- action.Action
	animated bool
	cfg      SplashConfig
	counter  int
	gauge    progress.Model
	height   int
	messages []string
	settings *config.Settings
	width    int
}

var _ Component = (*Splash)(nil)

// NewSplash creates a splash component with the given configuration.
func NewSplash(cfg SplashConfig) *Splash {
	return &Splash{
		animated: len(cfg.Frames) > 1,
		cfg:      cfg,
		gauge:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// NewLoginView creates the main login splash: animated logo, loading
// line and bottom gauge.
func NewLoginView() *Splash {
	return NewSplash(SplashConfig{
		ExpectedMessages: driver.ExpectedStartupMessages,
		Frames:           logoFrames,
		ShowGauge:        true,
	})
}

func (s *Splash) RegisterActionHandler(actions chan<- action.Action) {
	s.actions = actions
}

func (s *Splash) RegisterSettings(settings *config.Settings) {
	s.settings = settings
}

func (s *Splash) Init(width, height int) error {
	s.height = height
	s.width = width
	return nil
}

func (s *Splash) HandleEvent(event tea.Msg) action.Action {
	return nil
}

// Update advances the logo animation on Tick and collects startup
// messages. The animation stops on the last frame.
func (s *Splash) Update(act action.Action) action.Action {
	switch act := act.(type) {
	case action.Tick:
		if s.animated {
			s.counter++
			if s.counter >= len(s.cfg.Frames) {
				s.counter = len(s.cfg.Frames) - 1
				s.animated = false
			}
		}
	case action.Resize:
		s.height = act.Height
		s.width = act.Width
	case action.Message:
		if text, ok := act.Fields["startup"]; ok {
			s.messages = append(s.messages, text)
		}
	}
	return nil
}

// Progress returns the gauge ratio: received startup messages over the
// expected total, capped at 1.0.
func (s *Splash) Progress() float64 {
	if s.cfg.ExpectedMessages <= 0 {
		return 0
	}
	ratio := float64(len(s.messages)) / float64(s.cfg.ExpectedMessages)
	if ratio > 1.0 {
		return 1.0
	}
	return ratio
}

func (s *Splash) loadingLine() string {
	if len(s.messages) == 0 {
		return "Loading..."
	}
	return s.messages[len(s.messages)-1]
}

// Draw centers the logo and loading line in the area, with the gauge on
// the bottom row when enabled.
func (s *Splash) Draw(frame *Frame, area Rect) error {
	gaugeRows := 0
	if s.cfg.ShowGauge {
		gaugeRows = 1
	}
	bodyHeight := area.Height - gaugeRows

	if len(s.cfg.Frames) > 0 && bodyHeight > 0 {
		block := lipgloss.JoinVertical(lipgloss.Center,
			theme.LogoStyle.Render(s.cfg.Frames[s.counter]),
			"",
			theme.LoadingStyle.Render(s.loadingLine()),
		)
		body := lipgloss.Place(area.Width, bodyHeight, lipgloss.Center, lipgloss.Center, block)
		frame.SetContent(Rect{Height: bodyHeight, Width: area.Width, X: area.X, Y: area.Y}, body)
	}

	if gaugeRows > 0 {
		s.gauge.Width = area.Width
		frame.SetContent(
			Rect{Height: 1, Width: area.Width, X: area.X, Y: area.Y + bodyHeight},
			s.gauge.ViewAs(s.Progress()),
		)
	}

	return nil
}
