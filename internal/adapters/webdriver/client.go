// Package webdriver implements the browser session port on top of the
// Selenium WebDriver wire protocol.
package webdriver

import (
	"context"
	"fmt"

	"github.com/tebeka/selenium"

	"fivver/internal/logging"
	"fivver/internal/ports"
)

// Field selectors on the marketplace login page.
const (
	usernameSelector = "input[name=\"username\"]"
	passwordSelector = "input[name=\"password\"]"
	submitSelector   = "button[type=\"submit\"]"
)

// SeleniumConnector dials a locally running WebDriver endpoint and
// produces Firefox-backed sessions.
type SeleniumConnector struct {
	loginURL string
}

// Compile-time interface verification
var _ ports.WebConnector = (*SeleniumConnector)(nil)

// NewSeleniumConnector creates a connector whose sessions drive the
// given login page.
func NewSeleniumConnector(loginURL string) *SeleniumConnector {
	return &SeleniumConnector{loginURL: loginURL}
}

// Connect opens a new remote session against endpoint. The caller owns
// the returned session and must Close it.
func (c *SeleniumConnector) Connect(ctx context.Context, endpoint string) (ports.WebSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	caps := selenium.Capabilities{"browserName": "firefox"}
	wd, err := selenium.NewRemote(caps, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to open WebDriver session at %s: %w", endpoint, err)
	}

	logging.Logger.Debug("WebDriver session opened", "endpoint", endpoint)

	return &seleniumSession{loginURL: c.loginURL, wd: wd}, nil
}

type seleniumSession struct {
	loginURL string
	wd       selenium.WebDriver
}

var _ ports.WebSession = (*seleniumSession)(nil)

// Login navigates to the login page, fills in the credentials and
// submits the form.
func (s *seleniumSession) Login(ctx context.Context, creds ports.Credentials) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.wd.Get(s.loginURL); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	if err := s.fill(usernameSelector, creds.Username); err != nil {
		return err
	}
	if err := s.fill(passwordSelector, creds.Password); err != nil {
		return err
	}

	submit, err := s.wd.FindElement(selenium.ByCSSSelector, submitSelector)
	if err != nil {
		return fmt.Errorf("failed to find submit button: %w", err)
	}
	if err := submit.Click(); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	logging.Logger.Info("Login form submitted", "url", s.loginURL)

	return nil
}

func (s *seleniumSession) fill(selector, value string) error {
	elem, err := s.wd.FindElement(selenium.ByCSSSelector, selector)
	if err != nil {
		return fmt.Errorf("failed to find element %s: %w", selector, err)
	}
	if err := elem.Clear(); err != nil {
		return fmt.Errorf("failed to clear element %s: %w", selector, err)
	}
	if err := elem.SendKeys(value); err != nil {
		return fmt.Errorf("failed to type into element %s: %w", selector, err)
	}
	return nil
}

// Close ends the remote session. The browser window goes away; the
// driver process itself stays up.
func (s *seleniumSession) Close(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.wd.Quit(); err != nil {
		return fmt.Errorf("failed to quit WebDriver session: %w", err)
	}

	logging.Logger.Debug("WebDriver session closed")

	return nil
}
