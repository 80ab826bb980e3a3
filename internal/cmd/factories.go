package cmd

import (
	"fmt"

	"fivver/internal/action"
	"fivver/internal/adapters/process"
	"fivver/internal/adapters/storage"
	"fivver/internal/adapters/webdriver"
	"fivver/internal/app"
	"fivver/internal/config"
	"fivver/internal/driver"
	"fivver/internal/logging"
	"fivver/internal/ui"
)

// buildApp wires the session manager, the components and the event loop
// together. The returned closer releases the attempt store.
func buildApp(settings *config.Settings) (*app.App, func() error, error) {
	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, nil, err
	}

	table, err := settings.BuildKeymap()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid key bindings in settings.json: %w", err)
	}

	managerOpts := []driver.Option{}

	repo, err := storage.NewSQLiteRepository(settings.DatabasePath())
	if err != nil {
		// History is best effort; the session still works without it.
		logging.Logger.Warn("Attempt history disabled", "error", err)
	} else {
		managerOpts = append(managerOpts, driver.WithAttemptWriter(repo))
	}

	var a *app.App
	managerOpts = append(managerOpts, driver.WithProgress(func(text string) {
		if a != nil {
			a.ActionChannel() <- action.NewStartupMessage(text)
		}
	}))

	cfg := driver.Config{
		ConnectBackoff: driver.DefaultConfig().ConnectBackoff,
		ConnectRetries: driver.DefaultConfig().ConnectRetries,
		DriverName:     settings.Driver(),
		Endpoint:       settings.EndpointURL(),
		LaunchRetries:  driver.DefaultConfig().LaunchRetries,
		SettleDelay:    settings.SettleDelay(),
	}

	manager := driver.NewManager(
		cfg,
		process.NewOSProcessController(),
		webdriver.NewSeleniumConnector(settings.Login()),
		managerOpts...,
	)

	a = app.New(settings, table, manager,
		ui.NewLogin(manager, creds),
		ui.NewLoginView(),
	)

	closer := func() error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	}

	return a, closer, nil
}
