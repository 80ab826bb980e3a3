package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"

	"fivver/internal/config"
	"fivver/internal/logging"
)

// SetupCmd configures fivver interactively
type SetupCmd struct{}

// Run walks through the settings and writes ~/.fivver/settings.json
func (s *SetupCmd) Run(cli *CLI) error {
	settings := cli.settings
	if settings == nil {
		settings = &config.Settings{}
	}

	driverName := settings.Driver()
	driverPort := strconv.Itoa(settings.DriverPort)
	if settings.DriverPort == 0 {
		driverPort = strconv.Itoa(config.DefaultDriverPort)
	}
	loginURL := settings.Login()
	dbPath := settings.DBPath
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	debug := settings.Debug != nil && *settings.Debug

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("WebDriver executable").
				Description("Process name used to launch and detect the driver").
				Value(&driverName),
			huh.NewInput().
				Title("WebDriver port").
				Value(&driverPort).
				Validate(func(v string) error {
					port, err := strconv.Atoi(v)
					if err != nil || port <= 0 || port > 65535 {
						return fmt.Errorf("port must be a number between 1 and 65535")
					}
					return nil
				}),
			huh.NewInput().
				Title("Login page URL").
				Value(&loginURL),
			huh.NewInput().
				Title("Attempt history database").
				Value(&dbPath),
			huh.NewConfirm().
				Title("Enable debug logging?").
				Value(&debug),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup cancelled: %w", err)
	}

	port, err := strconv.Atoi(driverPort)
	if err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}

	settings.DBPath = dbPath
	settings.Debug = &debug
	settings.DriverName = driverName
	settings.DriverPort = port
	settings.LoginURL = loginURL

	if err := settings.Save(); err != nil {
		return err
	}

	logging.Logger.Info("Settings saved", "path", config.GetSettingsFilePath())
	fmt.Printf("Settings written to %s\n", config.GetSettingsFilePath())
	return nil
}
