package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"fivver/internal/config"
)

// SettingsCmd manages the settings file
type SettingsCmd struct {
	Path SettingsPathCmd `cmd:"path" help:"Print the settings file path"`
	View SettingsViewCmd `cmd:"view" help:"Print the current settings"`
}

// SettingsPathCmd prints the settings file path
type SettingsPathCmd struct{}

func (s *SettingsPathCmd) Run(cli *CLI) error {
	fmt.Println(config.GetSettingsFilePath())
	return nil
}

// SettingsViewCmd prints the effective settings as JSON
type SettingsViewCmd struct{}

func (s *SettingsViewCmd) Run(cli *CLI) error {
	settings := cli.settings
	if settings == nil {
		settings = &config.Settings{}
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
