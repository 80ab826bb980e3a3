package cmd

import (
	"fivver/internal/logging"
)

// RunCmd starts the TUI application
type RunCmd struct{}

// Run executes the TUI
func (r *RunCmd) Run(cli *CLI) error {
	logging.Logger.Info("Starting fivver TUI")

	a, closer, err := buildApp(cli.settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer(); err != nil {
			logging.Logger.Warn("Failed to close attempt store", "error", err)
		}
	}()

	if err := a.Run(); err != nil {
		logging.Logger.Error("TUI program error", "error", err)
		return err
	}

	logging.Logger.Info("TUI program exited normally")
	return nil
}
