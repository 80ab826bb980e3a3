package cmd

import (
	tea "github.com/charmbracelet/bubbletea"

	"fivver/internal/logging"
	"fivver/internal/server"
)

// ServerCmd serves the TUI over SSH
type ServerCmd struct {
	Host string `help:"Host to bind the SSH server to" default:"localhost"`
	Port string `help:"Port to bind the SSH server to" default:"23234"`
}

// Run starts the SSH server
func (s *ServerCmd) Run(cli *CLI) error {
	factory := func() (tea.Model, func() error, error) {
		a, closer, err := buildApp(cli.settings)
		if err != nil {
			return nil, nil, err
		}
		return a, closer, nil
	}

	srv, err := server.NewServer(s.Host, s.Port, cli.settings, factory)
	if err != nil {
		return err
	}

	logging.Logger.Info("SSH server configured", "host", s.Host, "port", s.Port)
	return srv.Start()
}
