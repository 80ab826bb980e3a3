// Package process manages the external WebDriver executable through OS
// commands (pgrep, pkill).
package process

import (
	"fmt"
	"os/exec"
	"strings"

	"fivver/internal/logging"
	"fivver/internal/ports"
)

// commandRunner abstracts exec so tests can stub out the process table.
type commandRunner interface {
	Output(name string, args ...string) ([]byte, error)
	Run(name string, args ...string) error
	Start(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Output(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (execRunner) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it never turns into a zombie.
	// The process itself keeps running after we exit.
	go func() { _ = cmd.Wait() }()
	return nil
}

// OSProcessController implements ProcessController using OS commands
// (pgrep, pkill).
type OSProcessController struct {
	runner commandRunner
}

// Compile-time interface verification
var _ ports.ProcessController = (*OSProcessController)(nil)

// NewOSProcessController creates a new OS process controller.
func NewOSProcessController() *OSProcessController {
	return &OSProcessController{runner: execRunner{}}
}

// FindRunning reports whether a process with the given name exists,
// regardless of who started it.
func (c *OSProcessController) FindRunning(name string) (bool, error) {
	output, err := c.runner.Output("pgrep", "-x", name)
	if err != nil {
		// pgrep exits 1 when nothing matched.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return false, nil
		}
		return false, fmt.Errorf("failed to scan process table: %w", err)
	}

	return strings.TrimSpace(string(output)) != "", nil
}

// Launch starts the named executable as a detached child. The child is
// expected to outlive the caller.
func (c *OSProcessController) Launch(name string, args ...string) error {
	logging.Logger.Debug("Launching process", "name", name, "args", args)

	if err := c.runner.Start(name, args...); err != nil {
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}

	return nil
}

// TerminateAll kills every process matching name, not just children of
// this application.
func (c *OSProcessController) TerminateAll(name string) error {
	logging.Logger.Debug("Terminating processes", "name", name)

	if err := c.runner.Run("pkill", "-x", name); err != nil {
		// pkill exits 1 when there was nothing to kill; that is success
		// for an idempotent terminate.
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return nil
		}
		return fmt.Errorf("failed to terminate %s: %w", name, err)
	}

	return nil
}
