package cmd

import (
	"context"
	"fmt"
	"time"

	"fivver/internal/adapters/storage"
	"fivver/internal/domain"
	"fivver/internal/theme"
)

// HistoryCmd lists recorded login attempts
type HistoryCmd struct {
	Limit int `help:"Maximum number of attempts to show (0 = all)" default:"20"`
}

// Run prints the attempt history, most recent first
func (h *HistoryCmd) Run(cli *CLI) error {
	repo, err := storage.NewSQLiteRepository(cli.settings.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open attempt history: %w", err)
	}
	defer repo.Close()

	attempts, err := repo.List(context.Background(), h.Limit)
	if err != nil {
		return err
	}

	if len(attempts) == 0 {
		fmt.Println("No login attempts recorded.")
		return nil
	}

	fmt.Printf("%-20s  %-10s  %-10s  %s\n", "STARTED", "OUTCOME", "DURATION", "ERROR")
	for _, attempt := range attempts {
		fmt.Printf("%-20s  %-10s  %-10s  %s\n",
			attempt.StartedAt.Local().Format("2006-01-02 15:04:05"),
			outcomeLabel(attempt.Outcome),
			attemptDuration(attempt),
			attempt.Error,
		)
	}

	return nil
}

func outcomeLabel(outcome domain.AttemptOutcome) string {
	switch outcome {
	case domain.OutcomeConnected:
		return theme.ConnectedStyle.Render(string(outcome))
	case domain.OutcomeFailed:
		return theme.FailedStyle.Render(string(outcome))
	case domain.OutcomeClosed:
		return theme.ClosedStyle.Render(string(outcome))
	default:
		return theme.PendingStyle.Render(string(outcome))
	}
}

func attemptDuration(attempt domain.LoginAttempt) string {
	end := attempt.ClosedAt
	if end == nil {
		end = attempt.ConnectedAt
	}
	if end == nil {
		return "-"
	}
	return end.Sub(attempt.StartedAt).Round(time.Millisecond).String()
}
