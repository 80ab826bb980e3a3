package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fivver/internal/domain"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "fivver.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	return repo
}

func newAttempt(startedAt time.Time) domain.LoginAttempt {
	return domain.LoginAttempt{
		ID:        uuid.New().String(),
		Outcome:   domain.OutcomePending,
		StartedAt: startedAt,
	}
}

func TestAddAndList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	attempt := newAttempt(time.Now().UTC())
	require.NoError(t, repo.Add(ctx, attempt))

	attempts, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, attempt.ID, attempts[0].ID)
	assert.Equal(t, domain.OutcomePending, attempts[0].Outcome)
	assert.Nil(t, attempts[0].ConnectedAt)
}

func TestAddDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	attempt := newAttempt(time.Now().UTC())
	require.NoError(t, repo.Add(ctx, attempt))

	err := repo.Add(ctx, attempt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestUpdateLifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	attempt := newAttempt(time.Now().UTC())
	require.NoError(t, repo.Add(ctx, attempt))

	connectedAt := time.Now().UTC()
	attempt.ConnectedAt = &connectedAt
	attempt.Outcome = domain.OutcomeConnected
	require.NoError(t, repo.Update(ctx, attempt))

	closedAt := connectedAt.Add(time.Minute)
	attempt.ClosedAt = &closedAt
	attempt.Outcome = domain.OutcomeClosed
	require.NoError(t, repo.Update(ctx, attempt))

	attempts, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, domain.OutcomeClosed, attempts[0].Outcome)
	require.NotNil(t, attempts[0].ConnectedAt)
	require.NotNil(t, attempts[0].ClosedAt)
}

func TestUpdateUnknownAttempt(t *testing.T) {
	repo := newTestRepository(t)

	err := repo.Update(context.Background(), newAttempt(time.Now().UTC()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListOrderAndLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	oldest := newAttempt(base.Add(-2 * time.Hour))
	middle := newAttempt(base.Add(-1 * time.Hour))
	newest := newAttempt(base)

	for _, attempt := range []domain.LoginAttempt{oldest, middle, newest} {
		require.NoError(t, repo.Add(ctx, attempt))
	}

	attempts, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, newest.ID, attempts[0].ID)
	assert.Equal(t, middle.ID, attempts[1].ID)
}
