package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/pizza-sales/internal/pkg/sqlitedb"
	"github.com/jcmexdev/pizza-sales/internal/runlog"
)

func newRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := sqlitedb.Open(sqlitedb.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := New(db)
	require.NoError(t, err)
	return repo
}

func TestRepository_SaveAndList(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []*runlog.Entry{
		{RunID: "r1", Status: runlog.StatusStarted, UpdatedAt: base},
		{RunID: "r1", Status: runlog.StatusReportDone, Report: "total_orders", Rows: 1,
			Elapsed: 3 * time.Millisecond, TraceID: "abc", SpanID: "def", UpdatedAt: base.Add(time.Millisecond)},
		{RunID: "other", Status: runlog.StatusStarted, UpdatedAt: base},
		{RunID: "r1", Status: runlog.StatusFailed, Report: "total_revenue", Error: "boom", UpdatedAt: base.Add(2 * time.Millisecond)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Save(ctx, e))
	}

	got, err := repo.List(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, runlog.StatusStarted, got[0].Status)
	assert.Equal(t, *entries[1], got[1])
	assert.Equal(t, "boom", got[2].Error)
	assert.Empty(t, got[0].Error)

	latest, err := repo.GetLatest(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, runlog.StatusFailed, latest.Status)
	assert.True(t, latest.UpdatedAt.Equal(base.Add(2*time.Millisecond)))
}

func TestRepository_GetLatestUnknownRun(t *testing.T) {
	_, err := newRepo(t).GetLatest(context.Background(), "missing")
	assert.ErrorContains(t, err, `run "missing" not found`)
}

func TestRepository_LatestRunID(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	_, err := repo.LatestRunID(ctx)
	require.ErrorIs(t, err, runlog.ErrNoRuns)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, e := range []*runlog.Entry{
		{RunID: "first", Status: runlog.StatusStarted, UpdatedAt: at},
		{RunID: "first", Status: runlog.StatusCompleted, UpdatedAt: at},
		{RunID: "second", Status: runlog.StatusStarted, UpdatedAt: at},
	} {
		require.NoError(t, repo.Save(ctx, e))
	}

	runID, err := repo.LatestRunID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", runID)

	entries, err := repo.List(ctx, runID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
