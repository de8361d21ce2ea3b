package snapshot

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepo connects to the database named by DATABASE_URL. Skipped in
// short mode or when no database is configured.
func testRepo(t *testing.T) (*Repository, *pgxpool.Pool) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), connString)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(pool.Close)

	repo := NewRepository(pool)
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo, pool
}

func cleanupTicker(t *testing.T, pool *pgxpool.Pool, ticker string) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(),
			`DELETE FROM score_snapshots WHERE ticker = $1`, ticker)
	})
}

func TestSaveAndHistory(t *testing.T) {
	repo, pool := testRepo(t)
	ctx := context.Background()

	const ticker = "ZZTESTA"
	cleanupTicker(t, pool, ticker)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			Ticker:    ticker,
			Score:     float64(i),
			Grade:     "C (Hold)",
			Passed:    i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	// Newest first, limit respected.
	history, err := repo.History(ctx, ticker, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2.0, history[0].Score)
	assert.Equal(t, 1.0, history[1].Score)
	assert.True(t, history[0].CreatedAt.After(history[1].CreatedAt))
}

func TestLatestCollapsesPerTicker(t *testing.T) {
	repo, pool := testRepo(t)
	ctx := context.Background()

	const ticker = "ZZTESTB"
	cleanupTicker(t, pool, ticker)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Save(ctx, &Snapshot{
		Ticker: ticker, Score: 1, Grade: "C (Hold)", Passed: 1, CreatedAt: base,
	}))
	require.NoError(t, repo.Save(ctx, &Snapshot{
		Ticker: ticker, Score: 5, Grade: "B (Consider Buy)", Passed: 4, CreatedAt: base.Add(time.Minute),
	}))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)

	var found *Snapshot
	for i := range latest {
		if latest[i].Ticker == ticker {
			require.Nil(t, found, "Latest returned more than one row for %s", ticker)
			found = &latest[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, 5.0, found.Score)
	assert.Equal(t, 4, found.Passed)
}

func TestPruneRemovesOnlyOldRows(t *testing.T) {
	repo, pool := testRepo(t)
	ctx := context.Background()

	const ticker = "ZZTESTC"
	cleanupTicker(t, pool, ticker)

	require.NoError(t, repo.Save(ctx, &Snapshot{
		Ticker: ticker, Score: 1, Grade: "C (Hold)", Passed: 1,
		CreatedAt: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.Save(ctx, &Snapshot{
		Ticker: ticker, Score: 2, Grade: "C (Hold)", Passed: 2,
		CreatedAt: time.Now(),
	}))

	removed, err := repo.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	history, err := repo.History(ctx, ticker, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 2.0, history[0].Score)
}
