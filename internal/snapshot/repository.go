package snapshot

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Snapshot is one persisted scoring run for a ticker.
type Snapshot struct {
	ID        int64     `json:"id"`
	Ticker    string    `json:"ticker"`
	Score     float64   `json:"score"`
	Grade     string    `json:"grade"`
	Passed    int       `json:"passed"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository stores score snapshots in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new snapshot repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the snapshots table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS score_snapshots (
			id BIGSERIAL PRIMARY KEY,
			ticker TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			grade TEXT NOT NULL,
			passed INT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_score_snapshots_ticker_created
			ON score_snapshots (ticker, created_at DESC)
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

// Save inserts a snapshot.
func (r *Repository) Save(ctx context.Context, s *Snapshot) error {
	query := `
		INSERT INTO score_snapshots (ticker, score, grade, passed, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.pool.Exec(ctx, query, s.Ticker, s.Score, s.Grade, s.Passed, created)
	return err
}

// Latest returns the most recent snapshot per ticker.
func (r *Repository) Latest(ctx context.Context) ([]Snapshot, error) {
	query := `
		SELECT DISTINCT ON (ticker) id, ticker, score, grade, passed, created_at
		FROM score_snapshots
		ORDER BY ticker, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Ticker, &s.Score, &s.Grade, &s.Passed, &s.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// History returns snapshots for one ticker, newest first.
func (r *Repository) History(ctx context.Context, ticker string, limit int) ([]Snapshot, error) {
	query := `
		SELECT id, ticker, score, grade, passed, created_at
		FROM score_snapshots
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, ticker, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.ID, &s.Ticker, &s.Score, &s.Grade, &s.Passed, &s.CreatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// Prune deletes snapshots older than the retention window. Returns the
// number of rows removed.
func (r *Repository) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	query := `DELETE FROM score_snapshots WHERE created_at < $1`

	tag, err := r.pool.Exec(ctx, query, time.Now().Add(-retention))
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
