package watchlist

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one watched ticker.
type Entry struct {
	Ticker  string    `json:"ticker"`
	AddedAt time.Time `json:"added_at"`
}

// Repository stores the watchlist in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new watchlist repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EnsureSchema creates the watchlist table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS watchlist (
			ticker TEXT PRIMARY KEY,
			added_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

// Add inserts a ticker. Adding a ticker that is already present is a no-op.
func (r *Repository) Add(ctx context.Context, ticker string) error {
	query := `
		INSERT INTO watchlist (ticker)
		VALUES ($1)
		ON CONFLICT (ticker) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, strings.ToUpper(ticker))
	return err
}

// Remove deletes a ticker. Returns whether anything was removed.
func (r *Repository) Remove(ctx context.Context, ticker string) (bool, error) {
	query := `DELETE FROM watchlist WHERE ticker = $1`

	tag, err := r.pool.Exec(ctx, query, strings.ToUpper(ticker))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Clear empties the watchlist.
func (r *Repository) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM watchlist`)
	return err
}

// List returns all entries in insertion order.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	query := `
		SELECT ticker, added_at
		FROM watchlist
		ORDER BY added_at ASC, ticker ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Ticker, &e.AddedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
