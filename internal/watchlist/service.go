package watchlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/wonny/tradetips/internal/quotes"
	"github.com/wonny/tradetips/pkg/logger"
)

// Store is the persistence the service needs. *Repository satisfies it.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Add(ctx context.Context, ticker string) error
	Remove(ctx context.Context, ticker string) (bool, error)
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]Entry, error)
}

// Service wraps the store with validation and default seeding.
type Service struct {
	store  Store
	logger *logger.Logger
}

// NewService creates a new watchlist service
func NewService(store Store, log *logger.Logger) *Service {
	return &Service{store: store, logger: log}
}

// Init creates the schema and seeds the default tickers when the
// watchlist is empty, so a fresh install has something to show.
func (s *Service) Init(ctx context.Context) error {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure watchlist schema: %w", err)
	}

	entries, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list watchlist: %w", err)
	}
	if len(entries) > 0 {
		return nil
	}

	s.logger.WithField("tickers", quotes.DefaultWatchlist).Info("Seeding empty watchlist with defaults")
	for _, t := range quotes.DefaultWatchlist {
		if err := s.store.Add(ctx, t); err != nil {
			return fmt.Errorf("failed to seed watchlist with %s: %w", t, err)
		}
	}
	return nil
}

// Add validates and adds a ticker.
func (s *Service) Add(ctx context.Context, ticker string) (string, error) {
	ticker = normalize(ticker)
	if ticker == "" {
		return "", fmt.Errorf("ticker must not be empty")
	}

	if err := s.store.Add(ctx, ticker); err != nil {
		return "", fmt.Errorf("failed to add %s to watchlist: %w", ticker, err)
	}

	s.logger.WithField("ticker", ticker).Info("Added ticker to watchlist")
	return ticker, nil
}

// Remove deletes a ticker from the watchlist.
func (s *Service) Remove(ctx context.Context, ticker string) (bool, error) {
	ticker = normalize(ticker)
	if ticker == "" {
		return false, fmt.Errorf("ticker must not be empty")
	}

	removed, err := s.store.Remove(ctx, ticker)
	if err != nil {
		return false, fmt.Errorf("failed to remove %s from watchlist: %w", ticker, err)
	}
	if removed {
		s.logger.WithField("ticker", ticker).Info("Removed ticker from watchlist")
	}
	return removed, nil
}

// Clear empties the watchlist.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear watchlist: %w", err)
	}
	s.logger.Info("Cleared watchlist")
	return nil
}

// List returns the current entries.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return entries, nil
}

// Tickers returns just the ticker symbols, in list order.
func (s *Service) Tickers(ctx context.Context) ([]string, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	tickers := make([]string, 0, len(entries))
	for _, e := range entries {
		tickers = append(tickers, e.Ticker)
	}
	return tickers, nil
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
