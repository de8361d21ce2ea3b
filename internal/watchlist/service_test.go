package watchlist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradetips/internal/quotes"
	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/logger"
)

// fakeStore keeps entries in memory for service tests.
type fakeStore struct {
	entries []Entry
}

func (f *fakeStore) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeStore) Add(ctx context.Context, ticker string) error {
	for _, e := range f.entries {
		if e.Ticker == ticker {
			return nil
		}
	}
	f.entries = append(f.entries, Entry{Ticker: ticker, AddedAt: time.Now()})
	return nil
}

func (f *fakeStore) Remove(ctx context.Context, ticker string) (bool, error) {
	for i, e := range f.entries {
		if e.Ticker == ticker {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) Clear(ctx context.Context) error {
	f.entries = nil
	return nil
}

func (f *fakeStore) List(ctx context.Context) ([]Entry, error) {
	return append([]Entry(nil), f.entries...), nil
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})
}

func TestInitSeedsEmptyWatchlist(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, testLogger())

	require.NoError(t, svc.Init(context.Background()))

	tickers, err := svc.Tickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, quotes.DefaultWatchlist, tickers)
}

func TestInitLeavesPopulatedWatchlistAlone(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, testLogger())

	_, err := svc.Add(context.Background(), "TSLA")
	require.NoError(t, err)
	require.NoError(t, svc.Init(context.Background()))

	tickers, err := svc.Tickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"TSLA"}, tickers)
}

func TestAddNormalizesAndDeduplicates(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, testLogger())

	added, err := svc.Add(context.Background(), "  msft ")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", added)

	_, err = svc.Add(context.Background(), "MSFT")
	require.NoError(t, err)

	tickers, err := svc.Tickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"MSFT"}, tickers)
}

func TestAddRejectsEmptyTicker(t *testing.T) {
	svc := NewService(&fakeStore{}, testLogger())

	_, err := svc.Add(context.Background(), "   ")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, testLogger())

	_, err := svc.Add(context.Background(), "AAPL")
	require.NoError(t, err)

	removed, err := svc.Remove(context.Background(), "aapl")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.Remove(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestClear(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, testLogger())

	require.NoError(t, svc.Init(context.Background()))
	require.NoError(t, svc.Clear(context.Background()))

	tickers, err := svc.Tickers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tickers)
}
