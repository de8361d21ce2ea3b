package scoreboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/internal/scoring"
	"github.com/wonny/tradetips/internal/snapshot"
	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/logger"
	"github.com/wonny/tradetips/pkg/redis"
)

type fakeProvider struct {
	records map[string]*contracts.MetricsRecord
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Fetch(ctx context.Context, ticker string) (*contracts.MetricsRecord, error) {
	rec, ok := f.records[ticker]
	if !ok {
		return nil, fmt.Errorf("no metrics for %s", ticker)
	}
	return rec, nil
}

type fakeTickers struct {
	tickers []string
}

func (f *fakeTickers) Tickers(ctx context.Context) ([]string, error) {
	return f.tickers, nil
}

type fakeSnapshots struct {
	saved []*snapshot.Snapshot
}

func (f *fakeSnapshots) Save(ctx context.Context, s *snapshot.Snapshot) error {
	f.saved = append(f.saved, s)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{LogLevel: "error", LogFormat: "json"})
}

func testCache(t *testing.T) *redis.Cache {
	t.Helper()
	client, err := redis.New(&config.Config{
		Redis: config.RedisConfig{Enabled: false},
	})
	require.NoError(t, err)
	return redis.NewCache(client, "tradetips")
}

func msftRecord() *contracts.MetricsRecord {
	return &contracts.MetricsRecord{
		Ticker:         "MSFT",
		R40:            contracts.F64(53.63),
		GrossMargin:    contracts.F64(68.82),
		ROIC:           contracts.F64(20.51),
		CCC:            contracts.F64(10),
		EPSConsistency: contracts.B(true),
		ForwardPE:      contracts.F64(30),
		RevenueGrowth:  contracts.F64(16.8),
		FetchedAt:      time.Now(),
	}
}

func newTestService(t *testing.T, provider contracts.MetricProvider, tickers []string, snaps *fakeSnapshots) *Service {
	t.Helper()
	log := testLogger()
	return NewService(
		provider,
		scoring.NewScorer(log),
		scoring.NewGrader(log),
		&fakeTickers{tickers: tickers},
		snaps,
		testCache(t),
		log,
	)
}

func TestScoreTicker(t *testing.T) {
	provider := &fakeProvider{records: map[string]*contracts.MetricsRecord{"MSFT": msftRecord()}}
	svc := newTestService(t, provider, nil, &fakeSnapshots{})

	result, err := svc.ScoreTicker(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "MSFT", result.Ticker)
	assert.InDelta(t, 21.5887, result.IPS, 1e-4)
}

func TestScoreTickerFetchError(t *testing.T) {
	svc := newTestService(t, &fakeProvider{}, nil, &fakeSnapshots{})

	_, err := svc.ScoreTicker(context.Background(), "MSFT")
	assert.Error(t, err)
}

func TestGradeTicker(t *testing.T) {
	provider := &fakeProvider{records: map[string]*contracts.MetricsRecord{"MSFT": msftRecord()}}
	svc := newTestService(t, provider, nil, &fakeSnapshots{})

	result, err := svc.GradeTicker(context.Background(), "MSFT")
	require.NoError(t, err)
	// MSFT passes margin, ROIC, growth, EPS and CCC but fails PE at 30.
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, "A (Strong Buy)", result.Grade)
}

func TestRefreshBuildsFullBoard(t *testing.T) {
	provider := &fakeProvider{records: map[string]*contracts.MetricsRecord{"MSFT": msftRecord()}}
	snaps := &fakeSnapshots{}
	svc := newTestService(t, provider, []string{"MSFT", "AAPL"}, snaps)

	board, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "fake", board.Provider)

	msft := board.Entries[0]
	assert.Equal(t, "MSFT", msft.Ticker)
	require.NotNil(t, msft.Score)
	require.NotNil(t, msft.Grade)
	assert.Empty(t, msft.Err)

	// AAPL has no metrics; its failure stays on the entry.
	aapl := board.Entries[1]
	assert.Equal(t, "AAPL", aapl.Ticker)
	assert.Nil(t, aapl.Score)
	assert.Nil(t, aapl.Grade)
	assert.NotEmpty(t, aapl.Err)

	// Only the successful ticker is snapshotted.
	require.Len(t, snaps.saved, 1)
	assert.Equal(t, "MSFT", snaps.saved[0].Ticker)
	assert.InDelta(t, 21.5887, snaps.saved[0].Score, 1e-4)
	assert.Equal(t, 5, snaps.saved[0].Passed)
}

func TestBoardFallsBackToRefreshWithoutCache(t *testing.T) {
	provider := &fakeProvider{records: map[string]*contracts.MetricsRecord{"MSFT": msftRecord()}}
	svc := newTestService(t, provider, []string{"MSFT"}, &fakeSnapshots{})

	board, err := svc.Board(context.Background())
	require.NoError(t, err)
	require.Len(t, board.Entries, 1)
}
