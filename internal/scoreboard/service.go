package scoreboard

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/internal/scoring"
	"github.com/wonny/tradetips/internal/snapshot"
	"github.com/wonny/tradetips/pkg/logger"
	"github.com/wonny/tradetips/pkg/redis"
)

const boardCacheKey = "scoreboard"

// TickerSource yields the tickers to score. The watchlist service
// satisfies it.
type TickerSource interface {
	Tickers(ctx context.Context) ([]string, error)
}

// SnapshotStore persists scoring runs. *snapshot.Repository satisfies it.
type SnapshotStore interface {
	Save(ctx context.Context, s *snapshot.Snapshot) error
}

// Service builds the scoreboard: every watchlist ticker fetched, scored,
// graded, snapshotted and cached.
type Service struct {
	provider  contracts.MetricProvider
	scorer    *scoring.Scorer
	grader    *scoring.Grader
	tickers   TickerSource
	snapshots SnapshotStore
	cache     *redis.Cache
	logger    *logger.Logger
}

// NewService creates a new scoreboard service
func NewService(
	provider contracts.MetricProvider,
	scorer *scoring.Scorer,
	grader *scoring.Grader,
	tickers TickerSource,
	snapshots SnapshotStore,
	cache *redis.Cache,
	log *logger.Logger,
) *Service {
	return &Service{
		provider:  provider,
		scorer:    scorer,
		grader:    grader,
		tickers:   tickers,
		snapshots: snapshots,
		cache:     cache,
		logger:    log,
	}
}

// ScoreTicker fetches metrics for one ticker and computes its IPS.
func (s *Service) ScoreTicker(ctx context.Context, ticker string) (*contracts.ScoreResult, error) {
	rec, err := s.provider.Fetch(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metrics for %s: %w", ticker, err)
	}
	result := s.scorer.Compute(rec)
	return &result, nil
}

// GradeTicker fetches metrics for one ticker and grades it.
func (s *Service) GradeTicker(ctx context.Context, ticker string) (*contracts.GradeResult, error) {
	rec, err := s.provider.Fetch(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metrics for %s: %w", ticker, err)
	}
	result := s.grader.Grade(rec)
	return &result, nil
}

// Board returns the cached scoreboard when fresh, otherwise rebuilds it.
func (s *Service) Board(ctx context.Context) (*contracts.Board, error) {
	var cached contracts.Board
	found, err := s.cache.Get(ctx, boardCacheKey, &cached)
	if err != nil {
		s.logger.WithError(err).Warn("Scoreboard cache read failed, rebuilding")
	} else if found {
		return &cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh rebuilds the scoreboard from live data. A fetch failure for one
// ticker is recorded on its entry; the rest of the board still builds.
func (s *Service) Refresh(ctx context.Context) (*contracts.Board, error) {
	tickers, err := s.tickers.Tickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist tickers: %w", err)
	}

	start := time.Now()
	board := &contracts.Board{
		Entries:     make([]contracts.BoardEntry, 0, len(tickers)),
		GeneratedAt: start,
		Provider:    s.provider.Name(),
	}

	for _, ticker := range tickers {
		board.Entries = append(board.Entries, s.buildEntry(ctx, ticker))
	}

	if err := s.cache.Set(ctx, boardCacheKey, board, redis.TTLShort); err != nil {
		s.logger.WithError(err).Warn("Scoreboard cache write failed")
	}

	s.logger.WithFields(map[string]interface{}{
		"tickers":  len(tickers),
		"duration": time.Since(start).String(),
	}).Info("Scoreboard refreshed")

	return board, nil
}

func (s *Service) buildEntry(ctx context.Context, ticker string) contracts.BoardEntry {
	entry := contracts.BoardEntry{Ticker: ticker}

	rec, err := s.provider.Fetch(ctx, ticker)
	if err != nil {
		s.logger.WithError(err).WithField("ticker", ticker).Warn("Metrics fetch failed, recording error on entry")
		entry.Err = err.Error()
		return entry
	}

	score := s.scorer.Compute(rec)
	grade := s.grader.Grade(rec)
	entry.Score = &score
	entry.Grade = &grade

	snap := &snapshot.Snapshot{
		Ticker:    ticker,
		Score:     score.IPS,
		Grade:     grade.Grade,
		Passed:    grade.Passed(),
		CreatedAt: score.ComputedAt,
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.logger.WithError(err).WithField("ticker", ticker).Warn("Snapshot save failed")
	}

	return entry
}
