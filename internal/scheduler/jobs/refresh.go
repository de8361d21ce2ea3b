package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tradetips/internal/contracts"
	"github.com/wonny/tradetips/internal/scoreboard"
	"github.com/wonny/tradetips/pkg/logger"
)

// Broadcaster pushes a refreshed board to realtime subscribers. The
// scoreboard websocket handler satisfies it.
type Broadcaster interface {
	Broadcast(board *contracts.Board)
}

// RefreshJob rebuilds the scoreboard on an interval and pushes the
// result to websocket subscribers.
type RefreshJob struct {
	board       *scoreboard.Service
	broadcaster Broadcaster
	interval    time.Duration
	logger      *logger.Logger
}

// NewRefreshJob creates a new scoreboard refresh job. broadcaster may
// be nil when no realtime push is wanted.
func NewRefreshJob(board *scoreboard.Service, broadcaster Broadcaster, interval time.Duration, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		board:       board,
		broadcaster: broadcaster,
		interval:    interval,
		logger:      log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "scoreboard_refresh"
}

// Schedule returns the cron schedule
func (j *RefreshJob) Schedule() string {
	return fmt.Sprintf("@every %s", j.interval)
}

// Run rebuilds the scoreboard
func (j *RefreshJob) Run(ctx context.Context) error {
	board, err := j.board.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("scoreboard refresh failed: %w", err)
	}

	if j.broadcaster != nil {
		j.broadcaster.Broadcast(board)
	}

	j.logger.WithField("entries", len(board.Entries)).Debug("Scheduled scoreboard refresh done")
	return nil
}
