package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tradetips/internal/snapshot"
	"github.com/wonny/tradetips/pkg/logger"
)

// PruneJob removes score snapshots older than the retention window.
type PruneJob struct {
	snapshots *snapshot.Repository
	retention time.Duration
	logger    *logger.Logger
}

// NewPruneJob creates a new snapshot prune job
func NewPruneJob(repo *snapshot.Repository, retention time.Duration, log *logger.Logger) *PruneJob {
	return &PruneJob{
		snapshots: repo,
		retention: retention,
		logger:    log,
	}
}

// Name returns the job name
func (j *PruneJob) Name() string {
	return "snapshot_prune"
}

// Schedule returns the cron schedule
func (j *PruneJob) Schedule() string {
	return "@daily"
}

// Run prunes old snapshots
func (j *PruneJob) Run(ctx context.Context) error {
	removed, err := j.snapshots.Prune(ctx, j.retention)
	if err != nil {
		return fmt.Errorf("snapshot prune failed: %w", err)
	}

	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Pruned old score snapshots")
	}
	return nil
}
