package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/tradetips/internal/scheduler"
	"github.com/wonny/tradetips/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the background job scheduler",
	Long: `Runs the scheduler daemon without the API server.

Registered jobs:
  scoreboard_refresh - rebuilds the scoreboard (REFRESH_INTERVAL, default 10m)
  snapshot_prune     - removes old score snapshots (daily)

Example:
  go run ./cmd/tradetips scheduler
  go run ./cmd/tradetips scheduler run snapshot_prune`,
	RunE: runSchedulerDaemon,
}

var schedulerRunCmd = &cobra.Command{
	Use:   "run [job_name]",
	Short: "Run a job once, immediately",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchedulerJob,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func initScheduler(a *app) (*scheduler.Scheduler, error) {
	sched := scheduler.New(a.log)

	// No websocket subscribers in daemon mode, refresh still warms the
	// cache and writes snapshots.
	if err := sched.AddJob(jobs.NewRefreshJob(a.board, nil, a.cfg.RefreshInterval, a.log)); err != nil {
		return nil, fmt.Errorf("schedule refresh job: %w", err)
	}
	if err := sched.AddJob(jobs.NewPruneJob(a.snapshots, a.cfg.SnapshotRetention, a.log)); err != nil {
		return nil, fmt.Errorf("schedule prune job: %w", err)
	}

	return sched, nil
}

func runSchedulerDaemon(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if err := a.watchlist.Init(ctx); err != nil {
		return err
	}
	if err := a.snapshots.EnsureSchema(ctx); err != nil {
		return err
	}

	sched, err := initScheduler(a)
	if err != nil {
		return err
	}

	sched.Start()
	fmt.Println("Scheduler running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if err := a.watchlist.Init(ctx); err != nil {
		return err
	}
	if err := a.snapshots.EnsureSchema(ctx); err != nil {
		return err
	}

	name := args[0]
	switch name {
	case "scoreboard_refresh":
		err = jobs.NewRefreshJob(a.board, nil, a.cfg.RefreshInterval, a.log).Run(ctx)
	case "snapshot_prune":
		err = jobs.NewPruneJob(a.snapshots, a.cfg.SnapshotRetention, a.log).Run(ctx)
	default:
		return fmt.Errorf("unknown job %q (known: scoreboard_refresh, snapshot_prune)", name)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Job %s completed\n", name)
	return nil
}
