package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradetips/pkg/config"
	"github.com/wonny/tradetips/pkg/logger"
)

type countingJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *countingJob) Name() string     { return j.name }
func (j *countingJob) Schedule() string { return j.schedule }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return j.err
}

func testScheduler() *Scheduler {
	s := New(logger.New(&config.Config{LogLevel: "error", LogFormat: "json"}))
	s.retryDelay = time.Millisecond
	return s
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := testScheduler()

	require.NoError(t, s.AddJob(&countingJob{name: "a", schedule: "@daily"}))
	assert.Error(t, s.AddJob(&countingJob{name: "a", schedule: "@daily"}))
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := testScheduler()

	err := s.AddJob(&countingJob{name: "bad", schedule: "not a schedule"})
	assert.Error(t, err)
}

func TestRunJob(t *testing.T) {
	s := testScheduler()
	job := &countingJob{name: "once", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("once"))

	waitFor(t, func() bool { return job.runs.Load() == 1 })

	stats := s.Stats()["once"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1.0, stats.SuccessRate)
	assert.Empty(t, stats.LastError)
}

func TestRunJobUnknown(t *testing.T) {
	s := testScheduler()
	assert.Error(t, s.RunJob("missing"))
}

func TestFailingJobRetriesAndRecordsError(t *testing.T) {
	s := testScheduler()
	job := &countingJob{name: "flaky", schedule: "@daily", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("flaky"))

	// Initial attempt plus maxRetries.
	waitFor(t, func() bool { return job.runs.Load() == int32(s.maxRetries+1) })
	waitFor(t, func() bool { return len(s.Stats()["flaky"].LastError) > 0 })

	stats := s.Stats()["flaky"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.Equal(t, "boom", stats.LastError)
}

func TestJobHistoryCapped(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "x", Success: i%2 == 0})
	}
	assert.Len(t, h.Results, 100)
	assert.NotNil(t, h.Last())
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
