package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DueRunner fires the scheduled steps that are due.
type DueRunner interface {
	RunDue(ctx context.Context) int
}

// LifecycleJob drives the lifecycle scheduler. Runs every second; a tick that is
// still running when the next one starts makes the next one skip.
type LifecycleJob struct {
	runner DueRunner
	cron   *cron.Cron
	logger *slog.Logger
}

// NewLifecycleJob creates a new job that drains runner every second.
func NewLifecycleJob(runner DueRunner, logger *slog.Logger) *LifecycleJob {
	return &LifecycleJob{
		runner: runner,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		logger: logger.With("component", "lifecycle_job"),
	}
}

// Start begins the lifecycle job to run every second.
func (j *LifecycleJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if advanced := j.runner.RunDue(ctx); advanced > 0 {
			j.logger.DebugContext(ctx, "Lifecycle tick", "advanced", advanced)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lifecycle job started (running every second)")
	return nil
}

// Stop stops the lifecycle job and waits for a running tick to finish.
func (j *LifecycleJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Lifecycle job stopped")
}
