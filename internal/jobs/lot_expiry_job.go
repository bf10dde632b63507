package jobs

import (
	"context"
	"log/slog"
	"sync"

	"wms/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultLotExpirySchedule runs the sweep five minutes past every hour.
const DefaultLotExpirySchedule = "0 5 * * * *"

// LotExpirer moves available lots past their expiry date to expired.
type LotExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireLotsCommand) (int, error)
}

// ExpiredLotsRecorder receives the number of lots each sweep expired.
type ExpiredLotsRecorder interface {
	RecordExpiredLots(count int)
}

// LotExpiryJob periodically expires lots so that they drop out of
// allocation even when nobody touches them.
type LotExpiryJob struct {
	handler  LotExpirer
	recorder ExpiredLotsRecorder
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	mu       sync.Mutex
}

// NewLotExpiryJob creates a new job running handler on the cron schedule
// (with seconds). An empty schedule means DefaultLotExpirySchedule.
func NewLotExpiryJob(handler LotExpirer, recorder ExpiredLotsRecorder, schedule string, logger *slog.Logger) *LotExpiryJob {
	if schedule == "" {
		schedule = DefaultLotExpirySchedule
	}
	return &LotExpiryJob{
		handler:  handler,
		recorder: recorder,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "lot_expiry_job"),
	}
}

// RunOnce performs a single sweep. Overlapping runs are skipped.
func (j *LotExpiryJob) RunOnce(ctx context.Context) (int, error) {
	if !j.mu.TryLock() {
		return 0, nil
	}
	defer j.mu.Unlock()

	expired, err := j.handler.Handle(ctx, commands.NewExpireLotsCommand())
	if err != nil {
		return 0, err
	}
	if j.recorder != nil {
		j.recorder.RecordExpiredLots(expired)
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "Lots expired", "count", expired)
	}
	return expired, nil
}

// Start schedules the sweep.
func (j *LotExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Lot expiry job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Lot expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the lot expiry job and waits for a running sweep to finish.
func (j *LotExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Lot expiry job stopped")
}
