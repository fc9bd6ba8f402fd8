// File: /jobs/reminder_check_job.go
package jobs

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"carservice-api/services"
)

// DefaultCheckInterval replaces a non-positive interval.
const DefaultCheckInterval = 24 * time.Hour

// ReminderChecker runs one scan-and-notify pass.
type ReminderChecker interface {
	CheckReminders(ctx context.Context) (services.CheckResult, error)
}

// ReminderCheckJob periodically notifies owners about due reminders
type ReminderCheckJob struct {
	checker  ReminderChecker
	interval time.Duration
	ticker   *time.Ticker
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// NewReminderCheckJob creates a new reminder check job
func NewReminderCheckJob(checker ReminderChecker, interval time.Duration) *ReminderCheckJob {
	if interval <= 0 {
		log.WithField("interval", interval.String()).Warn("Invalid reminder check interval, using default")
		interval = DefaultCheckInterval
	}
	return &ReminderCheckJob{
		checker:  checker,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start runs a check immediately and then on every tick until Stop is called
// or ctx is cancelled.
func (j *ReminderCheckJob) Start(ctx context.Context) {
	ctx, j.cancel = context.WithCancel(ctx)
	j.ticker = time.NewTicker(j.interval)

	log.WithField("interval", j.interval.String()).Info("Reminder check job started")

	go func() {
		defer close(j.done)
		defer j.ticker.Stop()

		// Run immediately on start
		j.check(ctx)

		for {
			select {
			case <-j.ticker.C:
				j.check(ctx)
			case <-ctx.Done():
				log.Info("Reminder check job stopped")
				return
			}
		}
	}()
}

// Stop ends the loop and waits for a running check to finish.
func (j *ReminderCheckJob) Stop() {
	j.stopOnce.Do(func() {
		if j.cancel == nil {
			return
		}
		j.cancel()
		<-j.done
	})
}

func (j *ReminderCheckJob) check(ctx context.Context) {
	log.Debug("Running reminder check...")

	if _, err := j.checker.CheckReminders(ctx); err != nil {
		log.WithError(err).Error("Error during reminder check")
	}
}
