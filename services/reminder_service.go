// File: /services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"carservice-api/models"
	"carservice-api/repositories"
)

const (
	DefaultUpcomingWindow = 3 * 24 * time.Hour
	DefaultNotifyThrottle = 24 * time.Hour
)

// ReminderOptions tune the scanner and the notification content.
type ReminderOptions struct {
	UpcomingWindow time.Duration
	NotifyThrottle time.Duration
	FrontendURL    string
}

// ReminderService derives reminders from service history, finds the ones that
// need attention and notifies their owners.
type ReminderService struct {
	db            *gorm.DB
	reminders     *repositories.ReminderRepository
	notifications *repositories.NotificationRepository
	mailer        ReminderMailer
	publisher     ReminderPublisher
	clock         Clock
	opts          ReminderOptions
}

// NewReminderService builds the service. publisher may be nil; clock defaults
// to SystemClock.
func NewReminderService(db *gorm.DB, mailer ReminderMailer, publisher ReminderPublisher, clock Clock, opts ReminderOptions) *ReminderService {
	if clock == nil {
		clock = SystemClock{}
	}
	if opts.UpcomingWindow <= 0 {
		opts.UpcomingWindow = DefaultUpcomingWindow
	}
	if opts.NotifyThrottle <= 0 {
		opts.NotifyThrottle = DefaultNotifyThrottle
	}

	return &ReminderService{
		db:            db,
		reminders:     repositories.NewReminderRepository(db),
		notifications: repositories.NewNotificationRepository(db),
		mailer:        mailer,
		publisher:     publisher,
		clock:         clock,
		opts:          opts,
	}
}

// WithTx returns a copy whose store operations run inside tx.
func (s *ReminderService) WithTx(tx *gorm.DB) *ReminderService {
	clone := *s
	clone.db = tx
	clone.reminders = s.reminders.WithTx(tx)
	clone.notifications = s.notifications.WithTx(tx)
	return &clone
}

// DeriveReminder replaces the pending reminder of a car and service type with
// one carrying the given due values. It does nothing when neither a due date
// nor a due mileage is known. Ownership must be checked by the caller.
func (s *ReminderService) DeriveReminder(ctx context.Context, carID string, serviceTypeID uint, dueDate *time.Time, dueMileage *int) (*models.Reminder, error) {
	if dueDate == nil && dueMileage == nil {
		return nil, nil
	}

	reminder := &models.Reminder{
		CarID:         carID,
		ServiceTypeID: serviceTypeID,
		DueDate:       dueDate,
		DueMileage:    dueMileage,
	}
	if dueDate != nil {
		d := dueDate.UTC()
		reminder.DueDate = &d
	}

	if err := s.reminders.ReplacePending(ctx, reminder); err != nil {
		return nil, fmt.Errorf("deriving reminder for car %s: %w", carID, err)
	}

	log.WithFields(log.Fields{
		"car_id":          carID,
		"service_type_id": serviceTypeID,
		"reminder_id":     reminder.ID,
	}).Debug("Pending reminder replaced")
	return reminder, nil
}

// ScanDueReminders returns the pending reminders that are overdue or due
// within the upcoming window and were not notified within the throttle
// period. Each reminder appears once.
func (s *ReminderService) ScanDueReminders(ctx context.Context, now time.Time) ([]models.Reminder, error) {
	now = now.UTC()
	notifiedBefore := now.Add(-s.opts.NotifyThrottle)

	overdue, err := s.reminders.FindOverdue(ctx, now, notifiedBefore)
	if err != nil {
		return nil, fmt.Errorf("finding overdue reminders: %w", err)
	}

	upcoming, err := s.reminders.FindUpcoming(ctx, now, now.Add(s.opts.UpcomingWindow), notifiedBefore)
	if err != nil {
		return nil, fmt.Errorf("finding upcoming reminders: %w", err)
	}

	seen := make(map[string]bool, len(overdue)+len(upcoming))
	due := make([]models.Reminder, 0, len(overdue)+len(upcoming))
	for _, batch := range [][]models.Reminder{overdue, upcoming} {
		for _, r := range batch {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			due = append(due, r)
		}
	}
	return due, nil
}

// CheckResult counts the outcome of one reminder check run.
type CheckResult struct {
	Scanned  int `json:"scanned"`
	Notified int `json:"notified"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// CheckReminders scans for due reminders and notifies each owner. A failing
// reminder is logged and counted; the run continues with the next one.
func (s *ReminderService) CheckReminders(ctx context.Context) (CheckResult, error) {
	var result CheckResult

	due, err := s.ScanDueReminders(ctx, s.clock.Now())
	if err != nil {
		return result, err
	}
	result.Scanned = len(due)

	for i := range due {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		outcome, err := s.Notify(ctx, &due[i])
		switch outcome {
		case NotifySent:
			result.Notified++
		case NotifyNoOwner, NotifyReplaced:
			result.Skipped++
		default:
			result.Failed++
			log.WithError(err).WithField("reminder_id", due[i].ID).Error("Failed to notify reminder owner")
		}
	}

	log.WithFields(log.Fields{
		"scanned":  result.Scanned,
		"notified": result.Notified,
		"skipped":  result.Skipped,
		"failed":   result.Failed,
	}).Info("Reminder check completed")
	return result, nil
}

// Resolve marks one of the user's pending reminders completed or dismissed.
func (s *ReminderService) Resolve(ctx context.Context, userID, reminderID string, status models.ReminderStatus) (*models.Reminder, error) {
	if _, err := s.reminders.FindForUser(ctx, userID, reminderID); err != nil {
		return nil, err
	}
	if err := s.reminders.Resolve(ctx, reminderID, status); err != nil {
		return nil, err
	}
	return s.reminders.FindForUser(ctx, userID, reminderID)
}
