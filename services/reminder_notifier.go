// File: /services/reminder_notifier.go
package services

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"carservice-api/models"
)

type NotifyResult int

const (
	NotifySent NotifyResult = iota
	NotifyNoOwner
	// NotifyReplaced means the reminder was replaced or removed after the scan
	// picked it up, so there was nothing left to stamp.
	NotifyReplaced
	NotifyFailed
)

func (r NotifyResult) String() string {
	switch r {
	case NotifySent:
		return "sent"
	case NotifyNoOwner:
		return "no_owner"
	case NotifyReplaced:
		return "replaced"
	default:
		return "failed"
	}
}

// Notify delivers a reminder to the owner of its car. The email goes out
// first; the inbox entry and the notification timestamp are then written in
// one transaction, so a failed email leaves the reminder eligible for the next
// scan. The push message is best effort. The reminder status never changes.
func (s *ReminderService) Notify(ctx context.Context, reminder *models.Reminder) (NotifyResult, error) {
	fields := log.Fields{"reminder_id": reminder.ID, "car_id": reminder.CarID}

	owner := reminder.Owner()
	if owner == nil {
		log.WithFields(fields).WithError(models.ErrOrphanedCar).Warn("Skipping reminder")
		return NotifyNoOwner, nil
	}

	msg := NewReminderMessage(reminder, owner, s.opts.FrontendURL)

	if err := s.mailer.SendReminderEmail(ctx, owner.Email, msg); err != nil {
		return NotifyFailed, fmt.Errorf("%w: reminder %s: %w", models.ErrMessagingFailure, reminder.ID, err)
	}

	now := s.clock.Now()
	reminderID := reminder.ID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		notification := &models.Notification{
			UserID:     owner.ID,
			Type:       models.NotificationTypeReminderDue,
			ReminderID: &reminderID,
			Data:       msg.Payload,
		}
		if err := s.notifications.WithTx(tx).Create(ctx, notification); err != nil {
			return fmt.Errorf("storing notification: %w", err)
		}
		return s.reminders.WithTx(tx).MarkNotified(ctx, reminder.ID, now)
	})
	if errors.Is(err, models.ErrNotFound) {
		log.WithFields(fields).Warn("Reminder replaced before its notification was recorded")
		return NotifyReplaced, nil
	}
	if err != nil {
		return NotifyFailed, fmt.Errorf("recording notification of reminder %s: %w", reminder.ID, err)
	}
	reminder.LastNotifiedAt = &now

	if s.publisher != nil {
		if err := s.publisher.PublishReminder(ctx, owner.ID, msg.Payload); err != nil {
			log.WithFields(fields).WithError(err).Warn("Failed to push reminder")
		}
	}

	log.WithFields(fields).WithField("user_id", owner.ID).Info("Reminder owner notified")
	return NotifySent, nil
}
