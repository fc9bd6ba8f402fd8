// File: /repositories/notification_repository.go
package repositories

import (
	"context"

	"gorm.io/gorm"

	"carservice-api/models"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) WithTx(tx *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: tx}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListForUser returns the user's inbox, newest first. An empty notificationType
// returns every type.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, notificationType models.NotificationType, page Page) ([]models.Notification, int64, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if notificationType != "" {
		query = query.Where("type = ?", notificationType)
	}

	paged, total, err := paginate(query, &models.Notification{}, page)
	if err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	err = paged.Order("created_at DESC").Find(&notifications).Error
	return notifications, total, err
}

func (r *NotificationRepository) Stats(ctx context.Context, userID string) (models.NotificationStats, error) {
	var unread, total int64

	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unread).Error; err != nil {
		return models.NotificationStats{}, err
	}

	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return models.NotificationStats{}, err
	}

	return models.NotificationStats{
		UnreadCount: int(unread),
		TotalCount:  int(total),
	}, nil
}

// MarkRead flags one of the user's notifications as read.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) error {
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return models.ErrNotFound
	}

	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true).Error
}

// MarkAllRead flags every unread notification of the user and returns how
// many changed.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

// CountForReminder returns the number of inbox entries created for a reminder.
func (r *NotificationRepository) CountForReminder(ctx context.Context, reminderID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("reminder_id = ?", reminderID).
		Count(&count).Error
	return count, err
}
