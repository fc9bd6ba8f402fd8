// File: /repositories/reminder_repository.go
package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"carservice-api/models"
)

type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// WithTx returns a repository bound to an open transaction.
func (r *ReminderRepository) WithTx(tx *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: tx}
}

// ReplacePending deletes every pending reminder of the reminder's car and
// service type and inserts reminder as the new pending one, atomically.
func (r *ReminderRepository) ReplacePending(ctx context.Context, reminder *models.Reminder) error {
	reminder.Status = models.ReminderStatusPending
	key := models.PendingKeyFor(reminder.CarID, reminder.ServiceTypeID)
	reminder.PendingKey = &key

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ? AND service_type_id = ? AND status = ?",
			reminder.CarID, reminder.ServiceTypeID, models.ReminderStatusPending).
			Delete(&models.Reminder{}).Error; err != nil {
			return err
		}

		return tx.Create(reminder).Error
	})
}

// CountPending returns the number of pending reminders for a car and service type.
func (r *ReminderRepository) CountPending(ctx context.Context, carID string, serviceTypeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("car_id = ? AND service_type_id = ? AND status = ?", carID, serviceTypeID, models.ReminderStatusPending).
		Count(&count).Error
	return count, err
}

// dueQuery selects pending reminders not notified since notifiedBefore, with
// the car, its owner and the service type loaded.
func (r *ReminderRepository) dueQuery(ctx context.Context, notifiedBefore time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Car.User").
		Preload("ServiceType").
		Where("status = ?", models.ReminderStatusPending).
		Where("last_notified_at IS NULL OR last_notified_at < ?", notifiedBefore.UTC())
}

// FindOverdue returns pending reminders with a due date before now.
func (r *ReminderRepository) FindOverdue(ctx context.Context, now, notifiedBefore time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.dueQuery(ctx, notifiedBefore).
		Where("due_date < ?", now.UTC()).
		Find(&reminders).Error
	return reminders, err
}

// FindUpcoming returns pending reminders with a due date in [now, until].
func (r *ReminderRepository) FindUpcoming(ctx context.Context, now, until, notifiedBefore time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.dueQuery(ctx, notifiedBefore).
		Where("due_date BETWEEN ? AND ?", now.UTC(), until.UTC()).
		Find(&reminders).Error
	return reminders, err
}

// MarkNotified stamps the last notification time. The status is left as is.
func (r *ReminderRepository) MarkNotified(ctx context.Context, reminderID string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ?", reminderID).
		Update("last_notified_at", at.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ownedCars is the sub-query of car IDs that belong to userID.
func (r *ReminderRepository) ownedCars(userID string) *gorm.DB {
	return r.db.Model(&models.Car{}).Select("id").Where("user_id = ?", userID)
}

// FindForUser loads one reminder whose car belongs to userID.
func (r *ReminderRepository) FindForUser(ctx context.Context, userID, reminderID string) (*models.Reminder, error) {
	var reminder models.Reminder
	err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("ServiceType").
		Where("id = ? AND car_id IN (?)", reminderID, r.ownedCars(userID)).
		First(&reminder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reminder, nil
}

// ListPendingForUser lists the user's pending reminders, earliest due first.
func (r *ReminderRepository) ListPendingForUser(ctx context.Context, userID, carID string, page Page) ([]models.Reminder, int64, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND car_id IN (?)", models.ReminderStatusPending, r.ownedCars(userID))
	if carID != "" {
		query = query.Where("car_id = ?", carID)
	}
	return r.list(query, page)
}

// ListOverdueForUser lists the user's pending reminders due before now.
func (r *ReminderRepository) ListOverdueForUser(ctx context.Context, userID string, now time.Time, page Page) ([]models.Reminder, int64, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND car_id IN (?)", models.ReminderStatusPending, r.ownedCars(userID)).
		Where("due_date < ?", now.UTC())
	return r.list(query, page)
}

func (r *ReminderRepository) list(query *gorm.DB, page Page) ([]models.Reminder, int64, error) {
	paged, total, err := paginate(query, &models.Reminder{}, page)
	if err != nil {
		return nil, 0, err
	}

	var reminders []models.Reminder
	err = paged.Preload("Car").Preload("ServiceType").
		Order("due_date ASC").
		Find(&reminders).Error
	return reminders, total, err
}

// ListUpcomingForCar returns pending reminders of a car that are not overdue,
// including those without a due date.
func (r *ReminderRepository) ListUpcomingForCar(ctx context.Context, carID string, now time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).
		Preload("ServiceType").
		Where("car_id = ? AND status = ?", carID, models.ReminderStatusPending).
		Where("due_date >= ? OR due_date IS NULL", now.UTC()).
		Order("due_date ASC").
		Find(&reminders).Error
	return reminders, err
}

// ListOverdueForCar returns pending reminders of a car due before now.
func (r *ReminderRepository) ListOverdueForCar(ctx context.Context, carID string, now time.Time) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := r.db.WithContext(ctx).
		Preload("ServiceType").
		Where("car_id = ? AND status = ? AND due_date < ?", carID, models.ReminderStatusPending, now.UTC()).
		Order("due_date ASC").
		Find(&reminders).Error
	return reminders, err
}

// Resolve moves a pending reminder to a terminal status and releases its
// pending key. Only pending reminders can be resolved.
func (r *ReminderRepository) Resolve(ctx context.Context, reminderID string, status models.ReminderStatus) error {
	if !status.IsTerminal() {
		return models.ErrInvalidStatusTransition
	}

	result := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ? AND status = ?", reminderID, models.ReminderStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"pending_key": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrInvalidStatusTransition
	}
	return nil
}
