// File: /models/reminder.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "pending"
	ReminderStatusCompleted ReminderStatus = "completed"
	ReminderStatusDismissed ReminderStatus = "dismissed"
)

// IsValid reports whether s is one of the known statuses.
func (s ReminderStatus) IsValid() bool {
	switch s {
	case ReminderStatusPending, ReminderStatusCompleted, ReminderStatusDismissed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed from s.
func (s ReminderStatus) IsTerminal() bool {
	return s == ReminderStatusCompleted || s == ReminderStatusDismissed
}

type Reminder struct {
	ID             string         `json:"id" gorm:"primaryKey;size:191"`
	CarID          string         `json:"car_id" gorm:"not null;size:191;index:idx_reminders_car_type"`
	ServiceTypeID  uint           `json:"service_type_id" gorm:"not null;index:idx_reminders_car_type"`
	DueDate        *time.Time     `json:"due_date" gorm:"type:date;index:idx_reminders_status_due,priority:2"`
	DueMileage     *int           `json:"due_mileage"`
	Status         ReminderStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index:idx_reminders_status_due,priority:1"`
	LastNotifiedAt *time.Time     `json:"last_notified_at" gorm:"index"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	// PendingKey is set only while the reminder is pending. The unique index
	// keeps a single pending reminder per car and service type; NULLs do not
	// collide, so completed and dismissed rows are unaffected.
	PendingKey *string `json:"-" gorm:"size:100;uniqueIndex"`

	Car         *Car         `json:"car,omitempty" gorm:"foreignKey:CarID"`
	ServiceType *ServiceType `json:"service_type,omitempty" gorm:"foreignKey:ServiceTypeID"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Status == "" {
		r.Status = ReminderStatusPending
	}
	if r.Status == ReminderStatusPending && r.PendingKey == nil {
		key := PendingKeyFor(r.CarID, r.ServiceTypeID)
		r.PendingKey = &key
	}
	return nil
}

// PendingKeyFor builds the uniqueness key of the pending reminder of a car
// and service type.
func PendingKeyFor(carID string, serviceTypeID uint) string {
	return fmt.Sprintf("%s:%d", carID, serviceTypeID)
}

// Owner returns the user owning the reminder's car, or nil when the car or
// its user was not loaded or no longer exists.
func (r *Reminder) Owner() *User {
	if r.Car == nil || r.Car.User == nil || r.Car.User.ID == "" {
		return nil
	}
	return r.Car.User
}
