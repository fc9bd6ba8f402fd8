// File: /models/service_record.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceRecord struct {
	ID               string     `json:"id" gorm:"primaryKey;size:191"`
	CarID            string     `json:"car_id" gorm:"not null;size:191;index"`
	ServiceTypeID    uint       `json:"service_type_id" gorm:"not null;index"`
	ServiceDate      time.Time  `json:"service_date" gorm:"type:date;not null;index"`
	MileageAtService int        `json:"mileage_at_service" gorm:"not null"`
	Cost             *float64   `json:"cost" gorm:"type:decimal(10,2)"`
	Notes            string     `json:"notes" gorm:"type:text"`
	ServiceProvider  string     `json:"service_provider" gorm:"size:255"`
	NextDueDate      *time.Time `json:"next_due_date" gorm:"type:date"`
	NextDueMileage   *int       `json:"next_due_mileage"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Car         *Car         `json:"car,omitempty" gorm:"foreignKey:CarID"`
	ServiceType *ServiceType `json:"service_type,omitempty" gorm:"foreignKey:ServiceTypeID"`
}

func (r *ServiceRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// ServiceRecordFilter holds the optional list filters of the service history.
type ServiceRecordFilter struct {
	CarID         string
	ServiceTypeID uint
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        string
}
