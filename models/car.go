// File: /models/car.go
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Car struct {
	ID             string    `json:"id" gorm:"primaryKey;size:191"`
	UserID         string    `json:"user_id" gorm:"not null;size:191;index"`
	Brand          string    `json:"brand" gorm:"not null;size:255"`
	Model          string    `json:"model" gorm:"not null;size:255"`
	Year           int       `json:"year" gorm:"not null"`
	CurrentMileage int       `json:"current_mileage" gorm:"not null;default:0"`
	PlateNumber    string    `json:"plate_number" gorm:"size:255"`
	VIN            string    `json:"vin" gorm:"column:vin;size:17"`
	Color          string    `json:"color" gorm:"size:255"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	User           *User           `json:"-" gorm:"foreignKey:UserID"`
	ServiceRecords []ServiceRecord `json:"service_records,omitempty" gorm:"foreignKey:CarID"`
	Reminders      []Reminder      `json:"reminders,omitempty" gorm:"foreignKey:CarID"`
}

func (c *Car) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// DisplayName is the "<brand> <model>" label used in messages.
func (c *Car) DisplayName() string {
	return fmt.Sprintf("%s %s", c.Brand, c.Model)
}

// CarStats summarises the service history of one car.
type CarStats struct {
	TotalCost             float64 `json:"total_cost"`
	ServiceCount          int64   `json:"service_count"`
	AverageCost           float64 `json:"average_cost"`
	UpcomingServicesCount int     `json:"upcoming_services_count"`
	OverdueServicesCount  int     `json:"overdue_services_count"`
}

type CarStatsResponse struct {
	Car              Car             `json:"car"`
	Statistics       CarStats        `json:"statistics"`
	UpcomingServices []Reminder      `json:"upcoming_services"`
	OverdueServices  []Reminder      `json:"overdue_services"`
	RecentServices   []ServiceRecord `json:"recent_services"`
}
