// File: /models/service_type.go
package models

import "time"

// ServiceType is shared reference data, seeded and never owned by a user.
type ServiceType struct {
	ID                      uint      `json:"id" gorm:"primaryKey"`
	Name                    string    `json:"name" gorm:"not null;size:255"`
	Description             string    `json:"description" gorm:"type:text"`
	RecommendedIntervalKm   *int      `json:"recommended_interval_km"`
	RecommendedIntervalDays *int      `json:"recommended_interval_days"`
	Category                string    `json:"category" gorm:"size:100;index"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}
