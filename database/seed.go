// File: /database/seed.go
package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"carservice-api/models"
)

func intPtr(v int) *int { return &v }

// DefaultServiceTypes is the reference list of maintenance services.
func DefaultServiceTypes() []models.ServiceType {
	return []models.ServiceType{
		{Name: "Oil Change", Category: "Engine", RecommendedIntervalKm: intPtr(5000), RecommendedIntervalDays: intPtr(180), Description: "Regular oil and filter change"},
		{Name: "Brake Pads", Category: "Brakes", RecommendedIntervalKm: intPtr(40000), Description: "Replace brake pads"},
		{Name: "Tire Rotation", Category: "Tires", RecommendedIntervalKm: intPtr(10000), Description: "Rotate tires for even wear"},
		{Name: "Air Filter", Category: "Engine", RecommendedIntervalKm: intPtr(15000), Description: "Replace engine air filter"},
		{Name: "Battery Check", Category: "Electrical", RecommendedIntervalDays: intPtr(365), Description: "Check battery health and terminals"},
		{Name: "Coolant Flush", Category: "Engine", RecommendedIntervalKm: intPtr(50000), Description: "Flush and replace coolant"},
		{Name: "Transmission Service", Category: "Transmission", RecommendedIntervalKm: intPtr(60000), Description: "Check and change transmission fluid"},
		{Name: "Wheel Alignment", Category: "Tires", RecommendedIntervalKm: intPtr(20000), Description: "Check and adjust wheel alignment"},
	}
}

// SeedData inserts the service types when the table is empty.
func SeedData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ServiceType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting service types: %w", err)
	}

	if count > 0 {
		log.WithField("service_types", count).Info("Service types already present, skipping seed")
		return nil
	}

	serviceTypes := DefaultServiceTypes()
	if err := db.Create(&serviceTypes).Error; err != nil {
		return fmt.Errorf("seeding service types: %w", err)
	}

	log.WithField("service_types", len(serviceTypes)).Info("Database seeded with service types")
	return nil
}
