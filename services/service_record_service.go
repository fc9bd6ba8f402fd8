// File: /services/service_record_service.go
package services

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"carservice-api/models"
	"carservice-api/repositories"
)

// ServiceRecordInput is a service performed on one of the user's cars.
type ServiceRecordInput struct {
	CarID            string
	ServiceTypeID    uint
	ServiceDate      time.Time
	MileageAtService int
	Cost             *float64
	Notes            string
	ServiceProvider  string
}

// ServiceRecordUpdate holds the fields of a record to change; nil fields are
// left as they are.
type ServiceRecordUpdate struct {
	ServiceTypeID    *uint
	ServiceDate      *time.Time
	MileageAtService *int
	Cost             *float64
	Notes            *string
	ServiceProvider  *string
}

type ServiceRecordService struct {
	db        *gorm.DB
	records   *repositories.ServiceRecordRepository
	cars      *repositories.CarRepository
	types     *repositories.ServiceTypeRepository
	reminders *ReminderService
}

func NewServiceRecordService(db *gorm.DB, reminders *ReminderService) *ServiceRecordService {
	return &ServiceRecordService{
		db:        db,
		records:   repositories.NewServiceRecordRepository(db),
		cars:      repositories.NewCarRepository(db),
		types:     repositories.NewServiceTypeRepository(db),
		reminders: reminders,
	}
}

// LogService records a performed service. In one transaction it stores the
// record, moves the car's mileage to the service mileage and replaces the
// pending reminder for the car and service type.
func (s *ServiceRecordService) LogService(ctx context.Context, userID string, in ServiceRecordInput) (*models.ServiceRecord, error) {
	serviceDate := in.ServiceDate.UTC()
	nextDueDate := serviceDate
	nextDueMileage := in.MileageAtService

	record := &models.ServiceRecord{
		CarID:            in.CarID,
		ServiceTypeID:    in.ServiceTypeID,
		ServiceDate:      serviceDate,
		MileageAtService: in.MileageAtService,
		Cost:             in.Cost,
		Notes:            in.Notes,
		ServiceProvider:  in.ServiceProvider,
		NextDueDate:      &nextDueDate,
		NextDueMileage:   &nextDueMileage,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.cars.WithTx(tx).FindForUser(ctx, userID, in.CarID); err != nil {
			return err
		}
		if _, err := s.types.WithTx(tx).FindByID(ctx, in.ServiceTypeID); err != nil {
			return err
		}

		if err := s.records.WithTx(tx).Create(ctx, record); err != nil {
			return err
		}
		if err := s.cars.WithTx(tx).UpdateMileage(ctx, in.CarID, in.MileageAtService); err != nil {
			return err
		}

		_, err := s.reminders.WithTx(tx).DeriveReminder(ctx, in.CarID, in.ServiceTypeID, record.NextDueDate, record.NextDueMileage)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":           userID,
		"car_id":            in.CarID,
		"service_record_id": record.ID,
	}).Info("Service record logged")

	return s.records.FindForUser(ctx, userID, record.ID)
}

// Update changes a record owned by the user. Reminders are not re-derived.
func (s *ServiceRecordService) Update(ctx context.Context, userID, recordID string, in ServiceRecordUpdate) (*models.ServiceRecord, error) {
	record, err := s.records.FindForUser(ctx, userID, recordID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.ServiceTypeID != nil {
		if _, err := s.types.FindByID(ctx, *in.ServiceTypeID); err != nil {
			return nil, err
		}
		fields["service_type_id"] = *in.ServiceTypeID
	}
	if in.ServiceDate != nil {
		fields["service_date"] = in.ServiceDate.UTC()
	}
	if in.MileageAtService != nil {
		fields["mileage_at_service"] = *in.MileageAtService
	}
	if in.Cost != nil {
		fields["cost"] = *in.Cost
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	if in.ServiceProvider != nil {
		fields["service_provider"] = *in.ServiceProvider
	}

	if len(fields) > 0 {
		if err := s.records.Update(ctx, record, fields); err != nil {
			return nil, err
		}
	}
	return s.records.FindForUser(ctx, userID, recordID)
}
