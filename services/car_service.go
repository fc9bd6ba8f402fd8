// File: /services/car_service.go
package services

import (
	"context"
	"math"

	"gorm.io/gorm"

	"carservice-api/models"
	"carservice-api/repositories"
)

const recentServicesLimit = 5

type CarService struct {
	cars      *repositories.CarRepository
	records   *repositories.ServiceRecordRepository
	reminders *repositories.ReminderRepository
	clock     Clock
}

func NewCarService(db *gorm.DB, clock Clock) *CarService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &CarService{
		cars:      repositories.NewCarRepository(db),
		records:   repositories.NewServiceRecordRepository(db),
		reminders: repositories.NewReminderRepository(db),
		clock:     clock,
	}
}

// Stats summarises the costs, reminders and latest services of a car.
func (s *CarService) Stats(ctx context.Context, userID, carID string) (*models.CarStatsResponse, error) {
	car, err := s.cars.FindForUser(ctx, userID, carID)
	if err != nil {
		return nil, err
	}

	totalCost, count, err := s.cars.ServiceTotals(ctx, carID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	upcoming, err := s.reminders.ListUpcomingForCar(ctx, carID, now)
	if err != nil {
		return nil, err
	}
	overdue, err := s.reminders.ListOverdueForCar(ctx, carID, now)
	if err != nil {
		return nil, err
	}
	recent, err := s.records.Recent(ctx, carID, recentServicesLimit)
	if err != nil {
		return nil, err
	}

	average := 0.0
	if count > 0 {
		average = math.Round(totalCost/float64(count)*100) / 100
	}

	return &models.CarStatsResponse{
		Car: *car,
		Statistics: models.CarStats{
			TotalCost:             totalCost,
			ServiceCount:          count,
			AverageCost:           average,
			UpcomingServicesCount: len(upcoming),
			OverdueServicesCount:  len(overdue),
		},
		UpcomingServices: upcoming,
		OverdueServices:  overdue,
		RecentServices:   recent,
	}, nil
}
