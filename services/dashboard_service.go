// File: /services/dashboard_service.go
package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"carservice-api/models"
	"carservice-api/repositories"
)

type MonthlySpending struct {
	Month        string  `json:"month"`
	TotalCost    float64 `json:"total_cost"`
	ServiceCount int     `json:"service_count"`
}

type TypeSpending struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	TotalCost float64 `json:"total_cost"`
}

type CarSpending struct {
	CarName      string  `json:"car_name"`
	TotalCost    float64 `json:"total_cost"`
	ServiceCount int     `json:"service_count"`
}

type ChartData struct {
	MonthlySpending []MonthlySpending `json:"monthly_spending"`
	ServicesByType  []TypeSpending    `json:"services_by_type"`
	SpendingByCar   []CarSpending     `json:"spending_by_car"`
}

type DashboardService struct {
	records *repositories.ServiceRecordRepository
	clock   Clock
}

func NewDashboardService(db *gorm.DB, clock Clock) *DashboardService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &DashboardService{
		records: repositories.NewServiceRecordRepository(db),
		clock:   clock,
	}
}

func costOf(r models.ServiceRecord) float64 {
	if r.Cost == nil {
		return 0
	}
	return *r.Cost
}

// ChartData aggregates the user's spending over the last twelve months by
// month, and over the whole history by service type and by car.
func (s *DashboardService) ChartData(ctx context.Context, userID string) (*ChartData, error) {
	records, err := s.records.ListAllForUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	since := s.clock.Now().AddDate(0, -12, 0)
	months := map[string]*MonthlySpending{}
	types := map[string]*TypeSpending{}
	cars := map[string]*CarSpending{}

	for _, r := range records {
		cost := costOf(r)

		if !r.ServiceDate.Before(since) {
			key := r.ServiceDate.Format("2006-01")
			if months[key] == nil {
				months[key] = &MonthlySpending{Month: key}
			}
			months[key].TotalCost += cost
			months[key].ServiceCount++
		}

		if r.ServiceType != nil {
			if types[r.ServiceType.Name] == nil {
				types[r.ServiceType.Name] = &TypeSpending{Name: r.ServiceType.Name}
			}
			types[r.ServiceType.Name].Count++
			types[r.ServiceType.Name].TotalCost += cost
		}

		if r.Car != nil {
			name := r.Car.DisplayName()
			if cars[name] == nil {
				cars[name] = &CarSpending{CarName: name}
			}
			cars[name].TotalCost += cost
			cars[name].ServiceCount++
		}
	}

	data := &ChartData{
		MonthlySpending: make([]MonthlySpending, 0, len(months)),
		ServicesByType:  make([]TypeSpending, 0, len(types)),
		SpendingByCar:   make([]CarSpending, 0, len(cars)),
	}
	for _, m := range months {
		data.MonthlySpending = append(data.MonthlySpending, *m)
	}
	for _, t := range types {
		data.ServicesByType = append(data.ServicesByType, *t)
	}
	for _, c := range cars {
		data.SpendingByCar = append(data.SpendingByCar, *c)
	}

	sort.Slice(data.MonthlySpending, func(i, j int) bool {
		return data.MonthlySpending[i].Month < data.MonthlySpending[j].Month
	})
	sort.Slice(data.ServicesByType, func(i, j int) bool {
		a, b := data.ServicesByType[i], data.ServicesByType[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	sort.Slice(data.SpendingByCar, func(i, j int) bool {
		a, b := data.SpendingByCar[i], data.SpendingByCar[j]
		if a.TotalCost != b.TotalCost {
			return a.TotalCost > b.TotalCost
		}
		return a.CarName < b.CarName
	})

	return data, nil
}
