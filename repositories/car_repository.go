// File: /repositories/car_repository.go
package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carservice-api/models"
)

var carSortColumns = map[string]bool{
	"created_at":      true,
	"updated_at":      true,
	"brand":           true,
	"model":           true,
	"year":            true,
	"current_mileage": true,
}

// CarListOptions are the list parameters of the garage view.
type CarListOptions struct {
	Search  string
	SortBy  string
	SortDir string
	Page    Page
}

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

func (r *CarRepository) WithTx(tx *gorm.DB) *CarRepository {
	return &CarRepository{db: tx}
}

func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

// FindForUser loads a car owned by userID.
func (r *CarRepository) FindForUser(ctx context.Context, userID, carID string) (*models.Car, error) {
	var car models.Car
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", carID, userID).
		First(&car).Error
	return carResult(&car, err)
}

// FindForUserWithDetails loads a car with its service history and reminders.
func (r *CarRepository) FindForUserWithDetails(ctx context.Context, userID, carID string) (*models.Car, error) {
	var car models.Car
	err := r.db.WithContext(ctx).
		Preload("ServiceRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("service_date DESC")
		}).
		Preload("ServiceRecords.ServiceType").
		Preload("Reminders", func(db *gorm.DB) *gorm.DB {
			return db.Order("due_date ASC")
		}).
		Preload("Reminders.ServiceType").
		Where("id = ? AND user_id = ?", carID, userID).
		First(&car).Error
	return carResult(&car, err)
}

func carResult(car *models.Car, err error) (*models.Car, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return car, nil
}

// ListForUser returns the user's cars matching opts and the total count.
func (r *CarRepository) ListForUser(ctx context.Context, userID string, opts CarListOptions) ([]models.Car, int64, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if search := strings.TrimSpace(opts.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("brand LIKE ? OR model LIKE ? OR plate_number LIKE ?", like, like, like)
	}

	paged, total, err := paginate(query, &models.Car{}, opts.Page)
	if err != nil {
		return nil, 0, err
	}

	var cars []models.Car
	err = paged.
		Preload("ServiceRecords").
		Preload("Reminders").
		Order(carOrder(opts.SortBy, opts.SortDir)).
		Find(&cars).Error
	return cars, total, err
}

func carOrder(sortBy, sortDir string) string {
	if !carSortColumns[sortBy] {
		sortBy = "created_at"
	}
	if strings.ToLower(sortDir) != "asc" {
		sortDir = "desc"
	}
	return sortBy + " " + strings.ToLower(sortDir)
}

// Update writes the given columns of a car.
func (r *CarRepository) Update(ctx context.Context, car *models.Car, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Car{ID: car.ID}).
		Omit(clause.Associations).
		Updates(fields).Error
}

func (r *CarRepository) UpdateMileage(ctx context.Context, carID string, mileage int) error {
	return r.db.WithContext(ctx).Model(&models.Car{}).
		Where("id = ?", carID).
		Update("current_mileage", mileage).Error
}

// Delete removes a car with its service records and reminders.
func (r *CarRepository) Delete(ctx context.Context, userID, carID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", carID, userID).Delete(&models.Car{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.ErrNotFound
		}

		if err := tx.Where("car_id = ?", carID).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		return tx.Where("car_id = ?", carID).Delete(&models.ServiceRecord{}).Error
	})
}

// ServiceTotals returns the summed cost and number of service records of a car.
func (r *CarRepository) ServiceTotals(ctx context.Context, carID string) (float64, int64, error) {
	var totals struct {
		TotalCost float64
		Count     int64
	}
	err := r.db.WithContext(ctx).Model(&models.ServiceRecord{}).
		Select("COALESCE(SUM(cost), 0) AS total_cost, COUNT(*) AS count").
		Where("car_id = ?", carID).
		Scan(&totals).Error
	return totals.TotalCost, totals.Count, err
}

// IDsForUser returns the IDs of every car owned by userID.
func (r *CarRepository) IDsForUser(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Car{}).
		Where("user_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}
