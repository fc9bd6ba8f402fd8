// File: /repositories/service_record_repository.go
package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"carservice-api/models"
)

type ServiceRecordRepository struct {
	db *gorm.DB
}

func NewServiceRecordRepository(db *gorm.DB) *ServiceRecordRepository {
	return &ServiceRecordRepository{db: db}
}

func (r *ServiceRecordRepository) WithTx(tx *gorm.DB) *ServiceRecordRepository {
	return &ServiceRecordRepository{db: tx}
}

func (r *ServiceRecordRepository) Create(ctx context.Context, record *models.ServiceRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *ServiceRecordRepository) ownedCars(userID string) *gorm.DB {
	return r.db.Model(&models.Car{}).Select("id").Where("user_id = ?", userID)
}

// FindForUser loads a service record whose car belongs to userID.
func (r *ServiceRecordRepository) FindForUser(ctx context.Context, userID, recordID string) (*models.ServiceRecord, error) {
	var record models.ServiceRecord
	err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("ServiceType").
		Where("id = ? AND car_id IN (?)", recordID, r.ownedCars(userID)).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListForUser returns the user's service history, newest first.
func (r *ServiceRecordRepository) ListForUser(ctx context.Context, userID string, filter models.ServiceRecordFilter, page Page) ([]models.ServiceRecord, int64, error) {
	query := r.db.WithContext(ctx).Where("car_id IN (?)", r.ownedCars(userID))

	if filter.CarID != "" {
		query = query.Where("car_id = ?", filter.CarID)
	}
	if filter.ServiceTypeID != 0 {
		query = query.Where("service_type_id = ?", filter.ServiceTypeID)
	}
	if filter.DateFrom != nil {
		query = query.Where("service_date >= ?", filter.DateFrom.UTC())
	}
	if filter.DateTo != nil {
		query = query.Where("service_date <= ?", filter.DateTo.UTC())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("notes LIKE ? OR service_provider LIKE ?", like, like)
	}

	paged, total, err := paginate(query, &models.ServiceRecord{}, page)
	if err != nil {
		return nil, 0, err
	}

	var records []models.ServiceRecord
	err = paged.
		Preload("Car").
		Preload("ServiceType").
		Order("service_date DESC, created_at DESC").
		Find(&records).Error
	return records, total, err
}

// ListForCar returns the service history of one car, newest first.
func (r *ServiceRecordRepository) ListForCar(ctx context.Context, carID string, page Page) ([]models.ServiceRecord, int64, error) {
	query := r.db.WithContext(ctx).Where("car_id = ?", carID)

	paged, total, err := paginate(query, &models.ServiceRecord{}, page)
	if err != nil {
		return nil, 0, err
	}

	var records []models.ServiceRecord
	err = paged.
		Preload("ServiceType").
		Order("service_date DESC, created_at DESC").
		Find(&records).Error
	return records, total, err
}

// Recent returns the last limit records of a car by creation time.
func (r *ServiceRecordRepository) Recent(ctx context.Context, carID string, limit int) ([]models.ServiceRecord, error) {
	var records []models.ServiceRecord
	err := r.db.WithContext(ctx).
		Preload("ServiceType").
		Where("car_id = ?", carID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// ListAllForUser returns every record of the user's cars serviced on or after
// since (all of them when since is nil), newest first.
func (r *ServiceRecordRepository) ListAllForUser(ctx context.Context, userID string, since *time.Time) ([]models.ServiceRecord, error) {
	query := r.db.WithContext(ctx).
		Preload("Car").
		Preload("ServiceType").
		Where("car_id IN (?)", r.ownedCars(userID))
	if since != nil {
		query = query.Where("service_date >= ?", since.UTC())
	}

	var records []models.ServiceRecord
	err := query.Order("service_date DESC, created_at DESC").Find(&records).Error
	return records, err
}

func (r *ServiceRecordRepository) Update(ctx context.Context, record *models.ServiceRecord, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.ServiceRecord{ID: record.ID}).
		Omit(clause.Associations).
		Updates(fields).Error
}

// Delete removes a record whose car belongs to userID.
func (r *ServiceRecordRepository) Delete(ctx context.Context, userID, recordID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND car_id IN (?)", recordID, r.ownedCars(userID)).
		Delete(&models.ServiceRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
