// File: /repositories/service_type_repository.go
package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"carservice-api/models"
)

type ServiceTypeRepository struct {
	db *gorm.DB
}

func NewServiceTypeRepository(db *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{db: db}
}

func (r *ServiceTypeRepository) WithTx(tx *gorm.DB) *ServiceTypeRepository {
	return &ServiceTypeRepository{db: tx}
}

// List returns every service type ordered by category and name.
func (r *ServiceTypeRepository) List(ctx context.Context) ([]models.ServiceType, error) {
	var types []models.ServiceType
	err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&types).Error
	return types, err
}

// ListGrouped returns the service types keyed by category.
func (r *ServiceTypeRepository) ListGrouped(ctx context.Context) (map[string][]models.ServiceType, error) {
	types, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.ServiceType)
	for _, t := range types {
		grouped[t.Category] = append(grouped[t.Category], t)
	}
	return grouped, nil
}

func (r *ServiceTypeRepository) FindByID(ctx context.Context, id uint) (*models.ServiceType, error) {
	var serviceType models.ServiceType
	err := r.db.WithContext(ctx).First(&serviceType, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &serviceType, nil
}
