package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
)

type laundryServiceRepository struct {
	db *gorm.DB
}

// NewLaundryServiceRepository creates a new laundry catalog repository
func NewLaundryServiceRepository(db *gorm.DB) domainRepo.LaundryServiceRepository {
	return &laundryServiceRepository{db: db}
}

func (r *laundryServiceRepository) Create(ctx context.Context, service *entity.LaundryService) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *laundryServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LaundryService, error) {
	var service entity.LaundryService
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *laundryServiceRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.LaundryService, error) {
	var services []entity.LaundryService
	if len(ids) == 0 {
		return services, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&services).Error
	return services, err
}

func (r *laundryServiceRepository) Update(ctx context.Context, service *entity.LaundryService) error {
	return r.db.WithContext(ctx).
		Model(service).
		Select("name", "description", "price_per_unit", "unit_type").
		Updates(service).Error
}

func (r *laundryServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.LaundryService{}, "id = ?", id).Error
}

func (r *laundryServiceRepository) List(ctx context.Context) ([]entity.LaundryService, error) {
	var services []entity.LaundryService
	err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error
	return services, err
}

func (r *laundryServiceRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.LaundryService{}).Count(&n).Error
	return n, err
}
