package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
)

type merchandiseRepository struct {
	db *gorm.DB
}

// NewMerchandiseRepository creates a new merchandise repository
func NewMerchandiseRepository(db *gorm.DB) domainRepo.MerchandiseRepository {
	return &merchandiseRepository{db: db}
}

func (r *merchandiseRepository) Create(ctx context.Context, item *entity.Merchandise) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *merchandiseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Merchandise, error) {
	var item entity.Merchandise
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *merchandiseRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Merchandise, error) {
	var items []entity.Merchandise
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *merchandiseRepository) GetBySKU(ctx context.Context, sku string) (*entity.Merchandise, error) {
	var item entity.Merchandise
	err := r.db.WithContext(ctx).First(&item, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *merchandiseRepository) Update(ctx context.Context, item *entity.Merchandise, countedFrom *int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if countedFrom != nil {
			res := tx.Model(&entity.Merchandise{}).
				Where("id = ? AND quantity = ?", item.ID, *countedFrom).
				Update("quantity", item.Quantity)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domainRepo.ErrStateChanged
			}
		}
		return tx.Model(item).
			Select("name", "description", "category", "sku", "unit_price", "cost_price").
			Updates(item).Error
	})
}

func (r *merchandiseRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).Model(&entity.Merchandise{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrStateChanged
	}
	return nil
}

func (r *merchandiseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Merchandise{}, "id = ?", id).Error
}

func (r *merchandiseRepository) List(ctx context.Context, params *domainRepo.MerchandiseFilterParams) ([]entity.Merchandise, int64, error) {
	var items []entity.Merchandise
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Merchandise{}).
		Scopes(SearchScope(params.Search, "name", "sku", "category"))

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.LowStockAt != nil {
		query = query.Where("quantity <= ?", *params.LowStockAt)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).Order("name ASC").Find(&items).Error
	return items, total, err
}

func (r *merchandiseRepository) ListAll(ctx context.Context) ([]entity.Merchandise, error) {
	var items []entity.Merchandise
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}
