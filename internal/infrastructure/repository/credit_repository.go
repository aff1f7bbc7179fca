package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type creditRepository struct {
	db *gorm.DB
}

// NewCreditRepository creates a new customer credit repository
func NewCreditRepository(db *gorm.DB) domainRepo.CreditRepository {
	return &creditRepository{db: db}
}

func (r *creditRepository) Create(ctx context.Context, credit *entity.CustomerCredit) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(credit).Error
}

func (r *creditRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	var credit entity.CustomerCredit
	err := r.db.WithContext(ctx).
		Preload("Customer", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&credit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &credit, err
}

func (r *creditRepository) List(ctx context.Context, params *domainRepo.CreditFilterParams) ([]entity.CustomerCredit, int64, error) {
	var credits []entity.CustomerCredit
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CustomerCredit{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Customer", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Find(&credits).Error
	return credits, total, err
}

func (r *creditRepository) Redeem(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&entity.CustomerCredit{}).
		Where("id = ? AND status = ?", id, enum.CreditStatusPending).
		Updates(map[string]interface{}{
			"status":      enum.CreditStatusRedeemed,
			"redeemed_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missingOrStale(r.db.WithContext(ctx), entity.CustomerCredit{}.TableName(), id)
	}
	return nil
}

func (r *creditRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CustomerCredit{}, "id = ?", id).Error
}

func (r *creditRepository) Pending(ctx context.Context) (*domainRepo.Aggregate, error) {
	var agg domainRepo.Aggregate
	err := r.db.WithContext(ctx).Model(&entity.CustomerCredit{}).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("status = ?", enum.CreditStatusPending).
		Scan(&agg).Error
	return &agg, err
}
