package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Issue(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Order{}).
			Where("id = ? AND status NOT IN ?", receipt.OrderID, enum.TerminalOrderStatuses()).
			Update("status", enum.OrderStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&entity.Order{}).Where("id = ?", receipt.OrderID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return domainRepo.ErrReferenceMissing
			}
			return domainRepo.ErrStateChanged
		}

		err := tx.Omit(clause.Associations).Create(receipt).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainRepo.ErrStateChanged
		}
		return err
	})
}

func receiptDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Order").
		Preload("Order.Customer", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Order.Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") })
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).Scopes(receiptDetails).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).Scopes(receiptDetails).First(&receipt, "order_id = ?", orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) List(ctx context.Context, params *domainRepo.ReceiptFilterParams) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Scopes(
			SearchScope(params.Search, "receipt_number"),
			DateRangeScope("issued_at", params.StartDate, params.EndDate),
		)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Order").
		Preload("Order.Customer", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("issued_at DESC").
		Find(&receipts).Error
	return receipts, total, err
}

func (r *receiptRepository) SumAmountPaid(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Receipt{}).
		Select("COALESCE(SUM(amount_paid), 0)").
		Scan(&total).Error
	return total, err
}
