package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *entity.Order) error {
	items := order.Items
	order.Items = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}

		// Lock merchandise rows in id order so concurrent orders cannot deadlock.
		for _, i := range merchandiseLinesByID(items) {
			deducted, err := deductStock(tx, *items[i].MerchandiseID, items[i].Quantity)
			if err != nil {
				return err
			}
			items[i].StockDeducted = deducted
		}

		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return tx.Create(&items).Error
	})

	order.Items = items
	return err
}

func merchandiseLinesByID(items []entity.OrderItem) []int {
	var idx []int
	for i := range items {
		if items[i].ItemType == enum.ItemTypeMerchandise && items[i].MerchandiseID != nil {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return items[idx[a]].MerchandiseID.String() < items[idx[b]].MerchandiseID.String()
	})
	return idx
}

// deductStock removes up to qty units, flooring the stock at zero, and
// returns how many units were actually taken.
func deductStock(tx *gorm.DB, id uuid.UUID, qty int) (int, error) {
	var item entity.Merchandise
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "quantity").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domainRepo.ErrReferenceMissing
	}
	if err != nil {
		return 0, err
	}
	if item.Quantity <= 0 {
		return 0, nil
	}

	err = tx.Model(&entity.Merchandise{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END", qty, qty)).Error
	if err != nil {
		return 0, err
	}
	return item.Quantity - ledger.DeductStock(item.Quantity, qty), nil
}

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Customer", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC, id ASC") })
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{}).
		Scopes(
			SearchScope(params.Search, "order_number"),
			DateRangeScope("created_at", params.StartDate, params.EndDate),
		)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.OrderType != nil {
		query = query.Where("order_type = ?", *params.OrderType)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination), withDetails).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainRepo.ErrStateChanged
	}
	return nil
}

func (r *orderRepository) Cancel(ctx context.Context, id uuid.UUID, from enum.OrderStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Order{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", enum.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainRepo.ErrStateChanged
		}

		var items []entity.OrderItem
		err := tx.Where("order_id = ? AND stock_deducted > 0", id).
			Order("merchandise_id ASC").
			Find(&items).Error
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.MerchandiseID == nil {
				continue
			}
			err := tx.Model(&entity.Merchandise{}).
				Where("id = ?", *item.MerchandiseID).
				Update("quantity", gorm.Expr("quantity + ?", item.StockDeducted)).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) CountByStatus(ctx context.Context, statuses ...enum.OrderStatus) (int64, error) {
	var n int64
	query := r.db.WithContext(ctx).Model(&entity.Order{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&n).Error
	return n, err
}

func (r *orderRepository) CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.Order{}).
		Joins("JOIN receipts ON receipts.order_id = orders.id").
		Where("orders.status = ? AND receipts.issued_at >= ? AND receipts.issued_at < ?",
			enum.OrderStatusCompleted, from.UTC(), to.UTC()).
		Count(&n).Error
	return n, err
}
