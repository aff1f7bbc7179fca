package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	// CreateWithItems inserts the order with its items and deducts stock for
	// merchandise lines, floored at zero, in a single transaction. The amount
	// actually deducted is written to each item's StockDeducted.
	CreateWithItems(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	// UpdateStatus moves the order from one status to another. It returns
	// ErrStateChanged when the order is no longer in the from status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to enum.OrderStatus) error
	// Cancel marks the order cancelled and returns deducted stock in one
	// transaction. It returns ErrStateChanged when the order is no longer in
	// the from status.
	Cancel(ctx context.Context, id uuid.UUID, from enum.OrderStatus) error
	CountByStatus(ctx context.Context, statuses ...enum.OrderStatus) (int64, error)
	CountCompletedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.OrderStatus
	OrderType  *enum.OrderType
	CustomerID *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
