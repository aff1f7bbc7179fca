package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	// Issue inserts the receipt and marks its order completed in one
	// transaction. It returns ErrStateChanged when the order is already
	// completed or cancelled.
	Issue(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error)
	List(ctx context.Context, params *ReceiptFilterParams) ([]entity.Receipt, int64, error)
	SumAmountPaid(ctx context.Context) (int64, error)
}

// ReceiptFilterParams contains filtering parameters for receipt queries
type ReceiptFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}
