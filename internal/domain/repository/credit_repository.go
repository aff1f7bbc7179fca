package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// CreditRepository defines the interface for customer credit operations
type CreditRepository interface {
	Create(ctx context.Context, credit *entity.CustomerCredit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error)
	List(ctx context.Context, params *CreditFilterParams) ([]entity.CustomerCredit, int64, error)
	// Redeem flips a pending credit to redeemed. It returns ErrStateChanged
	// when the credit is not pending.
	Redeem(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	Pending(ctx context.Context) (*Aggregate, error)
}

// CreditFilterParams contains filtering parameters for credit queries
type CreditFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.CreditStatus
	CustomerID *uuid.UUID
}
