package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// ExpenseRepository defines the interface for expense data operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.Expense, int64, error)
}

// CashToBankRepository defines the interface for bank transfer records
type CashToBankRepository interface {
	Create(ctx context.Context, transfer *entity.CashToBank) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashToBank, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *LedgerFilterParams) ([]entity.CashToBank, int64, error)
}

// LedgerFilterParams filters flat ledger rows by date and text
type LedgerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	StartDate  *time.Time
	EndDate    *time.Time
}
