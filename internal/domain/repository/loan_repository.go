package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// LoanRepository covers customer and business loans and their payments
type LoanRepository interface {
	CreateCustomerLoan(ctx context.Context, loan *entity.CustomerLoan) error
	CreateBusinessLoan(ctx context.Context, loan *entity.BusinessLoan) error
	GetCustomerLoan(ctx context.Context, id uuid.UUID) (*entity.CustomerLoan, error)
	GetBusinessLoan(ctx context.Context, id uuid.UUID) (*entity.BusinessLoan, error)
	ListCustomerLoans(ctx context.Context, params *LoanFilterParams) ([]entity.CustomerLoan, int64, error)
	ListBusinessLoans(ctx context.Context, params *LoanFilterParams) ([]entity.BusinessLoan, int64, error)
	// RecordPayment inserts the payment and subtracts it from the loan balance
	// with a single guarded update, flipping the status to paid when the
	// balance reaches zero. It returns ErrStateChanged when the loan is not
	// active.
	RecordPayment(ctx context.Context, kind enum.LoanKind, payment *entity.LoanPayment) (*LoanBalance, error)
	ListPayments(ctx context.Context, kind enum.LoanKind, loanID uuid.UUID) ([]entity.LoanPayment, error)
	// Delete removes a loan. It returns ErrHasDependents while payments exist.
	Delete(ctx context.Context, kind enum.LoanKind, id uuid.UUID) error
	ActiveBusinessLoansWithDueDate(ctx context.Context) ([]entity.BusinessLoan, error)
	Outstanding(ctx context.Context, kind enum.LoanKind) (*Aggregate, error)
}

// LoanFilterParams contains filtering parameters for loan queries
type LoanFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.LoanStatus
	CustomerID *uuid.UUID
	Search     string
}

// LoanBalance is the loan state read back after a payment.
type LoanBalance struct {
	Balance int64
	Status  enum.LoanStatus
}

// Aggregate is a sum of cents with the number of rows it covers.
type Aggregate struct {
	Total int64
	Count int64
}
