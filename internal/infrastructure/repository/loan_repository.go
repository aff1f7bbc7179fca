package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type loanTables struct {
	loans    string
	payments string
}

func tablesFor(kind enum.LoanKind) (loanTables, error) {
	switch kind {
	case enum.LoanKindCustomer:
		return loanTables{loans: entity.CustomerLoan{}.TableName(), payments: entity.CustomerLoanPayment{}.TableName()}, nil
	case enum.LoanKindBusiness:
		return loanTables{loans: entity.BusinessLoan{}.TableName(), payments: entity.BusinessLoanPayment{}.TableName()}, nil
	}
	return loanTables{}, fmt.Errorf("unknown loan kind %q", kind)
}

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a repository for both loan ledgers
func NewLoanRepository(db *gorm.DB) domainRepo.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateCustomerLoan(ctx context.Context, loan *entity.CustomerLoan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(loan).Error
}

func (r *loanRepository) CreateBusinessLoan(ctx context.Context, loan *entity.BusinessLoan) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(loan).Error
}

func paymentsNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("payment_date DESC, created_at DESC")
}

func (r *loanRepository) GetCustomerLoan(ctx context.Context, id uuid.UUID) (*entity.CustomerLoan, error) {
	var loan entity.CustomerLoan
	err := r.db.WithContext(ctx).
		Preload("Customer", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Payments", paymentsNewestFirst).
		First(&loan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &loan, err
}

func (r *loanRepository) GetBusinessLoan(ctx context.Context, id uuid.UUID) (*entity.BusinessLoan, error) {
	var loan entity.BusinessLoan
	err := r.db.WithContext(ctx).
		Preload("Payments", paymentsNewestFirst).
		First(&loan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &loan, err
}

func (r *loanRepository) ListCustomerLoans(ctx context.Context, params *domainRepo.LoanFilterParams) ([]entity.CustomerLoan, int64, error) {
	var loans []entity.CustomerLoan
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CustomerLoan{}).
		Scopes(SearchScope(params.Search, "reason"))
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
		Order("loan_date DESC, created_at DESC").
		Find(&loans).Error
	return loans, total, err
}

func (r *loanRepository) ListBusinessLoans(ctx context.Context, params *domainRepo.LoanFilterParams) ([]entity.BusinessLoan, int64, error) {
	var loans []entity.BusinessLoan
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BusinessLoan{}).
		Scopes(SearchScope(params.Search, "lender_name", "reason"))
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("loan_date DESC, created_at DESC").
		Find(&loans).Error
	return loans, total, err
}

func (r *loanRepository) RecordPayment(ctx context.Context, kind enum.LoanKind, payment *entity.LoanPayment) (*domainRepo.LoanBalance, error) {
	tables, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}

	var out domainRepo.LoanBalance
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SET expressions read the pre-update balance, so status is derived
		// from the same value the subtraction used.
		res := tx.Table(tables.loans).
			Where("id = ? AND status = ?", payment.LoanID, enum.LoanStatusActive).
			Updates(map[string]interface{}{
				"balance": gorm.Expr("balance - ?", payment.Amount),
				"status": gorm.Expr("CASE WHEN balance - ? <= 0 THEN ? ELSE ? END",
					payment.Amount, enum.LoanStatusPaid, enum.LoanStatusActive),
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return missingOrStale(tx, tables.loans, payment.LoanID)
		}

		if err := insertPayment(tx, kind, payment); err != nil {
			return err
		}

		return tx.Table(tables.loans).
			Select("balance", "status").
			Where("id = ?", payment.LoanID).
			Take(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func insertPayment(tx *gorm.DB, kind enum.LoanKind, payment *entity.LoanPayment) error {
	switch kind {
	case enum.LoanKindCustomer:
		row := entity.CustomerLoanPayment{LoanPayment: *payment}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		*payment = row.LoanPayment
	case enum.LoanKindBusiness:
		row := entity.BusinessLoanPayment{LoanPayment: *payment}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		*payment = row.LoanPayment
	}
	return nil
}

func missingOrStale(tx *gorm.DB, table string, id uuid.UUID) error {
	var n int64
	if err := tx.Table(table).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domainRepo.ErrReferenceMissing
	}
	return domainRepo.ErrStateChanged
}

func (r *loanRepository) ListPayments(ctx context.Context, kind enum.LoanKind, loanID uuid.UUID) ([]entity.LoanPayment, error) {
	tables, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	var payments []entity.LoanPayment
	err = r.db.WithContext(ctx).Table(tables.payments).
		Where("loan_id = ?", loanID).
		Scopes(paymentsNewestFirst).
		Find(&payments).Error
	return payments, err
}

func (r *loanRepository) Delete(ctx context.Context, kind enum.LoanKind, id uuid.UUID) error {
	tables, err := tablesFor(kind)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the loan so a concurrent payment cannot slip in between the
		// check and the delete.
		var ids []uuid.UUID
		err := tx.Table(tables.loans).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return domainRepo.ErrReferenceMissing
		}

		var payments int64
		if err := tx.Table(tables.payments).Where("loan_id = ?", id).Count(&payments).Error; err != nil {
			return err
		}
		if payments > 0 {
			return domainRepo.ErrHasDependents
		}

		return tx.Exec("DELETE FROM "+tables.loans+" WHERE id = ?", id).Error
	})
}

func (r *loanRepository) ActiveBusinessLoansWithDueDate(ctx context.Context) ([]entity.BusinessLoan, error) {
	var loans []entity.BusinessLoan
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL", enum.LoanStatusActive).
		Order("due_date ASC").
		Find(&loans).Error
	return loans, err
}

func (r *loanRepository) Outstanding(ctx context.Context, kind enum.LoanKind) (*domainRepo.Aggregate, error) {
	tables, err := tablesFor(kind)
	if err != nil {
		return nil, err
	}
	var agg domainRepo.Aggregate
	err = r.db.WithContext(ctx).Table(tables.loans).
		Select("COALESCE(SUM(balance), 0) AS total, COUNT(*) AS count").
		Where("status = ?", enum.LoanStatusActive).
		Scan(&agg).Error
	return &agg, err
}
