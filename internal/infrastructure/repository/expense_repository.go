package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"gorm.io/gorm"
)

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).
		Model(expense).
		Select("description", "category", "amount", "expense_date", "notes").
		Updates(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(
			SearchScope(params.Search, "description", "notes"),
			DateRangeScope("expense_date", params.StartDate, params.EndDate),
		)
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("expense_date DESC, created_at DESC").
		Find(&expenses).Error
	return expenses, total, err
}

type cashToBankRepository struct {
	db *gorm.DB
}

// NewCashToBankRepository creates a new cash-to-bank repository
func NewCashToBankRepository(db *gorm.DB) domainRepo.CashToBankRepository {
	return &cashToBankRepository{db: db}
}

func (r *cashToBankRepository) Create(ctx context.Context, transfer *entity.CashToBank) error {
	return r.db.WithContext(ctx).Create(transfer).Error
}

func (r *cashToBankRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashToBank, error) {
	var transfer entity.CashToBank
	err := r.db.WithContext(ctx).First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *cashToBankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.CashToBank{}, "id = ?", id).Error
}

func (r *cashToBankRepository) List(ctx context.Context, params *domainRepo.LedgerFilterParams) ([]entity.CashToBank, int64, error) {
	var transfers []entity.CashToBank
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.CashToBank{}).
		Scopes(
			SearchScope(params.Search, "bank_name", "reference_number", "notes"),
			DateRangeScope("transfer_date", params.StartDate, params.EndDate),
		)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Order("transfer_date DESC, created_at DESC").
		Find(&transfers).Error
	return transfers, total, err
}
