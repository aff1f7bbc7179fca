package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// ExpenseService handles money spent by the business and cash banked
type ExpenseService struct {
	expenseRepo  repository.ExpenseRepository
	transferRepo repository.CashToBankRepository
	events       events.Publisher
	now          clock
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, transferRepo repository.CashToBankRepository, pub events.Publisher) *ExpenseService {
	return &ExpenseService{
		expenseRepo:  expenseRepo,
		transferRepo: transferRepo,
		events:       pub,
		now:          systemClock,
	}
}

// ExpenseInput represents the create and update expense input
type ExpenseInput struct {
	Description string
	Category    string
	Amount      float64
	ExpenseDate *time.Time
	Notes       *string
}

func (in *ExpenseInput) validate() error {
	var fieldErrs []apperror.FieldError
	if strings.TrimSpace(in.Description) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "description", Message: "Description is required"})
	}
	if strings.TrimSpace(in.Category) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if money.FromDecimal(in.Amount) <= 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
	}
	if len(fieldErrs) > 0 {
		return apperror.NewValidationError(fieldErrs)
	}
	return nil
}

// CreateExpense records an expense
func (s *ExpenseService) CreateExpense(ctx context.Context, p access.Principal, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	expense := &entity.Expense{
		Description: strings.TrimSpace(input.Description),
		Category:    strings.ToLower(strings.TrimSpace(input.Category)),
		Amount:      money.FromDecimal(input.Amount),
		ExpenseDate: dateOrToday(input.ExpenseDate, s.now()),
		Notes:       trimmed(input.Notes),
		CreatedBy:   p.UserID,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	s.events.Publish(events.Event{Topic: events.ExpenseRecorded, Actor: p.UserID, EntityID: expense.ID, Amount: expense.Amount, Detail: expense.Category})
	return expense, nil
}

// GetExpense returns an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// UpdateExpense replaces an expense's editable fields
func (s *ExpenseService) UpdateExpense(ctx context.Context, id uuid.UUID, input *ExpenseInput) (*entity.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	expense, err := s.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	expense.Description = strings.TrimSpace(input.Description)
	expense.Category = strings.ToLower(strings.TrimSpace(input.Category))
	expense.Amount = money.FromDecimal(input.Amount)
	if input.ExpenseDate != nil && !input.ExpenseDate.IsZero() {
		expense.ExpenseDate = input.ExpenseDate.UTC()
	}
	expense.Notes = trimmed(input.Notes)

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := s.GetExpense(ctx, id); err != nil {
		return err
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ListExpenses returns expenses, newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	params.Pagination = pageParams(params.Pagination)
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// TransferInput represents a cash-to-bank deposit
type TransferInput struct {
	Amount          float64
	BankName        string
	AccountNumber   *string
	ReferenceNumber *string
	TransferDate    *time.Time
	Notes           *string
}

// RecordTransfer records till cash deposited at a bank
func (s *ExpenseService) RecordTransfer(ctx context.Context, p access.Principal, input *TransferInput) (*entity.CashToBank, error) {
	var fieldErrs []apperror.FieldError
	if strings.TrimSpace(input.BankName) == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "bank_name", Message: "Bank name is required"})
	}
	amount := money.FromDecimal(input.Amount)
	if amount <= 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	transfer := &entity.CashToBank{
		Amount:          amount,
		BankName:        strings.TrimSpace(input.BankName),
		AccountNumber:   trimmed(input.AccountNumber),
		ReferenceNumber: trimmed(input.ReferenceNumber),
		TransferDate:    dateOrToday(input.TransferDate, s.now()),
		Notes:           trimmed(input.Notes),
		CreatedBy:       p.UserID,
	}
	if err := s.transferRepo.Create(ctx, transfer); err != nil {
		return nil, err
	}
	s.events.Publish(events.Event{Topic: events.CashBanked, Actor: p.UserID, EntityID: transfer.ID, Amount: amount, Detail: transfer.BankName})
	return transfer, nil
}

// GetTransfer returns a transfer by ID
func (s *ExpenseService) GetTransfer(ctx context.Context, id uuid.UUID) (*entity.CashToBank, error) {
	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, apperror.NewNotFoundError("Transfer")
	}
	return transfer, nil
}

// DeleteTransfer removes a transfer record
func (s *ExpenseService) DeleteTransfer(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := s.GetTransfer(ctx, id); err != nil {
		return err
	}
	return s.transferRepo.Delete(ctx, id)
}

// ListTransfers returns transfers, newest first
func (s *ExpenseService) ListTransfers(ctx context.Context, params *repository.LedgerFilterParams) (*pagination.PaginatedResult[entity.CashToBank], error) {
	params.Pagination = pageParams(params.Pagination)
	transfers, total, err := s.transferRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transfers, pag), nil
}
