package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// PaymentHistoryReader lists recent payments across both loan kinds
type PaymentHistoryReader interface {
	PaymentHistory(ctx context.Context, limit int) ([]entity.PaymentHistoryEntry, error)
}

// LoanService handles money lent to customers and borrowed by the business
type LoanService struct {
	loanRepo     repository.LoanRepository
	customerRepo repository.CustomerRepository
	creditRepo   repository.CreditRepository
	history      PaymentHistoryReader
	events       events.Publisher
	loc          *time.Location
	now          clock
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repository.LoanRepository,
	customerRepo repository.CustomerRepository,
	creditRepo repository.CreditRepository,
	history PaymentHistoryReader,
	pub events.Publisher,
	loc *time.Location,
) *LoanService {
	if loc == nil {
		loc = time.UTC
	}
	return &LoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		creditRepo:   creditRepo,
		history:      history,
		events:       pub,
		loc:          loc,
		now:          systemClock,
	}
}

// CreateCustomerLoanInput represents the create customer loan input
type CreateCustomerLoanInput struct {
	CustomerID uuid.UUID
	Amount     float64
	Reason     string
	LoanDate   *time.Time
}

// CreateCustomerLoan records money lent to a customer
func (s *LoanService) CreateCustomerLoan(ctx context.Context, p access.Principal, input *CreateCustomerLoanInput) (*entity.CustomerLoan, error) {
	amount := money.FromDecimal(input.Amount)
	if amount <= 0 {
		return nil, apperror.NewFieldError("amount", ledger.ErrNonPositiveAmount.Error())
	}
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	loan := &entity.CustomerLoan{
		CustomerID: input.CustomerID,
		Amount:     amount,
		Balance:    amount,
		Reason:     strings.TrimSpace(input.Reason),
		LoanDate:   dateOrToday(input.LoanDate, s.now()),
		Status:     enum.LoanStatusActive,
		CreatedBy:  p.UserID,
	}
	if err := s.loanRepo.CreateCustomerLoan(ctx, loan); err != nil {
		return nil, err
	}
	s.events.Publish(events.Event{Topic: events.LoanCreated, Actor: p.UserID, EntityID: loan.ID, Amount: amount, Detail: "customer"})
	loan.Customer = customer
	return loan, nil
}

// CreateBusinessLoanInput represents the create business loan input
type CreateBusinessLoanInput struct {
	LenderName   string
	Amount       float64
	InterestRate float64
	Reason       string
	LoanDate     *time.Time
	DueDate      *time.Time
}

// CreateBusinessLoan records money the business borrowed
func (s *LoanService) CreateBusinessLoan(ctx context.Context, p access.Principal, input *CreateBusinessLoanInput) (*entity.BusinessLoan, error) {
	var fieldErrs []apperror.FieldError
	lender := strings.TrimSpace(input.LenderName)
	amount := money.FromDecimal(input.Amount)
	if lender == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "lender_name", Message: "Lender name is required"})
	}
	if amount <= 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "amount", Message: ledger.ErrNonPositiveAmount.Error()})
	}
	if input.InterestRate < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "interest_rate", Message: "Interest rate cannot be negative"})
	}
	loanDate := dateOrToday(input.LoanDate, s.now())
	var due *time.Time
	if input.DueDate != nil && !input.DueDate.IsZero() {
		d := input.DueDate.UTC()
		if ledger.StartOfDay(d, time.UTC).Before(ledger.StartOfDay(loanDate, time.UTC)) {
			fieldErrs = append(fieldErrs, apperror.FieldError{Field: "due_date", Message: "Due date cannot be before the loan date"})
		}
		due = &d
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	loan := &entity.BusinessLoan{
		LenderName:   lender,
		Amount:       amount,
		Balance:      amount,
		InterestRate: input.InterestRate,
		Reason:       strings.TrimSpace(input.Reason),
		LoanDate:     loanDate,
		DueDate:      due,
		Status:       enum.LoanStatusActive,
		CreatedBy:    p.UserID,
	}
	if err := s.loanRepo.CreateBusinessLoan(ctx, loan); err != nil {
		return nil, err
	}
	s.events.Publish(events.Event{Topic: events.LoanCreated, Actor: p.UserID, EntityID: loan.ID, Amount: amount, Detail: "business"})
	return loan, nil
}

// RecordPaymentInput represents a repayment
type RecordPaymentInput struct {
	Amount      float64
	PaymentDate *time.Time
	Notes       *string
}

// PaymentResult is a stored payment with the loan state it produced
type PaymentResult struct {
	Payment  *entity.LoanPayment `json:"payment"`
	Balance  int64               `json:"-"`
	Status   enum.LoanStatus     `json:"status"`
	Overpaid int64               `json:"-"`
}

func (r PaymentResult) MarshalJSON() ([]byte, error) {
	type Alias PaymentResult
	return json.Marshal(&struct {
		Alias
		Balance  float64 `json:"balance"`
		Overpaid float64 `json:"overpaid"`
	}{
		Alias:    Alias(r),
		Balance:  money.ToDecimal(r.Balance),
		Overpaid: money.ToDecimal(r.Overpaid),
	})
}

// RecordPayment applies a repayment to an active loan
func (s *LoanService) RecordPayment(ctx context.Context, p access.Principal, kind enum.LoanKind, loanID uuid.UUID, input *RecordPaymentInput) (*PaymentResult, error) {
	if !kind.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown loan kind")
	}
	amount := money.FromDecimal(input.Amount)
	if amount <= 0 {
		return nil, apperror.NewFieldError("amount", ledger.ErrNonPositiveAmount.Error())
	}

	payment := &entity.LoanPayment{
		LoanID:      loanID,
		Amount:      amount,
		PaymentDate: dateOrToday(input.PaymentDate, s.now()),
		Notes:       trimmed(input.Notes),
		RecordedBy:  p.UserID,
	}
	bal, err := s.loanRepo.RecordPayment(ctx, kind, payment)
	if errors.Is(err, repository.ErrStateChanged) {
		return nil, apperror.NewConflictError(ledger.ErrLoanNotActive.Error())
	}
	if err != nil {
		return nil, storeError(err, "Loan")
	}

	s.events.Publish(events.Event{Topic: events.LoanPaymentMade, Actor: p.UserID, EntityID: loanID, Amount: amount, Detail: kind.String()})
	result := &PaymentResult{Payment: payment, Balance: bal.Balance, Status: bal.Status}
	if bal.Balance < 0 {
		result.Overpaid = -bal.Balance
	}
	return result, nil
}

// GetCustomerLoan returns a loan with its payments
func (s *LoanService) GetCustomerLoan(ctx context.Context, id uuid.UUID) (*entity.CustomerLoan, error) {
	loan, err := s.loanRepo.GetCustomerLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, apperror.NewNotFoundError("Loan")
	}
	return loan, nil
}

// GetBusinessLoan returns a loan with its payments
func (s *LoanService) GetBusinessLoan(ctx context.Context, id uuid.UUID) (*entity.BusinessLoan, error) {
	loan, err := s.loanRepo.GetBusinessLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, apperror.NewNotFoundError("Loan")
	}
	return loan, nil
}

func (s *LoanService) ListCustomerLoans(ctx context.Context, params *repository.LoanFilterParams) (*pagination.PaginatedResult[entity.CustomerLoan], error) {
	params.Pagination = pageParams(params.Pagination)
	loans, total, err := s.loanRepo.ListCustomerLoans(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(loans, pag), nil
}

func (s *LoanService) ListBusinessLoans(ctx context.Context, params *repository.LoanFilterParams) (*pagination.PaginatedResult[entity.BusinessLoan], error) {
	params.Pagination = pageParams(params.Pagination)
	loans, total, err := s.loanRepo.ListBusinessLoans(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(loans, pag), nil
}

// ListPayments returns one loan's payments, newest first
func (s *LoanService) ListPayments(ctx context.Context, kind enum.LoanKind, loanID uuid.UUID) ([]entity.LoanPayment, error) {
	if !kind.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown loan kind")
	}
	payments, err := s.loanRepo.ListPayments(ctx, kind, loanID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		payments = []entity.LoanPayment{}
	}
	return payments, nil
}

// PaymentHistory merges recent payments on both kinds of loan
func (s *LoanService) PaymentHistory(ctx context.Context, limit int) ([]entity.PaymentHistoryEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.history.PaymentHistory(ctx, limit)
}

// DeleteLoan removes a loan that has no payments
func (s *LoanService) DeleteLoan(ctx context.Context, p access.Principal, kind enum.LoanKind, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if !kind.IsValid() {
		return apperror.NewBadRequestError("Unknown loan kind")
	}
	if err := s.loanRepo.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, repository.ErrHasDependents) {
			return apperror.NewConflictError("Loan has recorded payments and cannot be deleted")
		}
		return storeError(err, "Loan")
	}
	s.events.Publish(events.Event{Topic: events.LoanDeleted, Actor: p.UserID, EntityID: id, Detail: kind.String()})
	return nil
}

// LoanAlert is a business loan that is overdue or coming due
type LoanAlert struct {
	ID          uuid.UUID `json:"id"`
	LenderName  string    `json:"lender_name"`
	Balance     int64     `json:"-"`
	DueDate     time.Time `json:"due_date"`
	DaysOverdue int       `json:"days_overdue,omitempty"`
	DaysLeft    int       `json:"days_left"`
}

func (a LoanAlert) MarshalJSON() ([]byte, error) {
	type Alias LoanAlert
	return json.Marshal(&struct {
		Alias
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(a),
		Balance: money.ToDecimal(a.Balance),
	})
}

// LoanAlerts groups active business loans by urgency
type LoanAlerts struct {
	Overdue []LoanAlert `json:"overdue"`
	DueSoon []LoanAlert `json:"due_soon"`
}

// Alerts classifies active business loans against today's date
func (s *LoanService) Alerts(ctx context.Context) (*LoanAlerts, error) {
	loans, err := s.loanRepo.ActiveBusinessLoansWithDueDate(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := &LoanAlerts{Overdue: []LoanAlert{}, DueSoon: []LoanAlert{}}
	for _, l := range loans {
		if l.DueDate == nil {
			continue
		}
		state := ledger.ClassifyDue(*l.DueDate, now, s.loc)
		alert := LoanAlert{
			ID:          l.ID,
			LenderName:  l.LenderName,
			Balance:     l.Balance,
			DueDate:     *l.DueDate,
			DaysOverdue: state.DaysOverdue,
			DaysLeft:    state.DaysLeft,
		}
		switch {
		case state.Overdue:
			out.Overdue = append(out.Overdue, alert)
		case state.DueSoon:
			out.DueSoon = append(out.DueSoon, alert)
		}
	}

	byDue := func(list []LoanAlert) {
		sort.SliceStable(list, func(i, j int) bool { return list[i].DueDate.Before(list[j].DueDate) })
	}
	byDue(out.Overdue)
	byDue(out.DueSoon)
	return out, nil
}

// LoanSummary totals outstanding balances and pending credits
type LoanSummary struct {
	CustomerOutstanding int64 `json:"-"`
	CustomerActive      int64 `json:"customer_active"`
	BusinessOutstanding int64 `json:"-"`
	BusinessActive      int64 `json:"business_active"`
	OverdueCount        int   `json:"overdue_count"`
	OverdueAmount       int64 `json:"-"`
	DueSoonCount        int   `json:"due_soon_count"`
	PendingCredits      int64 `json:"-"`
	PendingCreditCount  int64 `json:"pending_credit_count"`
}

func (l LoanSummary) MarshalJSON() ([]byte, error) {
	type Alias LoanSummary
	return json.Marshal(&struct {
		Alias
		CustomerOutstanding float64 `json:"customer_outstanding"`
		BusinessOutstanding float64 `json:"business_outstanding"`
		OverdueAmount       float64 `json:"overdue_amount"`
		PendingCredits      float64 `json:"pending_credits"`
	}{
		Alias:               Alias(l),
		CustomerOutstanding: money.ToDecimal(l.CustomerOutstanding),
		BusinessOutstanding: money.ToDecimal(l.BusinessOutstanding),
		OverdueAmount:       money.ToDecimal(l.OverdueAmount),
		PendingCredits:      money.ToDecimal(l.PendingCredits),
	})
}

// Summary totals what is owed in both directions
func (s *LoanService) Summary(ctx context.Context) (*LoanSummary, error) {
	customer, err := s.loanRepo.Outstanding(ctx, enum.LoanKindCustomer)
	if err != nil {
		return nil, err
	}
	business, err := s.loanRepo.Outstanding(ctx, enum.LoanKindBusiness)
	if err != nil {
		return nil, err
	}
	credits, err := s.creditRepo.Pending(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.Alerts(ctx)
	if err != nil {
		return nil, err
	}

	out := &LoanSummary{
		CustomerOutstanding: customer.Total,
		CustomerActive:      customer.Count,
		BusinessOutstanding: business.Total,
		BusinessActive:      business.Count,
		OverdueCount:        len(alerts.Overdue),
		DueSoonCount:        len(alerts.DueSoon),
		PendingCredits:      credits.Total,
		PendingCreditCount:  credits.Count,
	}
	for _, a := range alerts.Overdue {
		out.OverdueAmount += a.Balance
	}
	return out, nil
}
