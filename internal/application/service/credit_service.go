package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// CreditService tracks money owed back to customers
type CreditService struct {
	creditRepo   repository.CreditRepository
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	events       events.Publisher
	now          clock
}

// NewCreditService creates a new credit service
func NewCreditService(
	creditRepo repository.CreditRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	pub events.Publisher,
) *CreditService {
	return &CreditService{
		creditRepo:   creditRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		events:       pub,
		now:          systemClock,
	}
}

// CreateCreditInput represents the create credit input
type CreateCreditInput struct {
	CustomerID uuid.UUID
	OrderID    *uuid.UUID
	Amount     float64
	Reason     string
}

// CreateCredit records a pending credit for a customer
func (s *CreditService) CreateCredit(ctx context.Context, p access.Principal, input *CreateCreditInput) (*entity.CustomerCredit, error) {
	amount := money.FromDecimal(input.Amount)
	if amount <= 0 {
		return nil, apperror.NewFieldError("amount", "Amount must be greater than zero")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if input.OrderID != nil {
		order, err := s.orderRepo.GetByID(ctx, *input.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, apperror.NewNotFoundError("Order")
		}
	}

	credit := &entity.CustomerCredit{
		CustomerID: input.CustomerID,
		OrderID:    input.OrderID,
		Amount:     amount,
		Reason:     strings.TrimSpace(input.Reason),
		Status:     enum.CreditStatusPending,
		CreatedBy:  p.UserID,
	}
	if err := s.creditRepo.Create(ctx, credit); err != nil {
		return nil, storeError(err, "Credit")
	}
	s.events.Publish(events.Event{Topic: events.CreditCreated, Actor: p.UserID, EntityID: credit.ID, Amount: amount})
	credit.Customer = customer
	return credit, nil
}

// GetCredit returns a credit by ID
func (s *CreditService) GetCredit(ctx context.Context, id uuid.UUID) (*entity.CustomerCredit, error) {
	credit, err := s.creditRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, apperror.NewNotFoundError("Credit")
	}
	return credit, nil
}

// ListCredits returns credits, newest first
func (s *CreditService) ListCredits(ctx context.Context, params *repository.CreditFilterParams) (*pagination.PaginatedResult[entity.CustomerCredit], error) {
	params.Pagination = pageParams(params.Pagination)
	credits, total, err := s.creditRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(credits, pag), nil
}

// RedeemCredit marks a pending credit as handed back
func (s *CreditService) RedeemCredit(ctx context.Context, p access.Principal, id uuid.UUID) (*entity.CustomerCredit, error) {
	if err := s.creditRepo.Redeem(ctx, id, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return nil, apperror.NewConflictError("Credit has already been redeemed")
		}
		return nil, storeError(err, "Credit")
	}
	credit, err := s.GetCredit(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish(events.Event{Topic: events.CreditRedeemed, Actor: p.UserID, EntityID: id, Amount: credit.Amount})
	return credit, nil
}

// DeleteCredit removes a credit
func (s *CreditService) DeleteCredit(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := s.GetCredit(ctx, id); err != nil {
		return err
	}
	if err := s.creditRepo.Delete(ctx, id); err != nil {
		return storeError(err, "Credit")
	}
	s.events.Publish(events.Event{Topic: events.CreditDeleted, Actor: p.UserID, EntityID: id})
	return nil
}
