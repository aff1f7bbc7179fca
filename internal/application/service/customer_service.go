package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Email   *string
	Address *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		Name:    name,
		Phone:   trimmed(input.Phone),
		Email:   email,
		Address: trimmed(input.Address),
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers ordered by name
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	params = pageParams(params)
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Name cannot be empty")
		}
		customer.Name = name
	}
	if input.Email != nil {
		email, err := normalizeEmail(input.Email)
		if err != nil {
			return nil, err
		}
		customer.Email = email
	}
	if input.Phone != nil {
		customer.Phone = trimmed(input.Phone)
	}
	if input.Address != nil {
		customer.Address = trimmed(input.Address)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Orders and loans keep their link.
func (s *CustomerService) DeleteCustomer(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}
	return s.customerRepo.Delete(ctx, id)
}

// trimmed returns nil for blank strings.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeEmail(s *string) (*string, error) {
	v := trimmed(s)
	if v == nil {
		return nil, nil
	}
	addr, err := mail.ParseAddress(*v)
	if err != nil || addr.Address != *v {
		return nil, apperror.NewFieldError("email", "Email address is not valid")
	}
	lower := strings.ToLower(addr.Address)
	return &lower, nil
}
