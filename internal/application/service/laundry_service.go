package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/money"
)

// LaundryCatalogService manages the priced laundry services offered
type LaundryCatalogService struct {
	laundryRepo repository.LaundryServiceRepository
}

// NewLaundryCatalogService creates a new laundry catalog service
func NewLaundryCatalogService(laundryRepo repository.LaundryServiceRepository) *LaundryCatalogService {
	return &LaundryCatalogService{laundryRepo: laundryRepo}
}

// LaundryServiceInput creates or updates a laundry service. Nil fields are
// left unchanged on update.
type LaundryServiceInput struct {
	Name         *string
	Description  *string
	PricePerUnit *float64
	UnitType     *string
}

func (s *LaundryCatalogService) CreateService(ctx context.Context, input *LaundryServiceInput) (*entity.LaundryService, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}
	if input.PricePerUnit == nil {
		return nil, apperror.NewFieldError("price_per_unit", "Price per unit is required")
	}
	svc := &entity.LaundryService{UnitType: "item"}
	if err := applyLaundryInput(svc, input); err != nil {
		return nil, err
	}
	if err := s.laundryRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *LaundryCatalogService) GetService(ctx context.Context, id uuid.UUID) (*entity.LaundryService, error) {
	svc, err := s.laundryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Laundry service")
	}
	return svc, nil
}

// ListServices returns the catalog ordered by name
func (s *LaundryCatalogService) ListServices(ctx context.Context) ([]entity.LaundryService, error) {
	services, err := s.laundryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if services == nil {
		services = []entity.LaundryService{}
	}
	return services, nil
}

func (s *LaundryCatalogService) UpdateService(ctx context.Context, id uuid.UUID, input *LaundryServiceInput) (*entity.LaundryService, error) {
	svc, err := s.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyLaundryInput(svc, input); err != nil {
		return nil, err
	}
	if err := s.laundryRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *LaundryCatalogService) DeleteService(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := s.GetService(ctx, id); err != nil {
		return err
	}
	return s.laundryRepo.Delete(ctx, id)
}

func applyLaundryInput(svc *entity.LaundryService, input *LaundryServiceInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return apperror.NewFieldError("name", "Name cannot be empty")
		}
		svc.Name = name
	}
	if input.Description != nil {
		svc.Description = trimmed(input.Description)
	}
	if input.PricePerUnit != nil {
		if *input.PricePerUnit < 0 {
			return apperror.NewFieldError("price_per_unit", "Price cannot be negative")
		}
		svc.PricePerUnit = money.FromDecimal(*input.PricePerUnit)
	}
	if input.UnitType != nil {
		unit := strings.TrimSpace(*input.UnitType)
		if unit == "" {
			return apperror.NewFieldError("unit_type", "Unit type cannot be empty")
		}
		svc.UnitType = unit
	}
	return nil
}
