package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
)

// LaundryServiceRepository defines the interface for the laundry catalog
type LaundryServiceRepository interface {
	Create(ctx context.Context, service *entity.LaundryService) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LaundryService, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.LaundryService, error)
	Update(ctx context.Context, service *entity.LaundryService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.LaundryService, error)
	Count(ctx context.Context) (int64, error)
}
