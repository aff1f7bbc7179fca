package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// MerchandiseRepository defines the interface for merchandise data operations
type MerchandiseRepository interface {
	Create(ctx context.Context, item *entity.Merchandise) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Merchandise, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Merchandise, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Merchandise, error)
	// Update writes catalog details. The quantity is written only when
	// countedFrom is set, and only while the stored quantity still equals it;
	// otherwise it returns ErrStateChanged and nothing is written.
	Update(ctx context.Context, item *entity.Merchandise, countedFrom *int) error
	// AdjustStock adds delta to the quantity. It returns ErrStateChanged when
	// the result would be negative.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MerchandiseFilterParams) ([]entity.Merchandise, int64, error)
	ListAll(ctx context.Context) ([]entity.Merchandise, error)
}

// MerchandiseFilterParams contains filtering parameters for merchandise queries
type MerchandiseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	// LowStockAt keeps only items with quantity at or below the value.
	LowStockAt *int
}
