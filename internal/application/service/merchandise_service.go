package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// MerchandiseService manages retail stock
type MerchandiseService struct {
	merchRepo         repository.MerchandiseRepository
	events            events.Publisher
	lowStockThreshold int
}

// NewMerchandiseService creates a new merchandise service
func NewMerchandiseService(merchRepo repository.MerchandiseRepository, pub events.Publisher, lowStockThreshold int) *MerchandiseService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = ledger.DefaultLowStockThreshold
	}
	return &MerchandiseService{merchRepo: merchRepo, events: pub, lowStockThreshold: lowStockThreshold}
}

// CreateMerchandiseInput represents the create merchandise input
type CreateMerchandiseInput struct {
	Name        string
	Description *string
	Category    string
	SKU         *string
	Quantity    int
	UnitPrice   float64
	CostPrice   *float64
}

// CreateMerchandise adds an item to the catalog
func (s *MerchandiseService) CreateMerchandise(ctx context.Context, input *CreateMerchandiseInput) (*entity.Merchandise, error) {
	var fieldErrs []apperror.FieldError
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if category == "" {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if input.Quantity < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "quantity", Message: "Quantity cannot be negative"})
	}
	if input.UnitPrice < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "unit_price", Message: "Unit price cannot be negative"})
	}
	if input.CostPrice != nil && *input.CostPrice < 0 {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "cost_price", Message: "Cost price cannot be negative"})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	item := &entity.Merchandise{
		Name:        name,
		Description: trimmed(input.Description),
		Category:    category,
		SKU:         trimmed(input.SKU),
		Quantity:    input.Quantity,
		UnitPrice:   money.FromDecimal(input.UnitPrice),
	}
	if input.CostPrice != nil {
		cost := money.FromDecimal(*input.CostPrice)
		item.CostPrice = &cost
	}

	if err := s.ensureSKUFree(ctx, item.SKU, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.merchRepo.Create(ctx, item); err != nil {
		return nil, storeError(err, "Merchandise SKU")
	}
	return item, nil
}

func (s *MerchandiseService) ensureSKUFree(ctx context.Context, sku *string, self uuid.UUID) error {
	if sku == nil {
		return nil
	}
	existing, err := s.merchRepo.GetBySKU(ctx, *sku)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return apperror.NewConflictError("SKU " + *sku + " is already in use")
	}
	return nil
}

// GetMerchandise retrieves an item by ID
func (s *MerchandiseService) GetMerchandise(ctx context.Context, id uuid.UUID) (*entity.Merchandise, error) {
	item, err := s.merchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Merchandise")
	}
	return item, nil
}

// ListMerchandiseInput represents the list filters
type ListMerchandiseInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	LowStock   bool
}

// ListMerchandise lists items ordered by name
func (s *MerchandiseService) ListMerchandise(ctx context.Context, input *ListMerchandiseInput) (*pagination.PaginatedResult[entity.Merchandise], error) {
	input.Pagination = pageParams(input.Pagination)
	params := &repository.MerchandiseFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Category:   input.Category,
	}
	if input.LowStock {
		params.LowStockAt = &s.lowStockThreshold
	}

	items, total, err := s.merchRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateMerchandiseInput represents the update merchandise input
type UpdateMerchandiseInput struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	Category    *string
	SKU         *string
	Quantity    *int
	UnitPrice   *float64
	CostPrice   *float64
}

// UpdateMerchandise updates catalog details and, when given, the counted
// quantity. A count is rejected if stock moved since it was read.
func (s *MerchandiseService) UpdateMerchandise(ctx context.Context, input *UpdateMerchandiseInput) (*entity.Merchandise, error) {
	item, err := s.GetMerchandise(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Name cannot be empty")
		}
		item.Name = name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, apperror.NewFieldError("category", "Category cannot be empty")
		}
		item.Category = category
	}
	if input.Description != nil {
		item.Description = trimmed(input.Description)
	}
	if input.SKU != nil {
		item.SKU = trimmed(input.SKU)
		if err := s.ensureSKUFree(ctx, item.SKU, item.ID); err != nil {
			return nil, err
		}
	}
	var countedFrom *int
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperror.NewFieldError("quantity", "Quantity cannot be negative")
		}
		read := item.Quantity
		countedFrom = &read
		item.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewFieldError("unit_price", "Unit price cannot be negative")
		}
		item.UnitPrice = money.FromDecimal(*input.UnitPrice)
	}
	if input.CostPrice != nil {
		if *input.CostPrice < 0 {
			return nil, apperror.NewFieldError("cost_price", "Cost price cannot be negative")
		}
		cost := money.FromDecimal(*input.CostPrice)
		item.CostPrice = &cost
	}

	if err := s.merchRepo.Update(ctx, item, countedFrom); err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return nil, apperror.NewConflictError("Stock changed while it was being counted; reload and try again")
		}
		return nil, storeError(err, "Merchandise SKU")
	}
	if countedFrom == nil {
		// quantity was not written; report the stored value
		return s.GetMerchandise(ctx, item.ID)
	}
	return item, nil
}

// AdjustStock adds delta units, for deliveries (positive) or write-offs
// (negative). Stock never goes below zero.
func (s *MerchandiseService) AdjustStock(ctx context.Context, p access.Principal, id uuid.UUID, delta int) (*entity.Merchandise, error) {
	if delta == 0 {
		return nil, apperror.NewFieldError("delta", "Adjustment cannot be zero")
	}
	if _, err := s.GetMerchandise(ctx, id); err != nil {
		return nil, err
	}
	if err := s.merchRepo.AdjustStock(ctx, id, delta); err != nil {
		if errors.Is(err, repository.ErrStateChanged) {
			return nil, apperror.NewUnprocessableError("Adjustment would take stock below zero")
		}
		return nil, err
	}
	s.events.Publish(events.Event{Topic: events.StockAdjusted, Actor: p.UserID, EntityID: id, Amount: int64(delta)})
	return s.GetMerchandise(ctx, id)
}

// DeleteMerchandise removes an item from the catalog
func (s *MerchandiseService) DeleteMerchandise(ctx context.Context, p access.Principal, id uuid.UUID) error {
	if err := access.RequireAdmin(p); err != nil {
		return err
	}
	if _, err := s.GetMerchandise(ctx, id); err != nil {
		return err
	}
	return s.merchRepo.Delete(ctx, id)
}

// StockAlert is an item at or below the low stock threshold
type StockAlert struct {
	ID       uuid.UUID         `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	SKU      *string           `json:"sku,omitempty"`
	Quantity int               `json:"quantity"`
	Level    ledger.StockLevel `json:"level"`
}

// StockOverview summarises stock on hand
type StockOverview struct {
	TotalValue int64        `json:"-"` // Stored in cents
	TotalUnits int          `json:"total_units"`
	ItemCount  int          `json:"item_count"`
	Threshold  int          `json:"low_stock_threshold"`
	LowStock   []StockAlert `json:"low_stock"`
	OutOfStock []StockAlert `json:"out_of_stock"`
}

func (o StockOverview) MarshalJSON() ([]byte, error) {
	type Alias StockOverview
	return json.Marshal(&struct {
		Alias
		TotalValue float64 `json:"total_value"`
	}{
		Alias:      Alias(o),
		TotalValue: money.ToDecimal(o.TotalValue),
	})
}

// StockOverview values every item at its unit price and lists items needing
// a reorder.
func (s *MerchandiseService) StockOverview(ctx context.Context) (*StockOverview, error) {
	items, err := s.merchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := &StockOverview{
		ItemCount:  len(items),
		Threshold:  s.lowStockThreshold,
		LowStock:   []StockAlert{},
		OutOfStock: []StockAlert{},
	}
	for i := range items {
		item := &items[i]
		out.TotalValue += item.StockValue()
		out.TotalUnits += item.Quantity

		level := ledger.ClassifyStock(item.Quantity, s.lowStockThreshold)
		alert := StockAlert{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Level:    level,
		}
		switch level {
		case ledger.StockLow:
			out.LowStock = append(out.LowStock, alert)
		case ledger.StockOutOfStock:
			out.OutOfStock = append(out.OutOfStock, alert)
		}
	}
	return out, nil
}
