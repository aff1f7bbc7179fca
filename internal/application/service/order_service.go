package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/notify"
	"github.com/sangkips/laundromart-api/pkg/pagination"
	"go.uber.org/zap"
)

// NumberSource issues human-facing order and receipt numbers
type NumberSource interface {
	OrderNumber() string
	ReceiptNumber() string
}

// StoreInfo is printed on receipts and used in customer emails
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// OrderService handles order-related operations
type OrderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	merchRepo    repository.MerchandiseRepository
	laundryRepo  repository.LaundryServiceRepository
	pricing      ledger.PricingPolicy
	numbers      NumberSource
	notifier     notify.PickupNotifier
	events       events.Publisher
	store        StoreInfo
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	merchRepo repository.MerchandiseRepository,
	laundryRepo repository.LaundryServiceRepository,
	pricing ledger.PricingPolicy,
	numbers NumberSource,
	notifier notify.PickupNotifier,
	pub events.Publisher,
	store StoreInfo,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		merchRepo:    merchRepo,
		laundryRepo:  laundryRepo,
		pricing:      pricing,
		numbers:      numbers,
		notifier:     notifier,
		events:       pub,
		store:        store,
	}
}

// OrderItemInput represents an item in an order
type OrderItemInput struct {
	ItemType         enum.ItemType
	MerchandiseID    *uuid.UUID
	LaundryServiceID *uuid.UUID
	Description      string
	Quantity         int
	// UnitPrice defaults to the catalog price when nil.
	UnitPrice *float64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	CustomerID *uuid.UUID
	OrderType  enum.OrderType
	Notes      *string
	Items      []OrderItemInput
}

// CreateOrder prices the items, deducts stock and stores the order
func (s *OrderService) CreateOrder(ctx context.Context, p access.Principal, input *CreateOrderInput) (*entity.Order, error) {
	if !input.OrderType.IsValid() {
		return nil, apperror.NewFieldError("order_type", "Order type must be merchandise, laundry or mixed")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", ledger.ErrEmptyOrder.Error())
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	merch, laundry, err := s.loadCatalog(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	items := make([]entity.OrderItem, 0, len(input.Items))
	lines := make([]ledger.Line, 0, len(input.Items))
	var fieldErrs []apperror.FieldError
	for i, in := range input.Items {
		item, ferr := s.buildItem(input.OrderType, in, merch, laundry)
		if ferr != nil {
			ferr.Field = fmt.Sprintf("items[%d].%s", i, ferr.Field)
			fieldErrs = append(fieldErrs, *ferr)
			continue
		}
		items = append(items, item)
		lines = append(lines, ledger.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	if len(fieldErrs) > 0 {
		return nil, apperror.NewValidationError(fieldErrs)
	}

	totals, err := s.pricing.Price(lines)
	if err != nil {
		return nil, apperror.NewFieldError("items", err.Error())
	}

	order := &entity.Order{
		OrderNumber: s.numbers.OrderNumber(),
		CustomerID:  input.CustomerID,
		OrderType:   input.OrderType,
		Status:      enum.OrderStatusPending,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		Total:       totals.Total,
		TaxPolicy:   s.pricing.Name(),
		Notes:       trimmed(input.Notes),
		CreatedBy:   p.UserID,
		Items:       items,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order); err != nil {
		return nil, storeError(err, "Merchandise")
	}

	s.events.Publish(events.Event{
		Topic:    events.OrderCreated,
		Actor:    p.UserID,
		EntityID: order.ID,
		Amount:   order.Total,
		Detail:   order.OrderNumber,
	})
	return s.GetOrder(ctx, order.ID)
}

func (s *OrderService) loadCatalog(ctx context.Context, in []OrderItemInput) (map[uuid.UUID]*entity.Merchandise, map[uuid.UUID]*entity.LaundryService, error) {
	var merchIDs, laundryIDs []uuid.UUID
	for _, item := range in {
		if item.MerchandiseID != nil {
			merchIDs = append(merchIDs, *item.MerchandiseID)
		}
		if item.LaundryServiceID != nil {
			laundryIDs = append(laundryIDs, *item.LaundryServiceID)
		}
	}

	merch := make(map[uuid.UUID]*entity.Merchandise)
	if len(merchIDs) > 0 {
		found, err := s.merchRepo.GetByIDs(ctx, merchIDs)
		if err != nil {
			return nil, nil, err
		}
		for i := range found {
			merch[found[i].ID] = &found[i]
		}
	}

	laundry := make(map[uuid.UUID]*entity.LaundryService)
	if len(laundryIDs) > 0 {
		found, err := s.laundryRepo.GetByIDs(ctx, laundryIDs)
		if err != nil {
			return nil, nil, err
		}
		for i := range found {
			laundry[found[i].ID] = &found[i]
		}
	}
	return merch, laundry, nil
}

func (s *OrderService) buildItem(
	orderType enum.OrderType,
	in OrderItemInput,
	merch map[uuid.UUID]*entity.Merchandise,
	laundry map[uuid.UUID]*entity.LaundryService,
) (entity.OrderItem, *apperror.FieldError) {
	fail := func(field, msg string) (entity.OrderItem, *apperror.FieldError) {
		return entity.OrderItem{}, &apperror.FieldError{Field: field, Message: msg}
	}

	if !in.ItemType.IsValid() {
		return fail("item_type", "Item type must be merchandise or laundry")
	}
	if !orderType.Allows(in.ItemType) {
		return fail("item_type", fmt.Sprintf("A %s order cannot contain %s items", orderType, in.ItemType))
	}
	if in.Quantity < 1 {
		return fail("quantity", ledger.ErrInvalidQuantity.Error())
	}

	item := entity.OrderItem{
		ItemType:    in.ItemType,
		Quantity:    in.Quantity,
		Description: strings.TrimSpace(in.Description),
	}
	var catalogPrice int64
	var catalogName string

	switch in.ItemType {
	case enum.ItemTypeMerchandise:
		if in.MerchandiseID == nil || in.LaundryServiceID != nil {
			return fail("merchandise_id", "Merchandise items need a merchandise_id and no laundry_service_id")
		}
		m, ok := merch[*in.MerchandiseID]
		if !ok {
			return fail("merchandise_id", "Merchandise not found")
		}
		item.MerchandiseID = in.MerchandiseID
		catalogPrice, catalogName = m.UnitPrice, m.Name
	case enum.ItemTypeLaundry:
		if in.LaundryServiceID == nil || in.MerchandiseID != nil {
			return fail("laundry_service_id", "Laundry items need a laundry_service_id and no merchandise_id")
		}
		l, ok := laundry[*in.LaundryServiceID]
		if !ok {
			return fail("laundry_service_id", "Laundry service not found")
		}
		item.LaundryServiceID = in.LaundryServiceID
		catalogPrice, catalogName = l.PricePerUnit, l.Name
	}

	item.UnitPrice = catalogPrice
	if in.UnitPrice != nil {
		if *in.UnitPrice < 0 {
			return fail("unit_price", ledger.ErrNegativePrice.Error())
		}
		item.UnitPrice = money.FromDecimal(*in.UnitPrice)
	}
	if item.Description == "" {
		item.Description = catalogName
	}
	item.Total = ledger.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}.Total()
	return item, nil
}

// GetOrder retrieves an order with its items and customer
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders newest first
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	params.Pagination = pageParams(params.Pagination)
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// NotificationResult reports what happened to the pickup email
type NotificationResult struct {
	Attempted bool   `json:"attempted"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

// StatusUpdateResult is the order after a status change
type StatusUpdateResult struct {
	Order        *entity.Order       `json:"order"`
	Notification *NotificationResult `json:"notification,omitempty"`
}

// UpdateStatus moves an order along the status table. Moving to ready emails
// the customer; a failed email is reported but does not undo the change.
func (s *OrderService) UpdateStatus(ctx context.Context, p access.Principal, id uuid.UUID, to enum.OrderStatus) (*StatusUpdateResult, error) {
	if !to.IsValid() {
		return nil, apperror.NewFieldError("status", "Unknown order status")
	}
	if to == enum.OrderStatusCompleted {
		return nil, apperror.NewUnprocessableError("Orders are completed by issuing a receipt")
	}
	if to == enum.OrderStatusCancelled {
		order, err := s.CancelOrder(ctx, p, id)
		if err != nil {
			return nil, err
		}
		return &StatusUpdateResult{Order: order}, nil
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if !from.CanTransitionTo(to) {
		return nil, apperror.NewUnprocessableError(fmt.Sprintf("Cannot move an order from %s to %s", from, to))
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, storeError(err, "Order")
	}
	s.events.Publish(events.Event{
		Topic:    events.OrderStatusChanged,
		Actor:    p.UserID,
		EntityID: id,
		Detail:   from.String() + "->" + to.String(),
	})

	order, err = s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	result := &StatusUpdateResult{Order: order}
	if to == enum.OrderStatusReady {
		result.Notification = s.notifyPickup(ctx, order)
	}
	return result, nil
}

func (s *OrderService) notifyPickup(ctx context.Context, order *entity.Order) *NotificationResult {
	email := order.Customer.ContactEmail()
	if email == "" {
		return &NotificationResult{Error: "customer has no email address"}
	}

	notice := notify.PickupNotice{
		OrderID:       order.ID.String(),
		OrderNumber:   order.OrderNumber,
		CustomerName:  order.Customer.Name,
		CustomerEmail: email,
		StoreName:     s.store.Name,
		StorePhone:    s.store.Phone,
	}
	if err := s.notifier.NotifyPickup(ctx, notice); err != nil {
		if !errors.Is(err, notify.ErrDisabled) {
			zap.L().Warn("pickup notification failed",
				zap.String("order_number", order.OrderNumber),
				zap.Error(err))
		}
		return &NotificationResult{Attempted: true, Error: err.Error()}
	}
	return &NotificationResult{Attempted: true, Sent: true}
}

// CancelOrder cancels a non-terminal order and puts deducted stock back
func (s *OrderService) CancelOrder(ctx context.Context, p access.Principal, id uuid.UUID) (*entity.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewUnprocessableError("Order is already " + order.Status.String())
	}

	if err := s.orderRepo.Cancel(ctx, id, order.Status); err != nil {
		return nil, storeError(err, "Order")
	}
	s.events.Publish(events.Event{
		Topic:    events.OrderCancelled,
		Actor:    p.UserID,
		EntityID: id,
		Amount:   order.Total,
		Detail:   order.OrderNumber,
	})
	return s.GetOrder(ctx, id)
}
