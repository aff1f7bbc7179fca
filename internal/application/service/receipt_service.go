package service

import (
	"context"
	"errors"

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

// ReceiptService issues receipts, which is the only way an order completes
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	orderRepo   repository.OrderRepository
	numbers     NumberSource
	printer     *PrinterService
	events      events.Publisher
	now         clock
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	orderRepo repository.OrderRepository,
	numbers NumberSource,
	printerSvc *PrinterService,
	pub events.Publisher,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		orderRepo:   orderRepo,
		numbers:     numbers,
		printer:     printerSvc,
		events:      pub,
		now:         systemClock,
	}
}

// IssueReceiptInput represents the issue receipt input
type IssueReceiptInput struct {
	OrderID       uuid.UUID
	PaymentMethod enum.PaymentMethod
	AmountPaid    float64
}

// IssueReceiptResult is the stored receipt and what happened at the printer
type IssueReceiptResult struct {
	Receipt    *entity.Receipt     `json:"receipt"`
	Slip       *entity.ReceiptSlip `json:"slip"`
	Printed    bool                `json:"printed"`
	PrintError string              `json:"print_error,omitempty"`
}

// IssueReceipt records payment for an order and completes it
func (s *ReceiptService) IssueReceipt(ctx context.Context, p access.Principal, input *IssueReceiptInput) (*IssueReceiptResult, error) {
	method := input.PaymentMethod
	if method == "" {
		method = enum.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, apperror.NewFieldError("payment_method", "Payment method must be cash, card or mobile")
	}
	if input.AmountPaid < 0 {
		return nil, apperror.NewFieldError("amount_paid", "Amount paid cannot be negative")
	}

	order, err := s.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	if order.Status.IsTerminal() {
		return nil, apperror.NewConflictError("Order is already " + order.Status.String())
	}

	paid := money.FromDecimal(input.AmountPaid)
	change, err := ledger.Change(paid, order.Total)
	if errors.Is(err, ledger.ErrInsufficientPayment) {
		return nil, apperror.NewUnprocessableError("Amount paid is less than the order total")
	}

	receipt := &entity.Receipt{
		ReceiptNumber: s.numbers.ReceiptNumber(),
		OrderID:       order.ID,
		PaymentMethod: method,
		AmountPaid:    paid,
		ChangeGiven:   change,
		IssuedBy:      p.UserID,
		IssuedAt:      s.now().UTC(),
	}
	if err := s.receiptRepo.Issue(ctx, receipt); err != nil {
		return nil, storeError(err, "Order")
	}
	s.events.Publish(events.Event{
		Topic:    events.ReceiptIssued,
		Actor:    p.UserID,
		EntityID: receipt.ID,
		Amount:   receipt.AmountPaid,
		Detail:   order.OrderNumber,
	})

	stored, err := s.GetReceipt(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	result := &IssueReceiptResult{Receipt: stored}
	result.Slip, result.Printed, result.PrintError = s.print(ctx, stored)
	return result, nil
}

func (s *ReceiptService) print(ctx context.Context, r *entity.Receipt) (*entity.ReceiptSlip, bool, string) {
	if !s.printer.Status().Configured {
		return s.printer.BuildSlip(r), false, ""
	}
	slip, err := s.printer.PrintReceipt(ctx, r)
	if err != nil {
		return slip, false, err.Error()
	}
	return slip, true, ""
}

// GetReceipt retrieves a receipt with its order
func (s *ReceiptService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// GetReceiptForOrder retrieves the receipt issued for an order
func (s *ReceiptService) GetReceiptForOrder(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receiptRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// ListReceipts lists receipts newest first
func (s *ReceiptService) ListReceipts(ctx context.Context, params *repository.ReceiptFilterParams) (*pagination.PaginatedResult[entity.Receipt], error) {
	params.Pagination = pageParams(params.Pagination)
	receipts, total, err := s.receiptRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(receipts, pag), nil
}

// ReprintReceipt sends a stored receipt to the printer again
func (s *ReceiptService) ReprintReceipt(ctx context.Context, id uuid.UUID) (*IssueReceiptResult, error) {
	receipt, err := s.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	result := &IssueReceiptResult{Receipt: receipt}
	result.Slip, result.Printed, result.PrintError = s.print(ctx, receipt)
	return result, nil
}
