package request

import "github.com/google/uuid"

// OrderItemRequest is one line of a new order
type OrderItemRequest struct {
	ItemType         string     `json:"item_type" binding:"required"`
	MerchandiseID    *uuid.UUID `json:"merchandise_id"`
	LaundryServiceID *uuid.UUID `json:"laundry_service_id"`
	Description      string     `json:"description"`
	Quantity         int        `json:"quantity"`
	UnitPrice        *float64   `json:"unit_price"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	CustomerID *uuid.UUID         `json:"customer_id"`
	OrderType  string             `json:"order_type" binding:"required"`
	Notes      *string            `json:"notes"`
	Items      []OrderItemRequest `json:"items" binding:"required,dive"`
}

// UpdateOrderStatusRequest moves an order to a new status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// IssueReceiptRequest represents a receipt issuance request
type IssueReceiptRequest struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	AmountPaid    float64   `json:"amount_paid"`
}
