package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order is a sale of merchandise and/or laundry services. Totals are a
// snapshot taken at creation and never recomputed.
type Order struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber string           `gorm:"size:50;uniqueIndex;not null" json:"order_number"`
	CustomerID  *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	OrderType   enum.OrderType   `gorm:"size:20;not null" json:"order_type"`
	Status      enum.OrderStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Subtotal    int64            `gorm:"not null;default:0" json:"-"` // Stored in cents
	Tax         int64            `gorm:"not null;default:0" json:"-"` // Stored in cents
	Total       int64            `gorm:"not null;default:0" json:"-"` // Stored in cents
	TaxPolicy   enum.TaxPolicy   `gorm:"size:20;not null;default:'none'" json:"tax_policy"`
	Notes       *string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   uuid.UUID        `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(o),
		Subtotal: float64(o.Subtotal) / 100,
		Tax:      float64(o.Tax) / 100,
		Total:    float64(o.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a priced line of an order. Exactly one of MerchandiseID and
// LaundryServiceID is set, matching ItemType.
type OrderItem struct {
	ID               uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	OrderID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemType         enum.ItemType `gorm:"size:20;not null" json:"item_type"`
	MerchandiseID    *uuid.UUID    `gorm:"type:uuid;index" json:"merchandise_id,omitempty"`
	LaundryServiceID *uuid.UUID    `gorm:"type:uuid;index" json:"laundry_service_id,omitempty"`
	Description      string        `gorm:"size:255;not null" json:"description"`
	Quantity         int           `gorm:"not null" json:"quantity"`
	UnitPrice        int64         `gorm:"not null" json:"-"` // Stored in cents
	Total            int64         `gorm:"not null" json:"-"` // Stored in cents
	StockDeducted    int           `gorm:"not null;default:0" json:"-"`
	CreatedAt        time.Time     `json:"created_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Total:     float64(i.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
