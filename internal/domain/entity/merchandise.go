package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Merchandise is a stocked item sold over the counter
type Merchandise struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null;index" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	Category    string         `gorm:"size:100;not null;index" json:"category"`
	SKU         *string        `gorm:"size:100;uniqueIndex" json:"sku,omitempty"`
	Quantity    int            `gorm:"not null;default:0" json:"quantity"`
	UnitPrice   int64          `gorm:"not null;default:0" json:"-"` // Stored in cents
	CostPrice   *int64         `json:"-"`                           // Stored in cents
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (m Merchandise) MarshalJSON() ([]byte, error) {
	type Alias Merchandise
	var cost *float64
	if m.CostPrice != nil {
		v := float64(*m.CostPrice) / 100
		cost = &v
	}
	return json.Marshal(&struct {
		Alias
		UnitPrice float64  `json:"unit_price"`
		CostPrice *float64 `json:"cost_price,omitempty"`
	}{
		Alias:     Alias(m),
		UnitPrice: float64(m.UnitPrice) / 100,
		CostPrice: cost,
	})
}

// BeforeCreate generates a UUID before creating a new merchandise row
func (m *Merchandise) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Merchandise model
func (Merchandise) TableName() string {
	return "merchandise"
}

// StockValue is unit price times quantity on hand, in cents.
func (m *Merchandise) StockValue() int64 {
	return m.UnitPrice * int64(m.Quantity)
}
