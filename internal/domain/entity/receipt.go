package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Receipt records payment for exactly one order. Issuing it completes the order.
type Receipt struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber string             `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`
	OrderID       uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"order_id"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	AmountPaid    int64              `gorm:"not null" json:"-"`           // Stored in cents
	ChangeGiven   int64              `gorm:"not null;default:0" json:"-"` // Stored in cents
	IssuedBy      uuid.UUID          `gorm:"type:uuid;index" json:"issued_by"`
	IssuedAt      time.Time          `gorm:"not null;index" json:"issued_at"`
	CreatedAt     time.Time          `json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	return json.Marshal(&struct {
		Alias
		AmountPaid  float64 `json:"amount_paid"`
		ChangeGiven float64 `json:"change_given"`
	}{
		Alias:       Alias(r),
		AmountPaid:  float64(r.AmountPaid) / 100,
		ChangeGiven: float64(r.ChangeGiven) / 100,
	})
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (Receipt) TableName() string {
	return "receipts"
}
