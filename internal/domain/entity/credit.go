package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CustomerCredit is money owed back to a customer, such as change that could
// not be given at the till.
type CustomerCredit struct {
	ID         uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	OrderID    *uuid.UUID        `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Amount     int64             `gorm:"not null" json:"-"` // Stored in cents
	Reason     string            `gorm:"type:text" json:"reason"`
	Status     enum.CreditStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RedeemedAt *time.Time        `json:"redeemed_at,omitempty"`
	CreatedBy  uuid.UUID         `gorm:"type:uuid" json:"created_by"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Order    *Order    `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

func (c CustomerCredit) MarshalJSON() ([]byte, error) {
	type Alias CustomerCredit
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(c),
		Amount: float64(c.Amount) / 100,
	})
}

func (c *CustomerCredit) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (CustomerCredit) TableName() string {
	return "customer_credits"
}
