package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is money spent by the business
type Expense struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Amount      int64     `gorm:"not null" json:"-"` // Stored in cents
	ExpenseDate time.Time `gorm:"type:date;not null;index" json:"expense_date"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy   uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (e Expense) MarshalJSON() ([]byte, error) {
	type Alias Expense
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (Expense) TableName() string {
	return "expenses"
}
