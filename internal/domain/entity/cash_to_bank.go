package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CashToBank records till cash deposited at a bank
type CashToBank struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Amount          int64     `gorm:"not null" json:"-"` // Stored in cents
	BankName        string    `gorm:"size:255;not null" json:"bank_name"`
	AccountNumber   *string   `gorm:"size:100" json:"account_number,omitempty"`
	ReferenceNumber *string   `gorm:"size:100" json:"reference_number,omitempty"`
	TransferDate    time.Time `gorm:"type:date;not null;index" json:"transfer_date"`
	Notes           *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedBy       uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (t CashToBank) MarshalJSON() ([]byte, error) {
	type Alias CashToBank
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

func (t *CashToBank) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (CashToBank) TableName() string {
	return "cash_to_bank"
}
