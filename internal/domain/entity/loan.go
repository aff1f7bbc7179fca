package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"gorm.io/gorm"
)

// CustomerLoan is money lent to a customer. Balance starts at Amount and is
// reduced only by recorded payments.
type CustomerLoan struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Amount     int64           `gorm:"not null" json:"-"` // Stored in cents
	Balance    int64           `gorm:"not null" json:"-"` // Stored in cents
	Reason     string          `gorm:"type:text" json:"reason"`
	LoanDate   time.Time       `gorm:"type:date;not null" json:"loan_date"`
	Status     enum.LoanStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedBy  uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	Customer *Customer             `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Payments []CustomerLoanPayment `gorm:"foreignKey:LoanID" json:"payments,omitempty"`
}

func (l CustomerLoan) MarshalJSON() ([]byte, error) {
	type Alias CustomerLoan
	return json.Marshal(&struct {
		Alias
		Amount  float64 `json:"amount"`
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(l),
		Amount:  float64(l.Amount) / 100,
		Balance: float64(l.Balance) / 100,
	})
}

func (l *CustomerLoan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (CustomerLoan) TableName() string {
	return "customer_loans"
}

// BusinessLoan is money the business borrowed from a lender.
type BusinessLoan struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	LenderName   string          `gorm:"size:255;not null" json:"lender_name"`
	Amount       int64           `gorm:"not null" json:"-"` // Stored in cents
	Balance      int64           `gorm:"not null" json:"-"` // Stored in cents
	InterestRate float64         `gorm:"not null;default:0" json:"interest_rate"`
	Reason       string          `gorm:"type:text" json:"reason"`
	LoanDate     time.Time       `gorm:"type:date;not null" json:"loan_date"`
	DueDate      *time.Time      `gorm:"type:date;index" json:"due_date,omitempty"`
	Status       enum.LoanStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedBy    uuid.UUID       `gorm:"type:uuid" json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	Payments []BusinessLoanPayment `gorm:"foreignKey:LoanID" json:"payments,omitempty"`
}

func (l BusinessLoan) MarshalJSON() ([]byte, error) {
	type Alias BusinessLoan
	return json.Marshal(&struct {
		Alias
		Amount  float64 `json:"amount"`
		Balance float64 `json:"balance"`
	}{
		Alias:   Alias(l),
		Amount:  float64(l.Amount) / 100,
		Balance: float64(l.Balance) / 100,
	})
}

func (l *BusinessLoan) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

func (BusinessLoan) TableName() string {
	return "business_loans"
}

// LoanPayment is the shape shared by both payment tables. Payments are
// append-only.
type LoanPayment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LoanID      uuid.UUID `gorm:"type:uuid;not null;index" json:"loan_id"`
	Amount      int64     `gorm:"not null" json:"-"` // Stored in cents
	PaymentDate time.Time `gorm:"type:date;not null;index" json:"payment_date"`
	Notes       *string   `gorm:"type:text" json:"notes,omitempty"`
	RecordedBy  uuid.UUID `gorm:"type:uuid" json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *LoanPayment) ensureID() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
}

type CustomerLoanPayment struct {
	LoanPayment
}

func (p CustomerLoanPayment) MarshalJSON() ([]byte, error) {
	return marshalPayment(p.LoanPayment)
}

func (p *CustomerLoanPayment) BeforeCreate(tx *gorm.DB) error {
	p.ensureID()
	return nil
}

func (CustomerLoanPayment) TableName() string {
	return "customer_loan_payments"
}

type BusinessLoanPayment struct {
	LoanPayment
}

func (p BusinessLoanPayment) MarshalJSON() ([]byte, error) {
	return marshalPayment(p.LoanPayment)
}

func (p *BusinessLoanPayment) BeforeCreate(tx *gorm.DB) error {
	p.ensureID()
	return nil
}

func (BusinessLoanPayment) TableName() string {
	return "business_loan_payments"
}

func marshalPayment(p LoanPayment) ([]byte, error) {
	type Alias LoanPayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// PaymentHistoryEntry is one row of the combined customer and business
// payment history.
type PaymentHistoryEntry struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	LoanKind    enum.LoanKind `json:"loan_kind" db:"loan_kind"`
	LoanID      uuid.UUID     `json:"loan_id" db:"loan_id"`
	Party       string        `json:"party" db:"party"`
	Amount      int64         `json:"-" db:"amount"`
	PaymentDate time.Time     `json:"payment_date" db:"payment_date"`
	Notes       *string       `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}

func (e PaymentHistoryEntry) MarshalJSON() ([]byte, error) {
	type Alias PaymentHistoryEntry
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(e),
		Amount: float64(e.Amount) / 100,
	})
}
