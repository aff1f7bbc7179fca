package request

import "github.com/google/uuid"

// Dates are accepted in any layout dateparse understands, e.g. "2026-06-15".

// CreateCustomerLoanRequest represents a customer loan creation request
type CreateCustomerLoanRequest struct {
	CustomerID uuid.UUID `json:"customer_id" binding:"required"`
	Amount     float64   `json:"amount"`
	Reason     string    `json:"reason" binding:"max=500"`
	LoanDate   *string   `json:"loan_date"`
}

// CreateBusinessLoanRequest represents a business loan creation request
type CreateBusinessLoanRequest struct {
	LenderName   string  `json:"lender_name" binding:"max=255"`
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	Reason       string  `json:"reason" binding:"max=500"`
	LoanDate     *string `json:"loan_date"`
	DueDate      *string `json:"due_date"`
}

// RecordPaymentRequest represents a loan repayment
type RecordPaymentRequest struct {
	Amount      float64 `json:"amount"`
	PaymentDate *string `json:"payment_date"`
	Notes       *string `json:"notes"`
}

// CreateCreditRequest represents a customer credit creation request
type CreateCreditRequest struct {
	CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
	OrderID    *uuid.UUID `json:"order_id"`
	Amount     float64    `json:"amount"`
	Reason     string     `json:"reason" binding:"max=500"`
}

// ExpenseRequest is used for both create and update
type ExpenseRequest struct {
	Description string  `json:"description" binding:"max=500"`
	Category    string  `json:"category" binding:"max=100"`
	Amount      float64 `json:"amount"`
	ExpenseDate *string `json:"expense_date"`
	Notes       *string `json:"notes"`
}

// CashToBankRequest represents a cash deposit
type CashToBankRequest struct {
	Amount          float64 `json:"amount"`
	BankName        string  `json:"bank_name" binding:"max=255"`
	AccountNumber   *string `json:"account_number" binding:"omitempty,max=100"`
	ReferenceNumber *string `json:"reference_number" binding:"omitempty,max=100"`
	TransferDate    *string `json:"transfer_date"`
	Notes           *string `json:"notes"`
}

// AssignRoleRequest grants an application role to a user
type AssignRoleRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
	Role   string    `json:"role" binding:"required"`
	Email  *string   `json:"email"`
}
