package repository

import (
	"context"
	"time"

	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
)

// ReportReader loads the raw rows reports are computed from.
type ReportReader interface {
	Receipts(ctx context.Context, w ledger.Window) ([]ReceiptRow, error)
	Expenses(ctx context.Context, w ledger.Window) ([]ExpenseRow, error)
	Transfers(ctx context.Context, w ledger.Window) ([]TransferRow, error)
	Orders(ctx context.Context, w ledger.Window) ([]OrderRow, error)
	PaymentHistory(ctx context.Context, limit int) ([]entity.PaymentHistoryEntry, error)
}

// ReceiptRow is a receipt joined with its order.
type ReceiptRow struct {
	ReceiptNumber string    `db:"receipt_number"`
	OrderNumber   string    `db:"order_number"`
	OrderType     string    `db:"order_type"`
	PaymentMethod string    `db:"payment_method"`
	OrderTotal    int64     `db:"order_total"`
	AmountPaid    int64     `db:"amount_paid"`
	ChangeGiven   int64     `db:"change_given"`
	IssuedAt      time.Time `db:"issued_at"`
}

// ExpenseRow is an expense as reported.
type ExpenseRow struct {
	Description string    `db:"description"`
	Category    string    `db:"category"`
	Amount      int64     `db:"amount"`
	ExpenseDate time.Time `db:"expense_date"`
}

// TransferRow is a cash-to-bank transfer as reported.
type TransferRow struct {
	BankName        string    `db:"bank_name"`
	ReferenceNumber *string   `db:"reference_number"`
	Amount          int64     `db:"amount"`
	TransferDate    time.Time `db:"transfer_date"`
}

// OrderRow is an order as reported.
type OrderRow struct {
	OrderNumber string    `db:"order_number"`
	OrderType   string    `db:"order_type"`
	Status      string    `db:"status"`
	Total       int64     `db:"total"`
	CreatedAt   time.Time `db:"created_at"`
}
