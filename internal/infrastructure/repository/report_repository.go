package repository

import (
	"context"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
)

const (
	receiptRowsQuery = `
SELECT r.receipt_number, o.order_number, o.order_type, r.payment_method,
       o.total AS order_total, r.amount_paid, r.change_given, r.issued_at
FROM receipts r
JOIN orders o ON o.id = r.order_id
WHERE r.issued_at >= ? AND r.issued_at < ?
ORDER BY r.issued_at ASC`

	expenseRowsQuery = `
SELECT description, category, amount, expense_date
FROM expenses
WHERE expense_date >= ? AND expense_date < ?
ORDER BY expense_date ASC`

	transferRowsQuery = `
SELECT bank_name, reference_number, amount, transfer_date
FROM cash_to_bank
WHERE transfer_date >= ? AND transfer_date < ?
ORDER BY transfer_date ASC`

	orderRowsQuery = `
SELECT order_number, order_type, status, total, created_at
FROM orders
WHERE created_at >= ? AND created_at < ?
ORDER BY created_at ASC`

	customerPaymentsQuery = `
SELECT p.id, 'customer' AS loan_kind, p.loan_id, COALESCE(c.name, '') AS party,
       p.amount, p.payment_date, p.notes, p.created_at
FROM customer_loan_payments p
JOIN customer_loans l ON l.id = p.loan_id
LEFT JOIN customers c ON c.id = l.customer_id
ORDER BY p.payment_date DESC, p.created_at DESC
LIMIT ?`

	businessPaymentsQuery = `
SELECT p.id, 'business' AS loan_kind, p.loan_id, l.lender_name AS party,
       p.amount, p.payment_date, p.notes, p.created_at
FROM business_loan_payments p
JOIN business_loans l ON l.id = p.loan_id
ORDER BY p.payment_date DESC, p.created_at DESC
LIMIT ?`
)

type reportReader struct {
	db *sqlx.DB
}

// NewReportReader creates a report reader over the shared connection pool
func NewReportReader(db *sqlx.DB) domainRepo.ReportReader {
	return &reportReader{db: db}
}

func (r *reportReader) selectWindow(ctx context.Context, dest interface{}, query string, w ledger.Window) error {
	if err := r.db.SelectContext(ctx, dest, r.db.Rebind(query), w.Start.UTC(), w.End.UTC()); err != nil {
		return errors.Wrap(err, "report query")
	}
	return nil
}

func (r *reportReader) Receipts(ctx context.Context, w ledger.Window) ([]domainRepo.ReceiptRow, error) {
	rows := []domainRepo.ReceiptRow{}
	return rows, r.selectWindow(ctx, &rows, receiptRowsQuery, w)
}

func (r *reportReader) Expenses(ctx context.Context, w ledger.Window) ([]domainRepo.ExpenseRow, error) {
	rows := []domainRepo.ExpenseRow{}
	return rows, r.selectWindow(ctx, &rows, expenseRowsQuery, w)
}

func (r *reportReader) Transfers(ctx context.Context, w ledger.Window) ([]domainRepo.TransferRow, error) {
	rows := []domainRepo.TransferRow{}
	return rows, r.selectWindow(ctx, &rows, transferRowsQuery, w)
}

func (r *reportReader) Orders(ctx context.Context, w ledger.Window) ([]domainRepo.OrderRow, error) {
	rows := []domainRepo.OrderRow{}
	return rows, r.selectWindow(ctx, &rows, orderRowsQuery, w)
}

// PaymentHistory merges the newest payments of both loan kinds.
func (r *reportReader) PaymentHistory(ctx context.Context, limit int) ([]entity.PaymentHistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var customer, business []entity.PaymentHistoryEntry
	if err := r.db.SelectContext(ctx, &customer, r.db.Rebind(customerPaymentsQuery), limit); err != nil {
		return nil, errors.Wrap(err, "customer payment history")
	}
	if err := r.db.SelectContext(ctx, &business, r.db.Rebind(businessPaymentsQuery), limit); err != nil {
		return nil, errors.Wrap(err, "business payment history")
	}

	merged := append(customer, business...)
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].PaymentDate.Equal(merged[j].PaymentDate) {
			return merged[i].PaymentDate.After(merged[j].PaymentDate)
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	if merged == nil {
		merged = []entity.PaymentHistoryEntry{}
	}
	return merged, nil
}
