package ledger

import "errors"

// ErrInsufficientPayment is returned when the tendered amount is below the order total.
var ErrInsufficientPayment = errors.New("amount paid is less than the order total")

// Change computes the change owed for a tendered amount.
func Change(amountPaid, total int64) (int64, error) {
	if amountPaid < total {
		return 0, ErrInsufficientPayment
	}
	return amountPaid - total, nil
}
