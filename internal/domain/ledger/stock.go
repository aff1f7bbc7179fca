package ledger

// StockLevel buckets an on-hand quantity for alerts.
type StockLevel string

const (
	StockOK         StockLevel = "ok"
	StockLow        StockLevel = "low"
	StockOutOfStock StockLevel = "out_of_stock"
)

// DefaultLowStockThreshold is the quantity at or below which an item is low.
const DefaultLowStockThreshold = 10

// DeductStock returns the quantity left after selling sold units, never below zero.
func DeductStock(onHand, sold int) int {
	if sold >= onHand {
		return 0
	}
	return onHand - sold
}

// ClassifyStock reports whether an item is out of stock, low or fine.
func ClassifyStock(quantity, threshold int) StockLevel {
	switch {
	case quantity <= 0:
		return StockOutOfStock
	case quantity <= threshold:
		return StockLow
	default:
		return StockOK
	}
}
