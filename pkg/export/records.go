package export

// ReceiptRecord is one receipt line of an export.
type ReceiptRecord struct {
	IssuedAt      string  `csv:"issued_at"`
	ReceiptNumber string  `csv:"receipt_number"`
	OrderNumber   string  `csv:"order_number"`
	OrderType     string  `csv:"order_type"`
	PaymentMethod string  `csv:"payment_method"`
	OrderTotal    float64 `csv:"order_total"`
	AmountPaid    float64 `csv:"amount_paid"`
	ChangeGiven   float64 `csv:"change_given"`
}

type ExpenseRecord struct {
	Date        string  `csv:"date"`
	Description string  `csv:"description"`
	Category    string  `csv:"category"`
	Amount      float64 `csv:"amount"`
}

type TransferRecord struct {
	Date      string  `csv:"date"`
	BankName  string  `csv:"bank_name"`
	Reference string  `csv:"reference_number"`
	Amount    float64 `csv:"amount"`
}
