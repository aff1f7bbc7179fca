package entity

// SlipHeader holds the store header printed at the top of a receipt slip.
type SlipHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// SlipLine is a single order line as printed.
type SlipLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Total     string `json:"total"`
}

// ReceiptSlip is the printable view of an issued receipt. It is composed from
// the receipt, its order and lines at print time and is never persisted.
// Amounts are preformatted in the store currency.
type ReceiptSlip struct {
	Header        SlipHeader `json:"header"`
	ReceiptNumber string     `json:"receipt_number"`
	OrderNumber   string     `json:"order_number"`
	Date          string     `json:"date"`
	Customer      string     `json:"customer,omitempty"`
	PaymentMethod string     `json:"payment_method"`
	Lines         []SlipLine `json:"lines"`
	Subtotal      string     `json:"subtotal"`
	Tax           string     `json:"tax,omitempty"`
	Total         string     `json:"total"`
	AmountPaid    string     `json:"amount_paid"`
	Change        string     `json:"change"`
}
