package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMarshalRendersDecimals(t *testing.T) {
	o := Order{OrderNumber: "ORD-1", Subtotal: 2500, Tax: 250, Total: 2750}

	data, err := json.Marshal(o)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 25.0, out["subtotal"])
	assert.Equal(t, 2.5, out["tax"])
	assert.Equal(t, 27.5, out["total"])
	assert.Equal(t, "ORD-1", out["order_number"])
}

func TestMerchandiseMarshalOmitsMissingCost(t *testing.T) {
	data, err := json.Marshal(Merchandise{Name: "Soap", UnitPrice: 150, Quantity: 3})
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 1.5, out["unit_price"])
	_, hasCost := out["cost_price"]
	assert.False(t, hasCost)
}

func TestLoanPaymentMarshal(t *testing.T) {
	p := CustomerLoanPayment{LoanPayment: LoanPayment{Amount: 40000}}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":400`)
	assert.Contains(t, string(data), `"loan_id"`)
}

func TestStockValue(t *testing.T) {
	m := &Merchandise{UnitPrice: 250, Quantity: 4}
	assert.Equal(t, int64(1000), m.StockValue())
}

func TestCustomerContactEmail(t *testing.T) {
	var nilCustomer *Customer
	assert.Equal(t, "", nilCustomer.ContactEmail())

	email := "ama@example.com"
	assert.Equal(t, email, (&Customer{Email: &email}).ContactEmail())
}
