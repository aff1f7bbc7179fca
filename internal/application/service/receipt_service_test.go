package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIssueReceipt_CompletesOrderOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	c := f.customer(t, "Musa Bangura", "")
	order := f.merchOrder(t, uuidPtr(c.ID), f.merchandise(t, 10, 12.50), 2)

	_, err := f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{OrderID: order.ID, AmountPaid: 20})
	requireCode(t, err, http.StatusUnprocessableEntity)

	_, err = f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{
		OrderID: order.ID, AmountPaid: 30, PaymentMethod: enum.PaymentMethod("cheque"),
	})
	requireCode(t, err, http.StatusUnprocessableEntity)

	res, err := f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{OrderID: order.ID, AmountPaid: 30})
	require.NoError(t, err)
	assert.Regexp(t, `^RCP-`, res.Receipt.ReceiptNumber)
	assert.Equal(t, enum.PaymentMethodCash, res.Receipt.PaymentMethod)
	assert.Equal(t, int64(3000), res.Receipt.AmountPaid)
	assert.Equal(t, int64(500), res.Receipt.ChangeGiven)
	assert.False(t, res.Printed)
	assert.Empty(t, res.PrintError)
	require.NotNil(t, res.Slip)
	assert.Equal(t, order.OrderNumber, res.Slip.OrderNumber)
	assert.Equal(t, "Musa Bangura", res.Slip.Customer)
	require.Len(t, res.Slip.Lines, 1)

	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, stored.Status)

	_, err = f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{OrderID: order.ID, AmountPaid: 30})
	requireCode(t, err, http.StatusConflict)

	byOrder, err := f.receipts.GetReceiptForOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Receipt.ID, byOrder.ID)
}

func TestIssueReceipt_CancelledOrder(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	order := f.merchOrder(t, nil, f.merchandise(t, 10, 1), 1)
	_, err := f.orders.CancelOrder(ctx, staff, order.ID)
	require.NoError(t, err)

	_, err = f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{OrderID: order.ID, AmountPaid: 5})
	requireCode(t, err, http.StatusConflict)
}

func TestIssueReceipt_PrintFailureIsReported(t *testing.T) {
	p := &mockPrinter{}
	p.On("Print", mock.Anything, mock.MatchedBy(func(b []byte) bool {
		return bytes.Contains(b, []byte("Fresh Fold"))
	})).Return(errors.New("printer offline")).Once()
	p.On("Print", mock.Anything, mock.Anything).Return(nil)

	f := newFixture(t, p)
	ctx := context.Background()
	order := f.merchOrder(t, nil, f.merchandise(t, 10, 5), 1)

	res, err := f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{
		OrderID: order.ID, AmountPaid: 5, PaymentMethod: enum.PaymentMethodMobile,
	})
	require.NoError(t, err)
	assert.False(t, res.Printed)
	assert.Contains(t, res.PrintError, "printer offline")
	assert.Equal(t, enum.PaymentMethodMobile, res.Receipt.PaymentMethod)

	again, err := f.receipts.ReprintReceipt(ctx, res.Receipt.ID)
	require.NoError(t, err)
	assert.True(t, again.Printed)
	p.AssertNumberOfCalls(t, "Print", 2)
}
