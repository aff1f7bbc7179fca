package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_PricesItemsAndDeductsStock(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	bleach := f.merchandise(t, 5, 2.50)
	wash := f.washService(t, 10)

	order, err := f.orders.CreateOrder(ctx, staff, &CreateOrderInput{
		OrderType: enum.OrderTypeMixed,
		Items: []OrderItemInput{
			{ItemType: enum.ItemTypeMerchandise, MerchandiseID: uuidPtr(bleach.ID), Quantity: 2},
			{ItemType: enum.ItemTypeLaundry, LaundryServiceID: uuidPtr(wash.ID), Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.Regexp(t, `^ORD-`, order.OrderNumber)
	assert.Equal(t, int64(3500), order.Subtotal)
	assert.Equal(t, int64(0), order.Tax)
	assert.Equal(t, int64(3500), order.Total)
	require.Len(t, order.Items, 2)

	m, err := f.merch.GetMerchandise(ctx, bleach.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Quantity)
}

func TestCreateOrder_UsesGivenUnitPriceAndFloorsStock(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	bleach := f.merchandise(t, 1, 2.50)

	order, err := f.orders.CreateOrder(ctx, staff, &CreateOrderInput{
		OrderType: enum.OrderTypeMerchandise,
		Items: []OrderItemInput{{
			ItemType: enum.ItemTypeMerchandise, MerchandiseID: uuidPtr(bleach.ID), Quantity: 4,
			UnitPrice: floatPtr(2), Description: "Bleach 1L",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(800), order.Total)
	assert.Equal(t, "Bleach 1L", order.Items[0].Description)
	assert.Equal(t, 1, order.Items[0].StockDeducted)

	m, err := f.merch.GetMerchandise(ctx, bleach.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Quantity)
}

func TestOrderTotalsStayFrozenAfterPriceChanges(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	bleach := f.merchandise(t, 10, 2.50)
	wash := f.washService(t, 10)

	order, err := f.orders.CreateOrder(ctx, staff, &CreateOrderInput{
		OrderType: enum.OrderTypeMixed,
		Items: []OrderItemInput{
			{ItemType: enum.ItemTypeMerchandise, MerchandiseID: uuidPtr(bleach.ID), Quantity: 2},
			{ItemType: enum.ItemTypeLaundry, LaundryServiceID: uuidPtr(wash.ID), Quantity: 3},
		},
	})
	require.NoError(t, err)

	_, err = f.merch.UpdateMerchandise(ctx, &UpdateMerchandiseInput{ID: bleach.ID, UnitPrice: floatPtr(9)})
	require.NoError(t, err)
	_, err = f.laundry.UpdateService(ctx, wash.ID, &LaundryServiceInput{PricePerUnit: floatPtr(25)})
	require.NoError(t, err)

	reloaded, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3500), reloaded.Subtotal)
	assert.Equal(t, int64(3500), reloaded.Total)
	require.Len(t, reloaded.Items, 2)
	for _, item := range reloaded.Items {
		switch item.ItemType {
		case enum.ItemTypeMerchandise:
			assert.Equal(t, int64(250), item.UnitPrice)
			assert.Equal(t, int64(500), item.Total)
		case enum.ItemTypeLaundry:
			assert.Equal(t, int64(1000), item.UnitPrice)
			assert.Equal(t, int64(3000), item.Total)
		}
	}
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	bleach := f.merchandise(t, 5, 1)

	_, err := f.orders.CreateOrder(ctx, staff, &CreateOrderInput{OrderType: enum.OrderTypeMerchandise})
	requireCode(t, err, http.StatusUnprocessableEntity)

	_, err = f.orders.CreateOrder(ctx, staff, &CreateOrderInput{
		OrderType: enum.OrderTypeLaundry,
		Items: []OrderItemInput{
			{ItemType: enum.ItemTypeMerchandise, MerchandiseID: uuidPtr(bleach.ID), Quantity: 1},
		},
	})
	appErr := requireCode(t, err, http.StatusUnprocessableEntity)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "items[0].item_type", appErr.Errors[0].Field)

	_, err = f.orders.CreateOrder(ctx, staff, &CreateOrderInput{
		OrderType: enum.OrderTypeMerchandise,
		Items: []OrderItemInput{
			{ItemType: enum.ItemTypeMerchandise, MerchandiseID: uuidPtr(bleach.ID), Quantity: 0},
		},
	})
	appErr = requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "items[0].quantity", appErr.Errors[0].Field)

	missing := f.customer(t, "Ghost", "")
	require.NoError(t, f.customers.DeleteCustomer(ctx, admin, missing.ID))
	_, err = f.orders.CreateOrder(ctx, staff, &CreateOrderInput{
		CustomerID: uuidPtr(missing.ID),
		OrderType:  enum.OrderTypeMerchandise,
		Items: []OrderItemInput{
			{ItemType: enum.ItemTypeMerchandise, MerchandiseID: uuidPtr(bleach.ID), Quantity: 1},
		},
	})
	requireCode(t, err, http.StatusNotFound)

	m, err := f.merch.GetMerchandise(ctx, bleach.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Quantity)
}

func TestUpdateStatus_ReadySendsPickupNotice(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	c := f.customer(t, "Ama Sesay", "ama@example.com")
	order := f.merchOrder(t, uuidPtr(c.ID), f.merchandise(t, 5, 1), 1)

	f.notifier.On("NotifyPickup", mock.Anything, mock.MatchedBy(func(n notify.PickupNotice) bool {
		return n.CustomerEmail == "ama@example.com" && n.OrderNumber == order.OrderNumber && n.StoreName == "Fresh Fold"
	})).Return(nil).Once()

	res, err := f.orders.UpdateStatus(ctx, staff, order.ID, enum.OrderStatusReady)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusReady, res.Order.Status)
	require.NotNil(t, res.Notification)
	assert.True(t, res.Notification.Sent)
	f.notifier.AssertExpectations(t)
}

func TestUpdateStatus_NotificationFailureKeepsStatus(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	c := f.customer(t, "Ama Sesay", "ama@example.com")
	order := f.merchOrder(t, uuidPtr(c.ID), f.merchandise(t, 5, 1), 1)

	f.notifier.On("NotifyPickup", mock.Anything, mock.Anything).Return(errors.New("smtp unavailable")).Once()

	res, err := f.orders.UpdateStatus(ctx, staff, order.ID, enum.OrderStatusReady)
	require.NoError(t, err)
	assert.True(t, res.Notification.Attempted)
	assert.False(t, res.Notification.Sent)
	assert.Equal(t, "smtp unavailable", res.Notification.Error)

	stored, err := f.orders.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusReady, stored.Status)
}

func TestUpdateStatus_NoEmailSkipsNotifier(t *testing.T) {
	f := newFixture(t, nil)
	order := f.merchOrder(t, nil, f.merchandise(t, 5, 1), 1)

	res, err := f.orders.UpdateStatus(context.Background(), staff, order.ID, enum.OrderStatusReady)
	require.NoError(t, err)
	assert.False(t, res.Notification.Attempted)
	assert.False(t, res.Notification.Sent)
	f.notifier.AssertNotCalled(t, "NotifyPickup", mock.Anything, mock.Anything)
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	order := f.merchOrder(t, nil, f.merchandise(t, 5, 1), 1)

	res, err := f.orders.UpdateStatus(ctx, staff, order.ID, enum.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Nil(t, res.Notification)

	_, err = f.orders.UpdateStatus(ctx, staff, order.ID, enum.OrderStatusCompleted)
	requireCode(t, err, http.StatusUnprocessableEntity)

	_, err = f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{OrderID: order.ID, AmountPaid: 1})
	require.NoError(t, err)

	_, err = f.orders.UpdateStatus(ctx, staff, order.ID, enum.OrderStatusPending)
	requireCode(t, err, http.StatusUnprocessableEntity)

	_, err = f.orders.UpdateStatus(ctx, staff, order.ID, enum.OrderStatus("shipped"))
	requireCode(t, err, http.StatusUnprocessableEntity)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	bleach := f.merchandise(t, 5, 1)
	order := f.merchOrder(t, nil, bleach, 3)

	res, err := f.orders.UpdateStatus(ctx, staff, order.ID, enum.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, res.Order.Status)

	m, err := f.merch.GetMerchandise(ctx, bleach.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Quantity)

	_, err = f.orders.CancelOrder(ctx, staff, order.ID)
	requireCode(t, err, http.StatusUnprocessableEntity)
}

func TestStockOverview(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.merchandise(t, 0, 4)
	low := f.merchandise(t, 2, 1.5)
	f.merchandise(t, 20, 1)

	overview, err := f.merch.StockOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2*150+20*100), overview.TotalValue)
	assert.Equal(t, 22, overview.TotalUnits)
	assert.Equal(t, 3, overview.ItemCount)
	require.Len(t, overview.LowStock, 1)
	assert.Equal(t, low.ID, overview.LowStock[0].ID)
	assert.Len(t, overview.OutOfStock, 1)

	_, err = f.merch.AdjustStock(ctx, staff, low.ID, -3)
	requireCode(t, err, http.StatusUnprocessableEntity)
}
