package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedDay records three paid orders, one open laundry order, an expense and a
// bank deposit, all stamped with now.
func seedDay(t *testing.T, f *fixture, now time.Time) {
	t.Helper()
	ctx := context.Background()
	clock := func() time.Time { return now }
	f.receipts.now = clock
	f.expenses.now = clock
	f.reports.now = clock
	f.dashboard.now = clock

	item := f.merchandise(t, 50, 10)
	for _, sale := range []struct {
		qty  int
		paid float64
	}{{1, 10}, {3, 50}, {1, 20}} {
		order := f.merchOrder(t, nil, item, sale.qty)
		_, err := f.receipts.IssueReceipt(ctx, staff, &IssueReceiptInput{OrderID: order.ID, AmountPaid: sale.paid})
		require.NoError(t, err)
	}

	wash := f.washService(t, 5)
	_, err := f.orders.CreateOrder(ctx, staff, &CreateOrderInput{
		OrderType: enum.OrderTypeLaundry,
		Items:     []OrderItemInput{{ItemType: enum.ItemTypeLaundry, LaundryServiceID: uuidPtr(wash.ID), Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.expenses.CreateExpense(ctx, staff, &ExpenseInput{Description: "Soap", Category: "supplies", Amount: 15})
	require.NoError(t, err)
	_, err = f.expenses.RecordTransfer(ctx, staff, &TransferInput{BankName: "Rokel Bank", Amount: 20})
	require.NoError(t, err)
}

func TestReportSummary(t *testing.T) {
	f := newFixture(t, nil)
	now := time.Now().UTC()
	seedDay(t, f, now)

	w, err := f.reports.ResolveWindow(WindowQuery{Period: "today"})
	require.NoError(t, err)

	summary, err := f.reports.Summary(context.Background(), w)
	require.NoError(t, err)
	assert.Equal(t, int64(8000), summary.Revenue)
	assert.Equal(t, 3, summary.ReceiptCount)
	assert.Equal(t, int64(1500), summary.Expenses)
	assert.Equal(t, int64(2000), summary.CashToBank)
	assert.Equal(t, int64(6500), summary.Profit)
	assert.Equal(t, 4, summary.OrderCount)
	assert.Equal(t, 3, summary.CompletedOrders)
	assert.Equal(t, map[string]int{"merchandise": 3, "laundry": 1}, summary.OrdersByType)
	assert.Equal(t, int64(2667), summary.AverageSale)
	assert.Equal(t, int64(2000), summary.MedianSale)
	assert.Equal(t, int64(1500), summary.ExpensesByCat["supplies"])
}

func TestReportSummary_EmptyWindow(t *testing.T) {
	f := newFixture(t, nil)
	w, err := f.reports.ResolveWindow(WindowQuery{Period: "custom", Start: "2020-01-01", End: "2020-01-31"})
	require.NoError(t, err)

	summary, err := f.reports.Summary(context.Background(), w)
	require.NoError(t, err)
	assert.Zero(t, summary.Revenue)
	assert.Zero(t, summary.AverageSale)
	assert.Empty(t, summary.OrdersByType)
}

func TestResolveWindow(t *testing.T) {
	f := newFixture(t, nil)
	f.reports.now = func() time.Time { return time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC) }

	w, err := f.reports.ResolveWindow(WindowQuery{Period: "week"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), w.Start)

	w, err = f.reports.ResolveWindow(WindowQuery{Period: "custom", Start: "2026-01-01", End: "January 31, 2026"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), w.End)

	_, err = f.reports.ResolveWindow(WindowQuery{Period: "custom", Start: "2026-02-01", End: "2026-01-01"})
	requireCode(t, err, http.StatusUnprocessableEntity)

	_, err = f.reports.ResolveWindow(WindowQuery{Period: "custom", Start: "soon", End: "2026-01-01"})
	appErr := requireCode(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "start", appErr.Errors[0].Field)

	_, err = f.reports.ResolveWindow(WindowQuery{Period: "decade"})
	requireCode(t, err, http.StatusUnprocessableEntity)
}

func TestSalesPeriodsAndSeries(t *testing.T) {
	f := newFixture(t, nil)
	now := time.Now().UTC()
	seedDay(t, f, now)
	ctx := context.Background()

	periods, err := f.reports.SalesPeriods(ctx)
	require.NoError(t, err)
	require.Len(t, periods, 4)
	assert.Equal(t, ledger.PeriodToday, periods[0].Period)
	for _, p := range periods {
		assert.Equal(t, 3, p.Count, p.Period)
		assert.Equal(t, int64(8000), p.Total, p.Period)
	}

	daily, err := f.reports.RevenueSeries(ctx, SeriesDaily)
	require.NoError(t, err)
	require.Len(t, daily, 7)
	last := daily[len(daily)-1]
	assert.Equal(t, int64(8000), last.Revenue)
	assert.Equal(t, int64(1500), last.Expenses)
	assert.Equal(t, 3, last.Count)
	assert.Zero(t, daily[0].Revenue)

	weekly, err := f.reports.RevenueSeries(ctx, SeriesWeekly)
	require.NoError(t, err)
	assert.Len(t, weekly, 8)

	monthly, err := f.reports.RevenueSeries(ctx, SeriesMonthly)
	require.NoError(t, err)
	require.Len(t, monthly, 6)
	assert.Equal(t, int64(8000), monthly[5].Revenue)

	_, err = f.reports.RevenueSeries(ctx, "hourly")
	requireCode(t, err, http.StatusUnprocessableEntity)
}

func TestExport(t *testing.T) {
	f := newFixture(t, nil)
	now := time.Now().UTC()
	seedDay(t, f, now)
	ctx := context.Background()
	w, err := f.reports.ResolveWindow(WindowQuery{Period: "month"})
	require.NoError(t, err)

	var csvOut bytes.Buffer
	in := &ExportInput{Window: w, Format: export.FormatCSV}
	require.NoError(t, f.reports.Export(ctx, &csvOut, in))
	assert.Equal(t, DatasetReceipts, in.Dataset)
	assert.Contains(t, csvOut.String(), "issued_at,receipt_number,order_number")
	assert.Contains(t, csvOut.String(), "RCP-")
	assert.Regexp(t, `^report-receipts-\d{8}\.csv$`, in.Filename())

	var expenses bytes.Buffer
	require.NoError(t, f.reports.Export(ctx, &expenses, &ExportInput{Window: w, Format: export.FormatCSV, Dataset: "expenses"}))
	assert.Contains(t, expenses.String(), "Soap")

	err = f.reports.Export(ctx, &bytes.Buffer{}, &ExportInput{Window: w, Format: export.FormatCSV, Dataset: DatasetAll})
	requireCode(t, err, http.StatusUnprocessableEntity)

	var book bytes.Buffer
	require.NoError(t, f.reports.Export(ctx, &book, &ExportInput{Window: w, Format: export.FormatXLSX}))
	assert.True(t, bytes.HasPrefix(book.Bytes(), []byte("PK")))
}

func TestDashboardStats(t *testing.T) {
	f := newFixture(t, nil)
	now := time.Now().UTC()
	seedDay(t, f, now)
	f.customer(t, "Adama Koroma", "")

	stats, err := f.dashboard.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8000), stats.TotalRevenue)
	assert.Equal(t, int64(1), stats.PendingOrders)
	assert.Equal(t, int64(3), stats.CompletedToday)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	require.NotNil(t, stats.Stock)
	assert.Equal(t, 45, stats.Stock.TotalUnits)
	require.NotNil(t, stats.LoanAlerts)
	assert.Empty(t, stats.LoanAlerts.Overdue)
}
