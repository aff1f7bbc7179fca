package service

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/montanaflynn/stats"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/export"
	"github.com/sangkips/laundromart-api/pkg/money"
	"golang.org/x/sync/errgroup"
)

const exportTimeLayout = "2006-01-02 15:04"

// ReportService computes sales and cash-flow figures over time windows
type ReportService struct {
	reader repository.ReportReader
	loc    *time.Location
	now    clock
}

// NewReportService creates a new report service
func NewReportService(reader repository.ReportReader, loc *time.Location) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{reader: reader, loc: loc, now: systemClock}
}

// WindowQuery selects a named period or, for custom, an explicit date range
type WindowQuery struct {
	Period string
	Start  string
	End    string
}

// ResolveWindow turns a query into a concrete half-open window in the store's zone
func (s *ReportService) ResolveWindow(q WindowQuery) (ledger.Window, error) {
	period := ledger.Period(strings.ToLower(strings.TrimSpace(q.Period)))
	if period != ledger.PeriodCustom {
		w, err := ledger.PeriodWindow(period, s.now(), s.loc)
		if err != nil {
			return ledger.Window{}, apperror.NewFieldError("period", "Period must be today, week, month, year or custom")
		}
		return w, nil
	}

	var fieldErrs []apperror.FieldError
	start, err := dateparse.ParseIn(q.Start, s.loc)
	if err != nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "start", Message: "Start date is not a recognised date"})
	}
	end, err := dateparse.ParseIn(q.End, s.loc)
	if err != nil {
		fieldErrs = append(fieldErrs, apperror.FieldError{Field: "end", Message: "End date is not a recognised date"})
	}
	if len(fieldErrs) > 0 {
		return ledger.Window{}, apperror.NewValidationError(fieldErrs)
	}
	w, err := ledger.CustomWindow(start, end, s.loc)
	if err != nil {
		return ledger.Window{}, apperror.NewFieldError("end", "End date cannot be before the start date")
	}
	return w, nil
}

// ReportSummary is the reduced view of one window
type ReportSummary struct {
	Window          ledger.Window    `json:"window"`
	Revenue         int64            `json:"-"`
	ReceiptCount    int              `json:"receipt_count"`
	Expenses        int64            `json:"-"`
	CashToBank      int64            `json:"-"`
	Profit          int64            `json:"-"`
	OrderCount      int              `json:"order_count"`
	CompletedOrders int              `json:"completed_orders"`
	OrdersByType    map[string]int   `json:"orders_by_type"`
	ExpensesByCat   map[string]int64 `json:"-"`
	AverageSale     int64            `json:"-"`
	MedianSale      int64            `json:"-"`
}

func (r ReportSummary) MarshalJSON() ([]byte, error) {
	type Alias ReportSummary
	byCat := make(map[string]float64, len(r.ExpensesByCat))
	for k, v := range r.ExpensesByCat {
		byCat[k] = money.ToDecimal(v)
	}
	return json.Marshal(&struct {
		Alias
		Revenue       float64            `json:"revenue"`
		Expenses      float64            `json:"expenses"`
		CashToBank    float64            `json:"cash_to_bank"`
		Profit        float64            `json:"profit"`
		ExpensesByCat map[string]float64 `json:"expenses_by_category"`
		AverageSale   float64            `json:"average_sale"`
		MedianSale    float64            `json:"median_sale"`
	}{
		Alias:         Alias(r),
		Revenue:       money.ToDecimal(r.Revenue),
		Expenses:      money.ToDecimal(r.Expenses),
		CashToBank:    money.ToDecimal(r.CashToBank),
		Profit:        money.ToDecimal(r.Profit),
		ExpensesByCat: byCat,
		AverageSale:   money.ToDecimal(r.AverageSale),
		MedianSale:    money.ToDecimal(r.MedianSale),
	})
}

type windowRows struct {
	receipts  []repository.ReceiptRow
	expenses  []repository.ExpenseRow
	transfers []repository.TransferRow
	orders    []repository.OrderRow
}

func (s *ReportService) load(ctx context.Context, w ledger.Window) (*windowRows, error) {
	rows := &windowRows{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rows.receipts, err = s.reader.Receipts(gctx, w)
		return err
	})
	g.Go(func() (err error) {
		rows.expenses, err = s.reader.Expenses(gctx, w)
		return err
	})
	g.Go(func() (err error) {
		rows.transfers, err = s.reader.Transfers(gctx, w)
		return err
	})
	g.Go(func() (err error) {
		rows.orders, err = s.reader.Orders(gctx, w)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Summary reduces every collection inside the window
func (s *ReportService) Summary(ctx context.Context, w ledger.Window) (*ReportSummary, error) {
	rows, err := s.load(ctx, w)
	if err != nil {
		return nil, err
	}

	out := &ReportSummary{
		Window:        w,
		OrdersByType:  map[string]int{},
		ExpensesByCat: map[string]int64{},
	}
	sales := make(stats.Float64Data, 0, len(rows.receipts))
	for _, r := range rows.receipts {
		out.Revenue += r.AmountPaid
		sales = append(sales, float64(r.AmountPaid))
	}
	out.ReceiptCount = len(rows.receipts)
	for _, e := range rows.expenses {
		out.Expenses += e.Amount
		out.ExpensesByCat[e.Category] += e.Amount
	}
	for _, t := range rows.transfers {
		out.CashToBank += t.Amount
	}
	out.Profit = out.Revenue - out.Expenses

	for _, o := range rows.orders {
		out.OrderCount++
		out.OrdersByType[o.OrderType]++
		if o.Status == enum.OrderStatusCompleted.String() {
			out.CompletedOrders++
		}
	}

	if len(sales) > 0 {
		mean, _ := sales.Mean()
		median, _ := sales.Median()
		out.AverageSale = roundCents(mean)
		out.MedianSale = roundCents(median)
	}
	return out, nil
}

func roundCents(v float64) int64 {
	if v < 0 {
		return -int64(-v + 0.5)
	}
	return int64(v + 0.5)
}

// PeriodSales is the receipt count and takings for one named period
type PeriodSales struct {
	Period ledger.Period `json:"period"`
	Window ledger.Window `json:"window"`
	Count  int           `json:"count"`
	Total  int64         `json:"-"`
}

func (p PeriodSales) MarshalJSON() ([]byte, error) {
	type Alias PeriodSales
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(p),
		Total: money.ToDecimal(p.Total),
	})
}

// SalesPeriods returns takings for today, this week, this month and this year
func (s *ReportService) SalesPeriods(ctx context.Context) ([]PeriodSales, error) {
	now := s.now()
	periods := []ledger.Period{ledger.PeriodToday, ledger.PeriodWeek, ledger.PeriodMonth, ledger.PeriodYear}
	out := make([]PeriodSales, 0, len(periods))
	windows := make([]ledger.Window, 0, len(periods))
	for _, p := range periods {
		w, err := ledger.PeriodWindow(p, now, s.loc)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
		out = append(out, PeriodSales{Period: p, Window: w})
	}

	receipts, err := s.reader.Receipts(ctx, span(windows))
	if err != nil {
		return nil, err
	}
	for i := range out {
		for _, r := range receipts {
			if out[i].Window.Contains(r.IssuedAt) {
				out[i].Count++
				out[i].Total += r.AmountPaid
			}
		}
	}
	return out, nil
}

// span is the smallest window covering every w.
func span(ws []ledger.Window) ledger.Window {
	var out ledger.Window
	for i, w := range ws {
		if i == 0 || w.Start.Before(out.Start) {
			out.Start = w.Start
		}
		if i == 0 || w.End.After(out.End) {
			out.End = w.End
		}
	}
	return out
}

// Series granularities
const (
	SeriesDaily   = "daily"
	SeriesWeekly  = "weekly"
	SeriesMonthly = "monthly"
)

// SeriesPoint is one bucket of a revenue series
type SeriesPoint struct {
	Label    string        `json:"label"`
	Window   ledger.Window `json:"window"`
	Revenue  int64         `json:"-"`
	Expenses int64         `json:"-"`
	Count    int           `json:"count"`
}

func (p SeriesPoint) MarshalJSON() ([]byte, error) {
	type Alias SeriesPoint
	return json.Marshal(&struct {
		Alias
		Revenue  float64 `json:"revenue"`
		Expenses float64 `json:"expenses"`
	}{
		Alias:    Alias(p),
		Revenue:  money.ToDecimal(p.Revenue),
		Expenses: money.ToDecimal(p.Expenses),
	})
}

// RevenueSeries buckets takings and spend: 7 days, 8 weeks or 6 months
func (s *ReportService) RevenueSeries(ctx context.Context, granularity string) ([]SeriesPoint, error) {
	now := s.now()
	var buckets []ledger.Bucket
	switch strings.ToLower(granularity) {
	case SeriesDaily, "":
		buckets = ledger.DailyBuckets(now, s.loc, 7)
	case SeriesWeekly:
		buckets = ledger.WeeklyBuckets(now, s.loc, 8)
	case SeriesMonthly:
		buckets = ledger.MonthlyBuckets(now, s.loc, 6)
	default:
		return nil, apperror.NewFieldError("granularity", "Granularity must be daily, weekly or monthly")
	}

	windows := make([]ledger.Window, len(buckets))
	for i, b := range buckets {
		windows[i] = b.Window
	}
	all := span(windows)

	var receipts []repository.ReceiptRow
	var expenses []repository.ExpenseRow
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		receipts, err = s.reader.Receipts(gctx, all)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.reader.Expenses(gctx, all)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]SeriesPoint, len(buckets))
	for i, b := range buckets {
		out[i] = SeriesPoint{Label: b.Label, Window: b.Window}
		for _, r := range receipts {
			if b.Contains(r.IssuedAt) {
				out[i].Revenue += r.AmountPaid
				out[i].Count++
			}
		}
		for _, e := range expenses {
			if b.Contains(e.ExpenseDate) {
				out[i].Expenses += e.Amount
			}
		}
	}
	return out, nil
}

// Export datasets
const (
	DatasetReceipts  = "receipts"
	DatasetExpenses  = "expenses"
	DatasetTransfers = "transfers"
	DatasetAll       = "all"
)

// ExportInput selects what to export
type ExportInput struct {
	Window  ledger.Window
	Dataset string
	Format  export.Format
}

// Filename names the download for the input
func (in *ExportInput) Filename() string {
	ds := in.Dataset
	if ds == "" {
		ds = DatasetAll
	}
	return "report-" + ds + "-" + in.Window.Start.Format("20060102") + "." + in.Format.Ext()
}

// Export writes receipts, expenses or transfers for the window. CSV carries a
// single dataset; a workbook may carry all three as sheets.
func (s *ReportService) Export(ctx context.Context, w io.Writer, in *ExportInput) error {
	dataset := strings.ToLower(in.Dataset)
	if dataset == "" {
		dataset = DatasetAll
		if in.Format == export.FormatCSV {
			dataset = DatasetReceipts
		}
		in.Dataset = dataset
	}
	switch dataset {
	case DatasetReceipts, DatasetExpenses, DatasetTransfers:
	case DatasetAll:
		if in.Format == export.FormatCSV {
			return apperror.NewFieldError("dataset", "CSV exports a single dataset")
		}
	default:
		return apperror.NewFieldError("dataset", "Dataset must be receipts, expenses, transfers or all")
	}

	rows, err := s.load(ctx, in.Window)
	if err != nil {
		return err
	}

	sheets := map[string]export.Sheet{
		DatasetReceipts:  {Name: "Receipts", Records: s.receiptRecords(rows.receipts)},
		DatasetExpenses:  {Name: "Expenses", Records: s.expenseRecords(rows.expenses)},
		DatasetTransfers: {Name: "Cash to Bank", Records: s.transferRecords(rows.transfers)},
	}
	if in.Format == export.FormatCSV {
		return export.WriteCSV(w, sheets[dataset])
	}
	if dataset == DatasetAll {
		return export.WriteXLSX(w, sheets[DatasetReceipts], sheets[DatasetExpenses], sheets[DatasetTransfers])
	}
	return export.WriteXLSX(w, sheets[dataset])
}

func (s *ReportService) receiptRecords(rows []repository.ReceiptRow) []export.ReceiptRecord {
	out := make([]export.ReceiptRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, export.ReceiptRecord{
			IssuedAt:      r.IssuedAt.In(s.loc).Format(exportTimeLayout),
			ReceiptNumber: r.ReceiptNumber,
			OrderNumber:   r.OrderNumber,
			OrderType:     r.OrderType,
			PaymentMethod: r.PaymentMethod,
			OrderTotal:    money.ToDecimal(r.OrderTotal),
			AmountPaid:    money.ToDecimal(r.AmountPaid),
			ChangeGiven:   money.ToDecimal(r.ChangeGiven),
		})
	}
	return out
}

func (s *ReportService) expenseRecords(rows []repository.ExpenseRow) []export.ExpenseRecord {
	out := make([]export.ExpenseRecord, 0, len(rows))
	for _, e := range rows {
		out = append(out, export.ExpenseRecord{
			Date:        e.ExpenseDate.Format("2006-01-02"),
			Description: e.Description,
			Category:    e.Category,
			Amount:      money.ToDecimal(e.Amount),
		})
	}
	return out
}

func (s *ReportService) transferRecords(rows []repository.TransferRow) []export.TransferRecord {
	out := make([]export.TransferRecord, 0, len(rows))
	for _, t := range rows {
		ref := ""
		if t.ReferenceNumber != nil {
			ref = *t.ReferenceNumber
		}
		out = append(out, export.TransferRecord{
			Date:      t.TransferDate.Format("2006-01-02"),
			BankName:  t.BankName,
			Reference: ref,
			Amount:    money.ToDecimal(t.Amount),
		})
	}
	return out
}
