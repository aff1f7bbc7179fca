package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/pkg/money"
	"golang.org/x/sync/errgroup"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	orderRepo    repository.OrderRepository
	receiptRepo  repository.ReceiptRepository
	customerRepo repository.CustomerRepository
	merchandise  *MerchandiseService
	loans        *LoanService
	loc          *time.Location
	now          clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	orderRepo repository.OrderRepository,
	receiptRepo repository.ReceiptRepository,
	customerRepo repository.CustomerRepository,
	merchandise *MerchandiseService,
	loans *LoanService,
	loc *time.Location,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		orderRepo:    orderRepo,
		receiptRepo:  receiptRepo,
		customerRepo: customerRepo,
		merchandise:  merchandise,
		loans:        loans,
		loc:          loc,
		now:          systemClock,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalRevenue   int64          `json:"-"`
	PendingOrders  int64          `json:"pending_orders"`
	CompletedToday int64          `json:"completed_today"`
	TotalCustomers int64          `json:"total_customers"`
	Stock          *StockOverview `json:"stock"`
	LoanAlerts     *LoanAlerts    `json:"loan_alerts"`
}

func (d DashboardStats) MarshalJSON() ([]byte, error) {
	type Alias DashboardStats
	return json.Marshal(&struct {
		Alias
		TotalRevenue float64 `json:"total_revenue"`
	}{
		Alias:        Alias(d),
		TotalRevenue: money.ToDecimal(d.TotalRevenue),
	})
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	today, err := ledger.PeriodWindow(ledger.PeriodToday, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.receiptRepo.SumAmountPaid(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.PendingOrders, err = s.orderRepo.CountByStatus(gctx, enum.OrderStatusPending, enum.OrderStatusProcessing)
		return err
	})
	g.Go(func() (err error) {
		stats.CompletedToday, err = s.orderRepo.CountCompletedBetween(gctx, today.Start, today.End)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalCustomers, err = s.customerRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.Stock, err = s.merchandise.StockOverview(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.LoanAlerts, err = s.loans.Alerts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
