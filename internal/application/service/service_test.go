package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/access"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/laundromart-api/internal/infrastructure/repository"
	"github.com/sangkips/laundromart-api/pkg/apperror"
	"github.com/sangkips/laundromart-api/pkg/idgen"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/notify"
	"github.com/sangkips/laundromart-api/pkg/printer"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyPickup(ctx context.Context, n notify.PickupNotice) error {
	return m.Called(ctx, n).Error(0)
}

type mockPrinter struct {
	mock.Mock
}

func (m *mockPrinter) Print(ctx context.Context, data []byte) error {
	return m.Called(ctx, data).Error(0)
}

func (m *mockPrinter) Ready() bool  { return true }
func (m *mockPrinter) Kind() string { return "network" }

var (
	admin = access.Principal{UserID: uuid.New(), Role: enum.AppRoleAdmin}
	staff = access.Principal{UserID: uuid.New(), Role: enum.AppRoleStaff}
)

type fixture struct {
	db        *gorm.DB
	notifier  *mockNotifier
	customers *CustomerService
	merch     *MerchandiseService
	laundry   *LaundryCatalogService
	orders    *OrderService
	receipts  *ReceiptService
	loans     *LoanService
	credits   *CreditService
	expenses  *ExpenseService
	reports   *ReportService
	dashboard *DashboardService
	roles     *RoleService
}

func newFixture(t *testing.T, p printer.Printer) *fixture {
	t.Helper()
	db := dbtest.New(t)
	readDB, err := database.NewReadDB(db)
	require.NoError(t, err)
	ids, err := idgen.New(1)
	require.NoError(t, err)
	if p == nil {
		p = printer.Null{}
	}

	pub := events.Discard{}
	store := StoreInfo{Name: "Fresh Fold", Phone: "+232 76 000000"}
	customerRepo := repository.NewCustomerRepository(db)
	merchRepo := repository.NewMerchandiseRepository(db)
	laundryRepo := repository.NewLaundryServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	loanRepo := repository.NewLoanRepository(db)
	creditRepo := repository.NewCreditRepository(db)
	reader := repository.NewReportReader(readDB)
	notifier := &mockNotifier{}

	f := &fixture{
		db:        db,
		notifier:  notifier,
		customers: NewCustomerService(customerRepo),
		merch:     NewMerchandiseService(merchRepo, pub, 3),
		laundry:   NewLaundryCatalogService(laundryRepo),
		orders:    NewOrderService(orderRepo, customerRepo, merchRepo, laundryRepo, ledger.NoTax(), ids, notifier, pub, store),
		receipts:  NewReceiptService(receiptRepo, orderRepo, ids, NewPrinterService(p, money.NewFormatter("SLE"), store, 32), pub),
		loans:     NewLoanService(loanRepo, customerRepo, creditRepo, reader, pub, time.UTC),
		credits:   NewCreditService(creditRepo, customerRepo, orderRepo, pub),
		expenses:  NewExpenseService(repository.NewExpenseRepository(db), repository.NewCashToBankRepository(db), pub),
		reports:   NewReportService(reader, time.UTC),
		roles:     NewRoleService(repository.NewRoleRepository(db), pub),
	}
	f.dashboard = NewDashboardService(orderRepo, receiptRepo, customerRepo, f.merch, f.loans, time.UTC)
	return f
}

func strPtr(s string) *string         { return &s }
func floatPtr(v float64) *float64     { return &v }
func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func (f *fixture) customer(t *testing.T, name, email string) *entity.Customer {
	t.Helper()
	in := &CreateCustomerInput{Name: name}
	if email != "" {
		in.Email = strPtr(email)
	}
	c, err := f.customers.CreateCustomer(context.Background(), in)
	require.NoError(t, err)
	return c
}

func (f *fixture) merchandise(t *testing.T, qty int, price float64) *entity.Merchandise {
	t.Helper()
	m, err := f.merch.CreateMerchandise(context.Background(), &CreateMerchandiseInput{
		Name: "Bleach", Category: "cleaning", Quantity: qty, UnitPrice: price,
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) washService(t *testing.T, price float64) *entity.LaundryService {
	t.Helper()
	s, err := f.laundry.CreateService(context.Background(), &LaundryServiceInput{
		Name: strPtr("Wash & Fold"), PricePerUnit: floatPtr(price), UnitType: strPtr("kg"),
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) merchOrder(t *testing.T, customerID *uuid.UUID, m *entity.Merchandise, qty int) *entity.Order {
	t.Helper()
	o, err := f.orders.CreateOrder(context.Background(), staff, &CreateOrderInput{
		CustomerID: customerID,
		OrderType:  enum.OrderTypeMerchandise,
		Items: []OrderItemInput{{
			ItemType: enum.ItemTypeMerchandise, MerchandiseID: uuidPtr(m.ID), Quantity: qty,
		}},
	})
	require.NoError(t, err)
	return o
}

func requireCode(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}

func intPtr(v int) *int { return &v }
