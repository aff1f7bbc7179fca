package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/laundromart-api/internal/domain/entity"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/laundromart-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedMerchandise(t *testing.T, db *gorm.DB, qty int) *entity.Merchandise {
	t.Helper()
	item := &entity.Merchandise{Name: "Detergent", Category: "cleaning", Quantity: qty, UnitPrice: 1500}
	require.NoError(t, repository.NewMerchandiseRepository(db).Create(context.Background(), item))
	return item
}

func merchandiseOrder(m *entity.Merchandise, qty int) *entity.Order {
	id := m.ID
	return &entity.Order{
		OrderNumber: "ORD-" + uuid.NewString()[:8],
		OrderType:   enum.OrderTypeMerchandise,
		Status:      enum.OrderStatusPending,
		TaxPolicy:   enum.TaxPolicyNone,
		Subtotal:    m.UnitPrice * int64(qty),
		Total:       m.UnitPrice * int64(qty),
		Items: []entity.OrderItem{{
			ItemType:      enum.ItemTypeMerchandise,
			MerchandiseID: &id,
			Description:   m.Name,
			Quantity:      qty,
			UnitPrice:     m.UnitPrice,
			Total:         m.UnitPrice * int64(qty),
		}},
	}
}

func stockOf(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	m, err := repository.NewMerchandiseRepository(db).GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Quantity
}

func TestOrderRepository_StockIsFlooredAtZero(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	orders := repository.NewOrderRepository(db)
	item := seedMerchandise(t, db, 5)

	first := merchandiseOrder(item, 3)
	require.NoError(t, orders.CreateWithItems(ctx, first))
	assert.Equal(t, 2, stockOf(t, db, item.ID))
	assert.Equal(t, 3, first.Items[0].StockDeducted)

	second := merchandiseOrder(item, 3)
	require.NoError(t, orders.CreateWithItems(ctx, second))
	assert.Equal(t, 0, stockOf(t, db, item.ID))
	assert.Equal(t, 2, second.Items[0].StockDeducted)

	loaded, err := orders.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 3, loaded.Items[0].Quantity)
}

func TestOrderRepository_CancelRestoresDeductedStock(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	orders := repository.NewOrderRepository(db)
	item := seedMerchandise(t, db, 2)

	order := merchandiseOrder(item, 5)
	require.NoError(t, orders.CreateWithItems(ctx, order))
	assert.Equal(t, 0, stockOf(t, db, item.ID))

	require.NoError(t, orders.Cancel(ctx, order.ID, enum.OrderStatusPending))
	assert.Equal(t, 2, stockOf(t, db, item.ID))

	err := orders.Cancel(ctx, order.ID, enum.OrderStatusPending)
	assert.ErrorIs(t, err, domainRepo.ErrStateChanged)
	assert.Equal(t, 2, stockOf(t, db, item.ID))
}

func TestOrderRepository_UnknownMerchandiseRollsBack(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	orders := repository.NewOrderRepository(db)

	ghost := &entity.Merchandise{ID: uuid.New(), Name: "Ghost", UnitPrice: 100}
	err := orders.CreateWithItems(ctx, merchandiseOrder(ghost, 1))
	assert.ErrorIs(t, err, domainRepo.ErrReferenceMissing)

	n, err := orders.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOrderRepository_UpdateStatusIsGuarded(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	orders := repository.NewOrderRepository(db)
	order := merchandiseOrder(seedMerchandise(t, db, 10), 1)
	require.NoError(t, orders.CreateWithItems(ctx, order))

	require.NoError(t, orders.UpdateStatus(ctx, order.ID, enum.OrderStatusPending, enum.OrderStatusReady))
	err := orders.UpdateStatus(ctx, order.ID, enum.OrderStatusPending, enum.OrderStatusProcessing)
	assert.ErrorIs(t, err, domainRepo.ErrStateChanged)

	n, err := orders.CountByStatus(ctx, enum.OrderStatusReady)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestReceiptRepository_IssueCompletesOrderOnce(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	orders := repository.NewOrderRepository(db)
	receipts := repository.NewReceiptRepository(db)

	order := merchandiseOrder(seedMerchandise(t, db, 10), 2)
	require.NoError(t, orders.CreateWithItems(ctx, order))

	receipt := &entity.Receipt{
		ReceiptNumber: "RCP-1",
		OrderID:       order.ID,
		PaymentMethod: enum.PaymentMethodCash,
		AmountPaid:    5000,
		ChangeGiven:   2000,
		IssuedAt:      time.Now().UTC(),
	}
	require.NoError(t, receipts.Issue(ctx, receipt))

	loaded, err := orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCompleted, loaded.Status)

	again := &entity.Receipt{
		ReceiptNumber: "RCP-2",
		OrderID:       order.ID,
		PaymentMethod: enum.PaymentMethodCash,
		AmountPaid:    3000,
		IssuedAt:      time.Now().UTC(),
	}
	assert.ErrorIs(t, receipts.Issue(ctx, again), domainRepo.ErrStateChanged)

	byOrder, err := receipts.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, byOrder)
	assert.Equal(t, "RCP-1", byOrder.ReceiptNumber)
	require.NotNil(t, byOrder.Order)
	assert.Len(t, byOrder.Order.Items, 1)

	total, err := receipts.SumAmountPaid(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, total)
}

func TestReceiptRepository_IssueForMissingOrder(t *testing.T) {
	db := dbtest.New(t)
	receipts := repository.NewReceiptRepository(db)

	err := receipts.Issue(context.Background(), &entity.Receipt{
		ReceiptNumber: "RCP-X",
		OrderID:       uuid.New(),
		PaymentMethod: enum.PaymentMethodCard,
		IssuedAt:      time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domainRepo.ErrReferenceMissing)
}

func seedCustomerLoan(t *testing.T, db *gorm.DB, amount int64) *entity.CustomerLoan {
	t.Helper()
	customer := &entity.Customer{Name: "Aminata Kamara"}
	require.NoError(t, repository.NewCustomerRepository(db).Create(context.Background(), customer))
	loan := &entity.CustomerLoan{
		CustomerID: customer.ID,
		Amount:     amount,
		Balance:    amount,
		Reason:     "school fees",
		LoanDate:   time.Now().UTC(),
		Status:     enum.LoanStatusActive,
	}
	require.NoError(t, repository.NewLoanRepository(db).CreateCustomerLoan(context.Background(), loan))
	return loan
}

func TestLoanRepository_PaymentsReduceBalanceUntilPaid(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	loans := repository.NewLoanRepository(db)
	loan := seedCustomerLoan(t, db, 100000)

	bal, err := loans.RecordPayment(ctx, enum.LoanKindCustomer, &entity.LoanPayment{
		LoanID: loan.ID, Amount: 40000, PaymentDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 60000, bal.Balance)
	assert.Equal(t, enum.LoanStatusActive, bal.Status)

	bal, err = loans.RecordPayment(ctx, enum.LoanKindCustomer, &entity.LoanPayment{
		LoanID: loan.ID, Amount: 60000, PaymentDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 0, bal.Balance)
	assert.Equal(t, enum.LoanStatusPaid, bal.Status)

	_, err = loans.RecordPayment(ctx, enum.LoanKindCustomer, &entity.LoanPayment{
		LoanID: loan.ID, Amount: 100, PaymentDate: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domainRepo.ErrStateChanged)

	payments, err := loans.ListPayments(ctx, enum.LoanKindCustomer, loan.ID)
	require.NoError(t, err)
	assert.Len(t, payments, 2)
}

func TestLoanRepository_ConcurrentPaymentsAreNotLost(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	loans := repository.NewLoanRepository(db)
	loan := seedCustomerLoan(t, db, 10000)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := loans.RecordPayment(ctx, enum.LoanKindCustomer, &entity.LoanPayment{
				LoanID: loan.ID, Amount: 1000, PaymentDate: time.Now().UTC(),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	loaded, err := loans.GetCustomerLoan(ctx, loan.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, loaded.Balance)
	assert.Equal(t, enum.LoanStatusPaid, loaded.Status)
	assert.Len(t, loaded.Payments, 10)
}

func TestLoanRepository_OverpaymentMarksPaid(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	loans := repository.NewLoanRepository(db)

	loan := &entity.BusinessLoan{
		LenderName: "Rokel Bank",
		Amount:     5000,
		Balance:    5000,
		LoanDate:   time.Now().UTC(),
		Status:     enum.LoanStatusActive,
	}
	require.NoError(t, loans.CreateBusinessLoan(ctx, loan))

	bal, err := loans.RecordPayment(ctx, enum.LoanKindBusiness, &entity.LoanPayment{
		LoanID: loan.ID, Amount: 6000, PaymentDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.EqualValues(t, -1000, bal.Balance)
	assert.Equal(t, enum.LoanStatusPaid, bal.Status)
}

func TestLoanRepository_DeleteRefusedWithPayments(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	loans := repository.NewLoanRepository(db)

	paid := seedCustomerLoan(t, db, 2000)
	_, err := loans.RecordPayment(ctx, enum.LoanKindCustomer, &entity.LoanPayment{
		LoanID: paid.ID, Amount: 500, PaymentDate: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, loans.Delete(ctx, enum.LoanKindCustomer, paid.ID), domainRepo.ErrHasDependents)

	fresh := seedCustomerLoan(t, db, 2000)
	require.NoError(t, loans.Delete(ctx, enum.LoanKindCustomer, fresh.ID))
	gone, err := loans.GetCustomerLoan(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	assert.ErrorIs(t, loans.Delete(ctx, enum.LoanKindCustomer, uuid.New()), domainRepo.ErrReferenceMissing)
}

func TestLoanRepository_Outstanding(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	loans := repository.NewLoanRepository(db)
	seedCustomerLoan(t, db, 2000)
	seedCustomerLoan(t, db, 3000)

	agg, err := loans.Outstanding(ctx, enum.LoanKindCustomer)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, agg.Total)
	assert.EqualValues(t, 2, agg.Count)
}

func TestCreditRepository_RedeemOnce(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	credits := repository.NewCreditRepository(db)

	customer := &entity.Customer{Name: "Fatmata"}
	require.NoError(t, repository.NewCustomerRepository(db).Create(ctx, customer))
	credit := &entity.CustomerCredit{CustomerID: customer.ID, Amount: 700, Status: enum.CreditStatusPending}
	require.NoError(t, credits.Create(ctx, credit))

	agg, err := credits.Pending(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 700, agg.Total)

	require.NoError(t, credits.Redeem(ctx, credit.ID, time.Now().UTC()))
	assert.ErrorIs(t, credits.Redeem(ctx, credit.ID, time.Now().UTC()), domainRepo.ErrStateChanged)
	assert.ErrorIs(t, credits.Redeem(ctx, uuid.New(), time.Now().UTC()), domainRepo.ErrReferenceMissing)

	loaded, err := credits.GetByID(ctx, credit.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.CreditStatusRedeemed, loaded.Status)
	assert.NotNil(t, loaded.RedeemedAt)
}

func TestRoleRepository(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	roles := repository.NewRoleRepository(db)
	user := uuid.New()

	role, err := roles.RoleOf(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, enum.AppRoleStaff, role)

	require.NoError(t, database.GrantAdmin(db, user, "owner@example.com"))
	role, err = roles.RoleOf(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, enum.AppRoleAdmin, role)

	err = roles.Assign(ctx, &entity.UserRole{UserID: user, Role: enum.AppRoleAdmin})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, roles.Remove(ctx, user, enum.AppRoleAdmin))
	assert.ErrorIs(t, roles.Remove(ctx, user, enum.AppRoleAdmin), domainRepo.ErrReferenceMissing)
}

func TestIdempotencyRepository_DeleteExpired(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	keys := repository.NewIdempotencyRepository(db)
	user := uuid.New()
	now := time.Now().UTC()

	for key, expires := range map[string]time.Time{"old": now.Add(-time.Hour), "new": now.Add(time.Hour)} {
		ok, err := keys.Reserve(ctx, &entity.IdempotencyKey{
			Key: key, UserID: user, Endpoint: "POST /api/v1/orders", ExpiresAt: expires,
		}, now.Add(-2*time.Hour))
		require.NoError(t, err)
		require.True(t, ok)
	}

	n, err := keys.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	gone, err := keys.GetByKey(ctx, "old", user)
	require.NoError(t, err)
	assert.Nil(t, gone)
	kept, err := keys.GetByKey(ctx, "new", user)
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

func TestIdempotencyRepository_ReserveCompleteRelease(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	keys := repository.NewIdempotencyRepository(db)
	user := uuid.New()
	now := time.Now().UTC()
	reservation := func(at time.Time) *entity.IdempotencyKey {
		return &entity.IdempotencyKey{
			Key: "order-1", UserID: user, Endpoint: "POST /api/v1/orders", ExpiresAt: at.Add(time.Minute),
		}
	}

	ok, err := keys.Reserve(ctx, reservation(now), now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = keys.Reserve(ctx, reservation(now), now)
	require.NoError(t, err)
	assert.False(t, ok, "a live reservation holds the key")

	other := reservation(now)
	other.UserID = uuid.New()
	ok, err = keys.Reserve(ctx, other, now)
	require.NoError(t, err)
	assert.True(t, ok, "keys are scoped per user")

	// releasing frees the key for a retry
	require.NoError(t, keys.Release(ctx, "order-1", user))
	ok, err = keys.Reserve(ctx, reservation(now), now)
	require.NoError(t, err)
	require.True(t, ok)

	done := reservation(now)
	done.ResponseCode = 201
	done.ResponseBody = `{"success":true}`
	done.ExpiresAt = now.Add(24 * time.Hour)
	require.NoError(t, keys.Complete(ctx, done))

	// a completed entry survives release and blocks new reservations
	require.NoError(t, keys.Release(ctx, "order-1", user))
	stored, err := keys.GetByKey(ctx, "order-1", user)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsPending())
	assert.Equal(t, 201, stored.ResponseCode)

	ok, err = keys.Reserve(ctx, reservation(now), now)
	require.NoError(t, err)
	assert.False(t, ok)

	// once expired the entry is replaced by a fresh reservation
	later := now.Add(25 * time.Hour)
	ok, err = keys.Reserve(ctx, reservation(later), later)
	require.NoError(t, err)
	assert.True(t, ok)

	missing := reservation(now)
	missing.Key = "never-reserved"
	assert.ErrorIs(t, keys.Complete(ctx, missing), domainRepo.ErrStateChanged)
}

func TestReportReader_WindowAndHistory(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repository.NewExpenseRepository(db).Create(ctx, &entity.Expense{
		Description: "Soap", Category: "supplies", Amount: 2500, ExpenseDate: now,
	}))
	require.NoError(t, repository.NewExpenseRepository(db).Create(ctx, &entity.Expense{
		Description: "Rent", Category: "rent", Amount: 90000, ExpenseDate: now.AddDate(0, -2, 0),
	}))

	loans := repository.NewLoanRepository(db)
	loan := seedCustomerLoan(t, db, 3000)
	_, err := loans.RecordPayment(ctx, enum.LoanKindCustomer, &entity.LoanPayment{
		LoanID: loan.ID, Amount: 1000, PaymentDate: now.AddDate(0, 0, -1),
	})
	require.NoError(t, err)
	biz := &entity.BusinessLoan{LenderName: "Rokel Bank", Amount: 5000, Balance: 5000, LoanDate: now, Status: enum.LoanStatusActive}
	require.NoError(t, loans.CreateBusinessLoan(ctx, biz))
	_, err = loans.RecordPayment(ctx, enum.LoanKindBusiness, &entity.LoanPayment{
		LoanID: biz.ID, Amount: 2000, PaymentDate: now,
	})
	require.NoError(t, err)

	sqlxDB, err := database.NewReadDB(db)
	require.NoError(t, err)
	reader := repository.NewReportReader(sqlxDB)

	window := ledger.Window{Start: now.Add(-24 * time.Hour), End: now.Add(time.Hour)}
	expenses, err := reader.Expenses(ctx, window)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Soap", expenses[0].Description)

	history, err := reader.PaymentHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, enum.LoanKindBusiness, history[0].LoanKind)
	assert.Equal(t, "Rokel Bank", history[0].Party)
	assert.Equal(t, "Aminata Kamara", history[1].Party)
}

func TestOrderRepository_ConcurrentOrdersDeductEveryUnitOnce(t *testing.T) {
	for _, tc := range []struct {
		name  string
		stock int
		want  int
	}{
		{name: "enough stock", stock: 30, want: 12},
		{name: "oversold", stock: 10, want: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			db := dbtest.New(t)
			ctx := context.Background()
			orders := repository.NewOrderRepository(db)
			item := seedMerchandise(t, db, tc.stock)

			const buyers, each = 6, 3
			var wg sync.WaitGroup
			deducted := make(chan int, buyers)
			errs := make(chan error, buyers)
			for i := 0; i < buyers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					order := merchandiseOrder(item, each)
					errs <- orders.CreateWithItems(ctx, order)
					deducted <- order.Items[0].StockDeducted
				}()
			}
			wg.Wait()
			close(errs)
			close(deducted)
			for err := range errs {
				require.NoError(t, err)
			}
			total := 0
			for n := range deducted {
				total += n
			}

			assert.Equal(t, tc.want, stockOf(t, db, item.ID))
			assert.Equal(t, tc.stock-tc.want, total)
		})
	}
}

func TestMerchandiseRepository_UpdateGuardsCountedQuantity(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	merch := repository.NewMerchandiseRepository(db)
	item := seedMerchandise(t, db, 5)

	stale := *item
	require.NoError(t, merch.AdjustStock(ctx, item.ID, -3))

	stale.Name = "Detergent 2kg"
	require.NoError(t, merch.Update(ctx, &stale, nil))
	assert.Equal(t, 2, stockOf(t, db, item.ID))

	stale.Quantity = 9
	from := 5
	err := merch.Update(ctx, &stale, &from)
	assert.ErrorIs(t, err, domainRepo.ErrStateChanged)
	assert.Equal(t, 2, stockOf(t, db, item.ID))

	from = 2
	stale.Name = "Detergent 3kg"
	require.NoError(t, merch.Update(ctx, &stale, &from))
	loaded, err := merch.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, loaded.Quantity)
	assert.Equal(t, "Detergent 3kg", loaded.Name)
}
