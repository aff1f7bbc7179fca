// Package app wires repositories, services and handlers into a runnable API.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/config"
	"github.com/sangkips/laundromart-api/internal/domain/ledger"
	"github.com/sangkips/laundromart-api/internal/events"
	"github.com/sangkips/laundromart-api/internal/infrastructure/database"
	"github.com/sangkips/laundromart-api/internal/infrastructure/repository"
	"github.com/sangkips/laundromart-api/internal/jobs"
	"github.com/sangkips/laundromart-api/internal/presentation/http/handler"
	"github.com/sangkips/laundromart-api/internal/presentation/http/middleware"
	"github.com/sangkips/laundromart-api/internal/presentation/http/routes"
	"github.com/sangkips/laundromart-api/pkg/idgen"
	"github.com/sangkips/laundromart-api/pkg/money"
	"github.com/sangkips/laundromart-api/pkg/notify"
	"github.com/sangkips/laundromart-api/pkg/printer"
	"github.com/sangkips/laundromart-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options carries the pieces built outside the container. Notifier and
// Printer are derived from Config when nil.
type Options struct {
	Config   *config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Notifier notify.PickupNotifier
	Printer  printer.Printer
}

// App is the assembled service.
type App struct {
	Router    *gin.Engine
	Scheduler *jobs.Scheduler
	Bus       *events.Bus
	JWT       *utils.JWTManager
}

// New builds every layer. The rate limiter's sweeper stops when ctx ends.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	loc := cfg.App.Location()

	readDB, err := database.NewReadDB(opts.DB)
	if err != nil {
		return nil, errors.Wrap(err, "open read handle")
	}
	ids, err := idgen.New(cfg.App.SnowflakeNode)
	if err != nil {
		return nil, errors.Wrap(err, "order number generator")
	}
	pricing, err := ledger.NewPricingPolicy(cfg.Pricing.TaxPolicy, cfg.Pricing.TaxRate)
	if err != nil {
		return nil, errors.Wrap(err, "pricing policy")
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier, err = notify.New(notify.Config{
			Driver:        cfg.Notify.Driver,
			ResendAPIKey:  cfg.Notify.ResendAPIKey,
			ResendBaseURL: cfg.Notify.ResendBaseURL,
			From:          cfg.Notify.From,
			SMTPHost:      cfg.Notify.SMTPHost,
			SMTPPort:      cfg.Notify.SMTPPort,
			SMTPUsername:  cfg.Notify.SMTPUsername,
			SMTPPassword:  cfg.Notify.SMTPPassword,
			Timeout:       cfg.Notify.Timeout,
		})
		if err != nil {
			return nil, errors.Wrap(err, "pickup notifier")
		}
	}

	thermal := opts.Printer
	if thermal == nil {
		thermal, err = printer.New(printer.Config{
			Type:    cfg.Printer.Type,
			USBPath: cfg.Printer.USBPath,
			Address: cfg.Printer.Address,
		})
		if err != nil {
			log.Warn("printer unavailable, receipts will not print", zap.Error(err))
			thermal = printer.Null{}
		}
	}

	bus := events.NewBus()
	if err := events.AttachAuditLog(bus, log); err != nil {
		return nil, errors.Wrap(err, "audit log")
	}

	// Repositories
	customerRepo := repository.NewCustomerRepository(opts.DB)
	merchRepo := repository.NewMerchandiseRepository(opts.DB)
	laundryRepo := repository.NewLaundryServiceRepository(opts.DB)
	orderRepo := repository.NewOrderRepository(opts.DB)
	receiptRepo := repository.NewReceiptRepository(opts.DB)
	loanRepo := repository.NewLoanRepository(opts.DB)
	creditRepo := repository.NewCreditRepository(opts.DB)
	expenseRepo := repository.NewExpenseRepository(opts.DB)
	transferRepo := repository.NewCashToBankRepository(opts.DB)
	roleRepo := repository.NewRoleRepository(opts.DB)
	idempotencyRepo := repository.NewIdempotencyRepository(opts.DB)
	reportReader := repository.NewReportReader(readDB)

	// Services
	store := service.StoreInfo{Name: cfg.Store.Name, Address: cfg.Store.Address, Phone: cfg.Store.Phone}
	customerService := service.NewCustomerService(customerRepo)
	merchService := service.NewMerchandiseService(merchRepo, bus, cfg.Store.LowStockThreshold)
	laundryService := service.NewLaundryCatalogService(laundryRepo)
	orderService := service.NewOrderService(orderRepo, customerRepo, merchRepo, laundryRepo, pricing, ids, notifier, bus, store)
	printerService := service.NewPrinterService(thermal, money.NewFormatter(cfg.Store.Currency), store, cfg.Printer.Width)
	receiptService := service.NewReceiptService(receiptRepo, orderRepo, ids, printerService, bus)
	loanService := service.NewLoanService(loanRepo, customerRepo, creditRepo, reportReader, bus, loc)
	creditService := service.NewCreditService(creditRepo, customerRepo, orderRepo, bus)
	expenseService := service.NewExpenseService(expenseRepo, transferRepo, bus)
	reportService := service.NewReportService(reportReader, loc)
	dashboardService := service.NewDashboardService(orderRepo, receiptRepo, customerRepo, merchService, loanService, loc)
	roleService := service.NewRoleService(roleRepo, bus)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	handlers := &routes.Handlers{
		Customer:    handler.NewCustomerHandler(customerService),
		Merchandise: handler.NewMerchandiseHandler(merchService),
		Laundry:     handler.NewLaundryServiceHandler(laundryService),
		Order:       handler.NewOrderHandler(orderService, loc),
		Receipt:     handler.NewReceiptHandler(receiptService, loc),
		Loan:        handler.NewLoanHandler(loanService, loc),
		Credit:      handler.NewCreditHandler(creditService),
		Expense:     handler.NewExpenseHandler(expenseService, loc),
		Report:      handler.NewReportHandler(reportService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Role:        handler.NewRoleHandler(roleService),
		Printer:     handler.NewPrinterHandler(printerService),
	}

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Roles:           roleService,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     middleware.NewUserRateLimiter(ctx, middleware.RateLimiterConfigFrom(cfg.RateLimit)),
		Log:             log,
	})

	scheduler := jobs.New(idempotencyRepo, loanService, loc, log)
	if cfg.Jobs.Enabled {
		if err := scheduler.Register(cfg.Jobs); err != nil {
			return nil, err
		}
	}

	return &App{Router: router, Scheduler: scheduler, Bus: bus, JWT: jwtManager}, nil
}

// Shutdown stops the scheduler and drains pending audit events.
func (a *App) Shutdown(ctx context.Context) {
	a.Scheduler.Stop(ctx)
	done := make(chan struct{})
	go func() {
		a.Bus.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
	}
}
