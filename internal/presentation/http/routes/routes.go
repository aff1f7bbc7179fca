package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/config"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	domainRepo "github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/presentation/http/handler"
	"github.com/sangkips/laundromart-api/internal/presentation/http/middleware"
	"github.com/sangkips/laundromart-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Customer    *handler.CustomerHandler
	Merchandise *handler.MerchandiseHandler
	Laundry     *handler.LaundryServiceHandler
	Order       *handler.OrderHandler
	Receipt     *handler.ReceiptHandler
	Loan        *handler.LoanHandler
	Credit      *handler.CreditHandler
	Expense     *handler.ExpenseHandler
	Report      *handler.ReportHandler
	Dashboard   *handler.DashboardHandler
	Role        *handler.RoleHandler
	Printer     *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Roles           middleware.RoleResolver
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.UserRateLimiter
	Log             *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.RecoveryMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes, all authenticated
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Roles))
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

	registerProtectedRoutes(v1, h)

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetStats)
	protected.GET("/me", h.Role.Me)

	registerCatalogRoutes(protected, h)
	registerOrderRoutes(protected, h)
	registerLoanRoutes(protected, h)
	registerLedgerRoutes(protected, h)
	registerReportRoutes(protected, h)

	protected.GET("/printer/status", h.Printer.GetStatus)

	// Role management (admin only)
	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/roles", h.Role.List)
		admin.POST("/roles", h.Role.Assign)
		admin.DELETE("/roles/:user_id/:role", h.Role.Remove)
	}
}

func registerCatalogRoutes(rg *gin.RouterGroup, h *Handlers) {
	customers := rg.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}

	merchandise := rg.Group("/merchandise")
	{
		merchandise.GET("", h.Merchandise.List)
		merchandise.POST("", h.Merchandise.Create)
		merchandise.GET("/stock", h.Merchandise.Stock)
		merchandise.GET("/:id", h.Merchandise.Get)
		merchandise.PUT("/:id", h.Merchandise.Update)
		merchandise.POST("/:id/adjust", h.Merchandise.AdjustStock)
		merchandise.DELETE("/:id", h.Merchandise.Delete)
	}

	laundry := rg.Group("/laundry-services")
	{
		laundry.GET("", h.Laundry.List)
		laundry.POST("", h.Laundry.Create)
		laundry.GET("/:id", h.Laundry.Get)
		laundry.PUT("/:id", h.Laundry.Update)
		laundry.DELETE("/:id", h.Laundry.Delete)
	}
}

func registerOrderRoutes(rg *gin.RouterGroup, h *Handlers) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/receipt", h.Receipt.GetForOrder)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
		orders.POST("/:id/cancel", h.Order.Cancel)
	}

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.POST("", h.Receipt.Issue)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.POST("/:id/print", h.Receipt.Print)
	}
}

func registerLoanRoutes(rg *gin.RouterGroup, h *Handlers) {
	loans := rg.Group("/loans")
	{
		loans.GET("/payments", h.Loan.PaymentHistory)
		loans.GET("/alerts", h.Loan.Alerts)
		loans.GET("/summary", h.Loan.Summary)

		customer := loans.Group("/customer")
		customer.GET("", h.Loan.ListCustomerLoans)
		customer.POST("", h.Loan.CreateCustomerLoan)
		customer.GET("/:id", h.Loan.GetCustomerLoan)
		customer.DELETE("/:id", h.Loan.Delete(enum.LoanKindCustomer))
		customer.GET("/:id/payments", h.Loan.ListPayments(enum.LoanKindCustomer))
		customer.POST("/:id/payments", h.Loan.RecordPayment(enum.LoanKindCustomer))

		business := loans.Group("/business")
		business.GET("", h.Loan.ListBusinessLoans)
		business.POST("", h.Loan.CreateBusinessLoan)
		business.GET("/:id", h.Loan.GetBusinessLoan)
		business.DELETE("/:id", h.Loan.Delete(enum.LoanKindBusiness))
		business.GET("/:id/payments", h.Loan.ListPayments(enum.LoanKindBusiness))
		business.POST("/:id/payments", h.Loan.RecordPayment(enum.LoanKindBusiness))
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, h *Handlers) {
	credits := rg.Group("/credits")
	{
		credits.GET("", h.Credit.List)
		credits.POST("", h.Credit.Create)
		credits.GET("/:id", h.Credit.Get)
		credits.POST("/:id/redeem", h.Credit.Redeem)
		credits.DELETE("/:id", h.Credit.Delete)
	}

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.Expense.ListExpenses)
		expenses.POST("", h.Expense.CreateExpense)
		expenses.GET("/:id", h.Expense.GetExpense)
		expenses.PUT("/:id", h.Expense.UpdateExpense)
		expenses.DELETE("/:id", h.Expense.DeleteExpense)
	}

	transfers := rg.Group("/cash-to-bank")
	{
		transfers.GET("", h.Expense.ListTransfers)
		transfers.POST("", h.Expense.CreateTransfer)
		transfers.GET("/:id", h.Expense.GetTransfer)
		transfers.DELETE("/:id", h.Expense.DeleteTransfer)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, h *Handlers) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.Report.Summary)
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/revenue", h.Report.Revenue)
		reports.GET("/export", h.Report.Export)
	}
}
