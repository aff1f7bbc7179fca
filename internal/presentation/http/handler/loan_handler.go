package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/request"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
	"github.com/spf13/cast"
)

// LoanHandler handles customer and business loans and their payments
type LoanHandler struct {
	loanService *service.LoanService
	loc         *time.Location
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *service.LoanService, loc *time.Location) *LoanHandler {
	return &LoanHandler{loanService: loanService, loc: loc}
}

func (h *LoanHandler) filter(c *gin.Context) (*repository.LoanFilterParams, bool) {
	params := &repository.LoanFilterParams{
		Pagination: pageQuery(c),
		Search:     c.Query("search"),
		CustomerID: queryUUID(c, "customer_id"),
	}
	if s := c.Query("status"); s != "" {
		status := enum.LoanStatus(s)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid loan status")
			return nil, false
		}
		params.Status = &status
	}
	return params, true
}

// ListCustomerLoans handles listing customer loans
func (h *LoanHandler) ListCustomerLoans(c *gin.Context) {
	params, ok := h.filter(c)
	if !ok {
		return
	}

	result, err := h.loanService.ListCustomerLoans(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Customer loans retrieved successfully", result)
}

// CreateCustomerLoan handles lending to a customer
func (h *LoanHandler) CreateCustomerLoan(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request.CreateCustomerLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	dates := bodyDates{loc: h.loc}
	loanDate := dates.parse("loan_date", req.LoanDate)
	if dates.reject(c) {
		return
	}

	loan, err := h.loanService.CreateCustomerLoan(c.Request.Context(), p, &service.CreateCustomerLoanInput{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
		Reason:     req.Reason,
		LoanDate:   loanDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer loan created successfully", loan)
}

// GetCustomerLoan handles getting a customer loan with its payments
func (h *LoanHandler) GetCustomerLoan(c *gin.Context) {
	id, ok := parseID(c, "id", "loan")
	if !ok {
		return
	}

	loan, err := h.loanService.GetCustomerLoan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer loan retrieved successfully", loan)
}

// ListBusinessLoans handles listing business loans
func (h *LoanHandler) ListBusinessLoans(c *gin.Context) {
	params, ok := h.filter(c)
	if !ok {
		return
	}

	result, err := h.loanService.ListBusinessLoans(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Business loans retrieved successfully", result)
}

// CreateBusinessLoan handles recording money borrowed by the business
func (h *LoanHandler) CreateBusinessLoan(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request.CreateBusinessLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	dates := bodyDates{loc: h.loc}
	loanDate := dates.parse("loan_date", req.LoanDate)
	dueDate := dates.parse("due_date", req.DueDate)
	if dates.reject(c) {
		return
	}

	loan, err := h.loanService.CreateBusinessLoan(c.Request.Context(), p, &service.CreateBusinessLoanInput{
		LenderName:   req.LenderName,
		Amount:       req.Amount,
		InterestRate: req.InterestRate,
		Reason:       req.Reason,
		LoanDate:     loanDate,
		DueDate:      dueDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Business loan created successfully", loan)
}

// GetBusinessLoan handles getting a business loan with its payments
func (h *LoanHandler) GetBusinessLoan(c *gin.Context) {
	id, ok := parseID(c, "id", "loan")
	if !ok {
		return
	}

	loan, err := h.loanService.GetBusinessLoan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Business loan retrieved successfully", loan)
}

// RecordPayment returns a handler that records a repayment against a loan of the given kind
func (h *LoanHandler) RecordPayment(kind enum.LoanKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := parseID(c, "id", "loan")
		if !ok {
			return
		}

		var req request.RecordPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
		dates := bodyDates{loc: h.loc}
		paymentDate := dates.parse("payment_date", req.PaymentDate)
		if dates.reject(c) {
			return
		}

		result, err := h.loanService.RecordPayment(c.Request.Context(), p, kind, id, &service.RecordPaymentInput{
			Amount:      req.Amount,
			PaymentDate: paymentDate,
			Notes:       req.Notes,
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		message := "Payment recorded successfully"
		if result.Overpaid > 0 {
			message = "Payment recorded; loan is overpaid"
		}
		response.Created(c, message, result)
	}
}

// ListPayments returns a handler listing the payments of one loan
func (h *LoanHandler) ListPayments(kind enum.LoanKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id", "loan")
		if !ok {
			return
		}

		payments, err := h.loanService.ListPayments(c.Request.Context(), kind, id)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Payments retrieved successfully", payments)
	}
}

// Delete returns a handler deleting a loan of the given kind
func (h *LoanHandler) Delete(kind enum.LoanKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := principal(c)
		if !ok {
			return
		}
		id, ok := parseID(c, "id", "loan")
		if !ok {
			return
		}

		if err := h.loanService.DeleteLoan(c.Request.Context(), p, kind, id); err != nil {
			response.Error(c, err)
			return
		}

		response.NoContent(c)
	}
}

// PaymentHistory handles the unified payment history across both loan kinds
func (h *LoanHandler) PaymentHistory(c *gin.Context) {
	history, err := h.loanService.PaymentHistory(c.Request.Context(), cast.ToInt(c.Query("limit")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment history retrieved successfully", history)
}

// Alerts handles overdue and due-soon business loans
func (h *LoanHandler) Alerts(c *gin.Context) {
	alerts, err := h.loanService.Alerts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loan alerts retrieved successfully", alerts)
}

// Summary handles the outstanding balance summary
func (h *LoanHandler) Summary(c *gin.Context) {
	summary, err := h.loanService.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Loan summary retrieved successfully", summary)
}
