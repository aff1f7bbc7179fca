package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/request"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
)

// ExpenseHandler handles expenses and cash-to-bank transfers
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	loc            *time.Location
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService, loc *time.Location) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, loc: loc}
}

func (h *ExpenseHandler) filter(c *gin.Context) *repository.LedgerFilterParams {
	params := &repository.LedgerFilterParams{
		Pagination: pageQuery(c),
		Search:     c.Query("search"),
		Category:   c.Query("category"),
	}
	params.StartDate, params.EndDate = queryRange(c, h.loc)
	return params
}

func (h *ExpenseHandler) bindExpense(c *gin.Context) (*service.ExpenseInput, bool) {
	var req request.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return nil, false
	}
	dates := bodyDates{loc: h.loc}
	expenseDate := dates.parse("expense_date", req.ExpenseDate)
	if dates.reject(c) {
		return nil, false
	}
	return &service.ExpenseInput{
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		ExpenseDate: expenseDate,
		Notes:       req.Notes,
	}, true
}

// ListExpenses handles listing expenses
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	result, err := h.expenseService.ListExpenses(c.Request.Context(), h.filter(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Expenses retrieved successfully", result)
}

// CreateExpense handles recording an expense
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	input, ok := h.bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), p, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// GetExpense handles getting a single expense
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, ok := parseID(c, "id", "expense")
	if !ok {
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// UpdateExpense handles correcting an expense
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, ok := parseID(c, "id", "expense")
	if !ok {
		return
	}
	input, ok := h.bindExpense(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// DeleteExpense handles deleting an expense
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "expense")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListTransfers handles listing cash-to-bank deposits
func (h *ExpenseHandler) ListTransfers(c *gin.Context) {
	result, err := h.expenseService.ListTransfers(c.Request.Context(), h.filter(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Transfers retrieved successfully", result)
}

// CreateTransfer handles recording a cash deposit
func (h *ExpenseHandler) CreateTransfer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request.CashToBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	dates := bodyDates{loc: h.loc}
	transferDate := dates.parse("transfer_date", req.TransferDate)
	if dates.reject(c) {
		return
	}

	transfer, err := h.expenseService.RecordTransfer(c.Request.Context(), p, &service.TransferInput{
		Amount:          req.Amount,
		BankName:        req.BankName,
		AccountNumber:   req.AccountNumber,
		ReferenceNumber: req.ReferenceNumber,
		TransferDate:    transferDate,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transfer recorded successfully", transfer)
}

// GetTransfer handles getting a single deposit
func (h *ExpenseHandler) GetTransfer(c *gin.Context) {
	id, ok := parseID(c, "id", "transfer")
	if !ok {
		return
	}

	transfer, err := h.expenseService.GetTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer retrieved successfully", transfer)
}

// DeleteTransfer handles deleting a deposit
func (h *ExpenseHandler) DeleteTransfer(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "transfer")
	if !ok {
		return
	}

	if err := h.expenseService.DeleteTransfer(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
