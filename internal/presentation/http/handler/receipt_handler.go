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
)

// ReceiptHandler handles receipt issuance and lookup
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	loc            *time.Location
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, loc *time.Location) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, loc: loc}
}

// Issue handles issuing a receipt, which completes the order
func (h *ReceiptHandler) Issue(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request.IssueReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.receiptService.IssueReceipt(c.Request.Context(), p, &service.IssueReceiptInput{
		OrderID:       req.OrderID,
		PaymentMethod: enum.PaymentMethod(req.PaymentMethod),
		AmountPaid:    req.AmountPaid,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt issued successfully", result)
}

// List handles listing receipts, newest first
func (h *ReceiptHandler) List(c *gin.Context) {
	params := &repository.ReceiptFilterParams{
		Pagination: pageQuery(c),
		Search:     c.Query("search"),
	}
	params.StartDate, params.EndDate = queryRange(c, h.loc)

	result, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Receipts retrieved successfully", result)
}

// Get handles getting a single receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// GetForOrder handles looking up the receipt of an order
func (h *ReceiptHandler) GetForOrder(c *gin.Context) {
	orderID, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceiptForOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Print handles sending an issued receipt to the printer again
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	result, err := h.receiptService.ReprintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Receipt sent to printer"
	if !result.Printed {
		message = "Receipt could not be printed"
	}
	response.OK(c, message, result)
}
