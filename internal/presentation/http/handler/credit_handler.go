package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/sangkips/laundromart-api/internal/domain/repository"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/request"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
)

// CreditHandler handles customer credits
type CreditHandler struct {
	creditService *service.CreditService
}

// NewCreditHandler creates a new credit handler
func NewCreditHandler(creditService *service.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// List handles listing credits
func (h *CreditHandler) List(c *gin.Context) {
	params := &repository.CreditFilterParams{
		Pagination: pageQuery(c),
		CustomerID: queryUUID(c, "customer_id"),
	}
	if s := c.Query("status"); s != "" {
		status := enum.CreditStatus(s)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid credit status")
			return
		}
		params.Status = &status
	}

	result, err := h.creditService.ListCredits(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Credits retrieved successfully", result)
}

// Create handles granting a credit to a customer
func (h *CreditHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request.CreateCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	credit, err := h.creditService.CreateCredit(c.Request.Context(), p, &service.CreateCreditInput{
		CustomerID: req.CustomerID,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
		Reason:     req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Credit created successfully", credit)
}

// Get handles getting a single credit
func (h *CreditHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "credit")
	if !ok {
		return
	}

	credit, err := h.creditService.GetCredit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit retrieved successfully", credit)
}

// Redeem handles marking a pending credit as used
func (h *CreditHandler) Redeem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "credit")
	if !ok {
		return
	}

	credit, err := h.creditService.RedeemCredit(c.Request.Context(), p, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit redeemed successfully", credit)
}

// Delete handles deleting a credit
func (h *CreditHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "credit")
	if !ok {
		return
	}

	if err := h.creditService.DeleteCredit(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
