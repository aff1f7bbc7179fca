package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/request"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
	"github.com/sangkips/laundromart-api/pkg/pagination"
)

// MerchandiseHandler handles merchandise and stock HTTP requests
type MerchandiseHandler struct {
	merchService *service.MerchandiseService
}

// NewMerchandiseHandler creates a new merchandise handler
func NewMerchandiseHandler(merchService *service.MerchandiseService) *MerchandiseHandler {
	return &MerchandiseHandler{merchService: merchService}
}

// List handles listing merchandise
func (h *MerchandiseHandler) List(c *gin.Context) {
	var filter request.MerchandiseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.merchService.ListMerchandise(c.Request.Context(), &service.ListMerchandiseInput{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Search:     filter.Search,
		Category:   filter.Category,
		LowStock:   filter.LowStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Merchandise retrieved successfully", result)
}

// Create handles creating a merchandise item
func (h *MerchandiseHandler) Create(c *gin.Context) {
	var req request.CreateMerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.merchService.CreateMerchandise(c.Request.Context(), &service.CreateMerchandiseInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		CostPrice:   req.CostPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Merchandise created successfully", item)
}

// Get handles getting a single merchandise item
func (h *MerchandiseHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "merchandise")
	if !ok {
		return
	}

	item, err := h.merchService.GetMerchandise(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Merchandise retrieved successfully", item)
}

// Update handles updating a merchandise item
func (h *MerchandiseHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "merchandise")
	if !ok {
		return
	}

	var req request.UpdateMerchandiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.merchService.UpdateMerchandise(c.Request.Context(), &service.UpdateMerchandiseInput{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SKU:         req.SKU,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		CostPrice:   req.CostPrice,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Merchandise updated successfully", item)
}

// AdjustStock handles manual stock corrections
func (h *MerchandiseHandler) AdjustStock(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "merchandise")
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.merchService.AdjustStock(c.Request.Context(), p, id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted successfully", item)
}

// Delete handles deleting a merchandise item
func (h *MerchandiseHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "merchandise")
	if !ok {
		return
	}

	if err := h.merchService.DeleteMerchandise(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Stock handles the stock overview
func (h *MerchandiseHandler) Stock(c *gin.Context) {
	overview, err := h.merchService.StockOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock overview retrieved successfully", overview)
}
