package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/laundromart-api/internal/application/service"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/request"
	"github.com/sangkips/laundromart-api/internal/presentation/http/dto/response"
)

// LaundryServiceHandler handles the laundry service catalog
type LaundryServiceHandler struct {
	catalog *service.LaundryCatalogService
}

// NewLaundryServiceHandler creates a new laundry service handler
func NewLaundryServiceHandler(catalog *service.LaundryCatalogService) *LaundryServiceHandler {
	return &LaundryServiceHandler{catalog: catalog}
}

func laundryInput(req *request.LaundryServiceRequest) *service.LaundryServiceInput {
	return &service.LaundryServiceInput{
		Name:         req.Name,
		Description:  req.Description,
		PricePerUnit: req.PricePerUnit,
		UnitType:     req.UnitType,
	}
}

// List handles listing the catalog
func (h *LaundryServiceHandler) List(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laundry services retrieved successfully", services)
}

// Create handles adding a laundry service
func (h *LaundryServiceHandler) Create(c *gin.Context) {
	var req request.LaundryServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalog.CreateService(c.Request.Context(), laundryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Laundry service created successfully", svc)
}

// Get handles getting a single laundry service
func (h *LaundryServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "laundry service")
	if !ok {
		return
	}

	svc, err := h.catalog.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laundry service retrieved successfully", svc)
}

// Update handles updating a laundry service
func (h *LaundryServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "laundry service")
	if !ok {
		return
	}

	var req request.LaundryServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	svc, err := h.catalog.UpdateService(c.Request.Context(), id, laundryInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Laundry service updated successfully", svc)
}

// Delete handles deleting a laundry service
func (h *LaundryServiceHandler) Delete(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "laundry service")
	if !ok {
		return
	}

	if err := h.catalog.DeleteService(c.Request.Context(), p, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
