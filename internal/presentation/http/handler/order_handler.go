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

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	loc          *time.Location
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, loc *time.Location) *OrderHandler {
	return &OrderHandler{orderService: orderService, loc: loc}
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: pageQuery(c),
		Search:     c.Query("search"),
		CustomerID: queryUUID(c, "customer_id"),
	}
	params.StartDate, params.EndDate = queryRange(c, h.loc)

	if s := c.Query("status"); s != "" {
		status := enum.OrderStatus(s)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid order status")
			return
		}
		params.Status = &status
	}
	if t := c.Query("type"); t != "" {
		orderType := enum.OrderType(t)
		if !orderType.IsValid() {
			response.BadRequest(c, "Invalid order type")
			return
		}
		params.OrderType = &orderType
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Orders retrieved successfully", result)
}

// Create handles creating an order
func (h *OrderHandler) Create(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ItemType:         enum.ItemType(item.ItemType),
			MerchandiseID:    item.MerchandiseID,
			LaundryServiceID: item.LaundryServiceID,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), p, &service.CreateOrderInput{
		CustomerID: req.CustomerID,
		OrderType:  enum.OrderType(req.OrderType),
		Notes:      req.Notes,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// UpdateStatus handles updating order status. A failed pickup notification
// still returns 200 with the notification result attached.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), p, id, enum.OrderStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Order status updated successfully"
	if result.Notification != nil && result.Notification.Attempted && !result.Notification.Sent {
		message = "Order status updated; pickup notification failed"
	}
	response.OK(c, message, result)
}

// Cancel handles canceling an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), p, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", order)
}
