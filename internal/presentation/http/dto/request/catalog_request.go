package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,max=255"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,max=255"`
	Address *string `json:"address"`
}

// CreateMerchandiseRequest represents a merchandise creation request
type CreateMerchandiseRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description *string  `json:"description"`
	Category    string   `json:"category" binding:"required,max=100"`
	SKU         *string  `json:"sku" binding:"omitempty,max=100"`
	Quantity    int      `json:"quantity"`
	UnitPrice   float64  `json:"unit_price"`
	CostPrice   *float64 `json:"cost_price"`
}

// UpdateMerchandiseRequest represents a merchandise update request
type UpdateMerchandiseRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	SKU         *string  `json:"sku" binding:"omitempty,max=100"`
	Quantity    *int     `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	CostPrice   *float64 `json:"cost_price"`
}

// AdjustStockRequest moves stock by a signed delta
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// MerchandiseFilterRequest represents merchandise list filters
type MerchandiseFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	LowStock bool   `form:"low_stock"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// LaundryServiceRequest is used for both create and update
type LaundryServiceRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=255"`
	Description  *string  `json:"description"`
	PricePerUnit *float64 `json:"price_per_unit"`
	UnitType     *string  `json:"unit_type" binding:"omitempty,max=50"`
}
