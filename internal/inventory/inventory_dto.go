package inventory

type CreateItemRequest struct {
	SKU          string  `json:"sku" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Quantity     int64   `json:"quantity" binding:"gte=0"`
	ReorderLevel int64   `json:"reorder_level" binding:"gte=0"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
}

type UpdateItemRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	ReorderLevel int64   `json:"reorder_level" binding:"gte=0"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
}

// AdjustStockRequest moves stock by a signed delta. Receipts are
// positive, issues negative.
type AdjustStockRequest struct {
	Delta  int64  `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

type ItemResponse struct {
	ID           string  `json:"id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Quantity     int64   `json:"quantity"`
	ReorderLevel int64   `json:"reorder_level"`
	UnitPrice    float64 `json:"unit_price"`
	LowStock     bool    `json:"low_stock"`
	CompanyID    string  `json:"company_id"`
}
