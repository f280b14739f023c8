package purchaseorder

type OrderLineRequest struct {
	ItemID    string  `json:"item_id" binding:"required,uuid"`
	Quantity  int64   `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

type CreateOrderRequest struct {
	SupplierID string             `json:"supplier_id" binding:"required,uuid"`
	Notes      string             `json:"notes"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	SupplierID string             `json:"supplier_id" binding:"required,uuid"`
	Notes      string             `json:"notes"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type OrderLineResponse struct {
	ID        string  `json:"id"`
	ItemID    string  `json:"item_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderResponse struct {
	ID              string              `json:"id"`
	OrderNumber     string              `json:"order_number"`
	SupplierID      string              `json:"supplier_id"`
	Status          string              `json:"status"`
	Notes           string              `json:"notes,omitempty"`
	TotalAmount     float64             `json:"total_amount"`
	CreatedBy       string              `json:"created_by"`
	ApprovedBy      *string             `json:"approved_by,omitempty"`
	ApprovedAt      *string             `json:"approved_at,omitempty"`
	ReceivedAt      *string             `json:"received_at,omitempty"`
	RejectionReason *string             `json:"rejection_reason,omitempty"`
	Lines           []OrderLineResponse `json:"lines"`
	CompanyID       string              `json:"company_id"`
}
