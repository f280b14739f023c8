package events

import "time"

const PurchaseOrderLifecycleTopic = "scm.purchase_order.lifecycle.v1"

const PurchaseOrderApproved = "purchase_order_approved"

type PurchaseOrderApprovedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	PurchaseOrderID string    `json:"purchase_order_id"`
	CompanyID       string    `json:"company_id"`
	OrderNumber     string    `json:"order_number"`
	SupplierID      string    `json:"supplier_id"`
	ApprovedBy      string    `json:"approved_by"`
	OccurredAt      time.Time `json:"occurred_at"`
}
