package purchaseorder

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusReceived  = "RECEIVED"
	StatusCanceled  = "CANCELLED"
)

type PurchaseOrder struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:uq_po_number"`
	OrderNumber     string     `gorm:"type:varchar(32);not null;uniqueIndex:uq_po_number"`
	SupplierID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status          string     `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Notes           string     `gorm:"type:text"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	ReceivedAt      *time.Time
	RejectionReason *string `gorm:"type:text"`
	Lines           []OrderLine `gorm:"foreignKey:PurchaseOrderID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

type OrderLine struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemID          uuid.UUID `gorm:"type:uuid;not null"`
	Quantity        int64     `gorm:"not null"`
	UnitPrice       float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt       time.Time
}

func (OrderLine) TableName() string {
	return "purchase_order_lines"
}

// terminal statuses admit no further transition, including cancel.
func isTerminal(status string) bool {
	switch status {
	case StatusRejected, StatusReceived, StatusCanceled:
		return true
	}
	return false
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}
	if targetStatus == StatusCanceled {
		return !isTerminal(currentStatus)
	}

	switch currentStatus {
	case StatusDraft:
		return targetStatus == StatusSubmitted
	case StatusSubmitted:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	case StatusApproved:
		return targetStatus == StatusReceived
	default:
		return false
	}
}
