package inventory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a stocked product. Quantity never goes negative; the adjust
// query enforces that at the database, not in application code.
type Item struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_inventory_sku"`
	SKU          string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_inventory_sku"`
	Name         string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Quantity     int64     `gorm:"not null;default:0"`
	ReorderLevel int64     `gorm:"not null;default:0"`
	UnitPrice    float64   `gorm:"type:numeric(12,2);not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Item) TableName() string {
	return "inventory_items"
}

// LowStock reports whether the item is at or below its reorder level.
func (i Item) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
