package supplier

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_supplier_name"`
	Name          string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_supplier_name"`
	ContactPerson string    `gorm:"type:varchar(255)"`
	Email         string    `gorm:"type:varchar(255)"`
	Phone         string    `gorm:"type:varchar(32)"`
	Address       string    `gorm:"type:text"`
	IsActive      bool      `gorm:"default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
