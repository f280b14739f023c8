package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is the directory record behind every badge scan. BadgeCode is
// the opaque token a printed QR badge encodes; it is unique inside a
// company so a scan resolves to exactly one employee.
type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uq_employee_badge"`
	FullName         string    `gorm:"type:varchar(255);not null"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex:uq_employee_email"`
	EmployeeNumber   string    `gorm:"type:varchar(32);uniqueIndex:uq_employee_number"`
	BadgeCode        string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_employee_badge"`
	Phone            string    `gorm:"type:varchar(32)"`
	Department       string    `gorm:"type:varchar(120)"`
	HireDate         time.Time
	EmploymentStatus string `gorm:"type:varchar(32);not null;default:'ACTIVE'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
