package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one append-only row of the audit trail. Rows are never updated
// or deleted.
type Entry struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	ActorID    *uuid.UUID `gorm:"column:actor_id;type:uuid"`
	Action     string     `gorm:"column:action;type:varchar(60);not null;index"`
	EntityType string     `gorm:"column:entity_type;type:varchar(40);not null"`
	EntityID   *string    `gorm:"column:entity_id;type:varchar(100)"`
	Message    string     `gorm:"column:message;type:text;not null"`
	Meta       *string    `gorm:"column:meta;type:jsonb"`
	OccurredAt time.Time  `gorm:"column:occurred_at;type:timestamptz;not null;index"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "audit_logs"
}
