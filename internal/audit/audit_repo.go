package audit

import (
	"context"
	"time"

	"supplyhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Entry, error)
}

// ListFilter narrows the trail; zero values mean "no constraint".
type ListFilter struct {
	Action     string
	EntityType string
	Start      *time.Time
	End        *time.Time
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ListFilter) ([]Entry, error) {
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))

	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.Start != nil {
		q = q.Where("occurred_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("occurred_at <= ?", *filter.End)
	}

	var rows []Entry
	err := q.Order("occurred_at DESC").Find(&rows).Error
	return rows, err
}
