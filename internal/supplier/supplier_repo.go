package supplier

import (
	"context"
	"database/sql"

	"supplyhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=supplier_repo.go -destination=mock/supplier_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sup *Supplier) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Supplier, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Supplier, error)
	Update(ctx context.Context, sup *Supplier) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx routes every query through the caller's transaction so gorm
// writes and the outbox insert commit or roll back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{
		db: db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, sup *Supplier) error {
	return r.db.WithContext(ctx).Create(sup).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Supplier, error) {
	var sups []Supplier
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&sups).Error
	return sups, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Supplier, error) {
	var sup Supplier
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&sup, "id = ?", id).Error
	return &sup, err
}

func (r *repository) Update(ctx context.Context, sup *Supplier) error {
	return r.db.WithContext(ctx).Save(sup).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Supplier{}, "id = ?", id).Error
}
