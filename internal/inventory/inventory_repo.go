package inventory

import (
	"context"
	"database/sql"

	"supplyhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=inventory_repo.go -destination=mock/inventory_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, item *Item) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Item, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Item, error)
	FindLowStockByCompany(ctx context.Context, companyID string) ([]Item, error)
	Update(ctx context.Context, item *Item) error
	// AdjustQuantity applies a signed delta and returns the number of rows
	// changed. Zero rows means the guard refused the adjustment.
	AdjustQuantity(ctx context.Context, companyID, id string, delta int64) (int64, error)
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

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Item, error) {
	var item Item
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&item, "id = ?", id).Error
	return &item, err
}

func (r *repository) FindLowStockByCompany(ctx context.Context, companyID string) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("quantity <= reorder_level").
		Order("quantity ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) AdjustQuantity(ctx context.Context, companyID, id string, delta int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Item{}).
		Where("id = ? AND company_id = ? AND quantity + ? >= 0", id, companyID, delta).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Item{}, "id = ?", id).Error
}
