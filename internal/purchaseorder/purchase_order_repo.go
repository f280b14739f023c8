package purchaseorder

import (
	"context"
	"database/sql"

	"supplyhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=purchase_order_repo.go -destination=mock/purchase_order_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, po *PurchaseOrder) error
	FindAllByCompany(ctx context.Context, companyID string) ([]PurchaseOrder, error)
	FindAllBySupplier(ctx context.Context, companyID, supplierID string) ([]PurchaseOrder, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PurchaseOrder, error)
	Update(ctx context.Context, po *PurchaseOrder) error
	ReplaceLines(ctx context.Context, poID string, lines []OrderLine) error
	SupplierExists(ctx context.Context, companyID, supplierID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, po *PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]PurchaseOrder, error) {
	var pos []PurchaseOrder
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Lines").
		Order("created_at DESC").
		Find(&pos).Error
	return pos, err
}

func (r *repository) FindAllBySupplier(ctx context.Context, companyID, supplierID string) ([]PurchaseOrder, error) {
	var pos []PurchaseOrder
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("supplier_id = ?", supplierID).
		Preload("Lines").
		Order("created_at DESC").
		Find(&pos).Error
	return pos, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*PurchaseOrder, error) {
	var po PurchaseOrder
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Lines").
		First(&po, "id = ?", id).Error
	return &po, err
}

func (r *repository) Update(ctx context.Context, po *PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit("Lines").Save(po).Error
}

func (r *repository) ReplaceLines(ctx context.Context, poID string, lines []OrderLine) error {
	if err := r.db.WithContext(ctx).
		Delete(&OrderLine{}, "purchase_order_id = ?", poID).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *repository) SupplierExists(ctx context.Context, companyID, supplierID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("suppliers").
		Where("id = ?", supplierID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PurchaseOrder{}, "id = ?", id).Error
}
