package employee

import (
	"context"
	"database/sql"

	"supplyhr/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	ResolveByBadge(ctx context.Context, companyID, badgeCode string) (string, error)
	NameByID(ctx context.Context, companyID, employeeID string) (string, error)
	Update(ctx context.Context, empl *Employee) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "company_id", "full_name", "email", "employee_number").
		Scopes(tenant.Scope(companyID)).
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	return &empl, err
}

// ResolveByBadge maps a scanned badge code to the owning employee id.
// An unknown badge surfaces gorm.ErrRecordNotFound so the caller can
// distinguish it from storage failures.
func (r *repository) ResolveByBadge(ctx context.Context, companyID, badgeCode string) (string, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Select("id").
		Scopes(tenant.Scope(companyID)).
		Where("badge_code = ?", badgeCode).
		First(&empl).Error
	if err != nil {
		return "", err
	}
	return empl.ID.String(), nil
}

// NameByID resolves an employee id to its display name. Unknown ids fall
// back to the id itself so report rows never go blank.
func (r *repository) NameByID(ctx context.Context, companyID, employeeID string) (string, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Select("full_name").
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", employeeID).Error
	if err != nil {
		return employeeID, nil
	}
	return empl.FullName, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id).Error
}
