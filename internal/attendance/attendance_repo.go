package attendance

import (
	"context"
	"database/sql"
	"time"

	"supplyhr/internal/tenant"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Record) error
	FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Record, error)
	FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Record, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Record, error)
	FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Record, error)
	CompleteCheckOut(ctx context.Context, companyID, employeeID string, date, checkOut time.Time) (int64, error)
	ClaimAbsent(ctx context.Context, rec *Record) (int64, error)
	ListEmployeeIDsWithoutRecord(ctx context.Context, companyID string, date time.Time) ([]string, error)
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx routes every query through the caller's transaction so the domain
// write and the outbox insert commit or roll back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.Session(&gorm.Session{NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db, tx: tx}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(dateLayout)).
		First(&rec).Error
	return &rec, err
}

func (r *repository) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("date BETWEEN ? AND ?", start.Format(dateLayout), end.Format(dateLayout)).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("date DESC, check_in_time DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Order("date DESC, check_in_time DESC").
		Find(&rows).Error
	return rows, err
}

// CompleteCheckOut is a conditional update: it only touches the open
// record for the day. Zero rows affected means the session was already
// closed (or never opened) and the caller reports it as such.
func (r *repository) CompleteCheckOut(ctx context.Context, companyID, employeeID string, date, checkOut time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format(dateLayout)).
		Where("check_out_time IS NULL").
		Where("check_in_time IS NOT NULL").
		Update("check_out_time", checkOut)
	return res.RowsAffected, res.Error
}

// ClaimAbsent converts a scan-synthesized absence row into a live session.
// The predicate only matches a row with no check-in, so a genuine closed
// session is never reopened; zero rows affected means a concurrent
// check-in claimed it first.
func (r *repository) ClaimAbsent(ctx context.Context, rec *Record) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("id = ?", rec.ID.String()).
		Where("company_id = ?", rec.CompanyID.String()).
		Where("status = ?", StatusAbsent).
		Where("check_in_time IS NULL").
		Updates(map[string]any{
			"check_in_time": rec.CheckInTime,
			"status":        rec.Status,
			"location":      rec.Location,
			"qr_scan_data":  rec.QRScanData,
			"notes":         rec.Notes,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) ListEmployeeIDsWithoutRecord(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("employees e").
		Select("e.id::text").
		Where("e.company_id = ?", companyID).
		Where("e.deleted_at IS NULL").
		Where(`NOT EXISTS (
			SELECT 1 FROM attendance_records a
			WHERE a.company_id = e.company_id
			  AND a.employee_id = e.id
			  AND a.date = ?
		)`, date.Format(dateLayout)).
		Scan(&ids).Error
	return ids, err
}

func (r *repository) ListCompanyIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("employees").
		Distinct("company_id::text").
		Where("deleted_at IS NULL").
		Scan(&ids).Error
	return ids, err
}
