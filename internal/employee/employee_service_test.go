package employee

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"supplyhr/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	employeeerrors "supplyhr/internal/employee/errors"
)

type fakeRepo struct {
	created   []*Employee
	createErr error
	byID      map[string]*Employee
	options   []Employee
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Employee{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, empl *Employee) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, empl)
	f.byID[empl.ID.String()] = empl
	return nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var out []Employee
	for _, e := range f.byID {
		if e.CompanyID.String() == companyID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	return f.options, nil
}

func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Employee, error) {
	e, ok := f.byID[id]
	if !ok || e.CompanyID.String() != companyID {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (f *fakeRepo) ResolveByBadge(ctx context.Context, companyID, badgeCode string) (string, error) {
	for _, e := range f.byID {
		if e.CompanyID.String() == companyID && e.BadgeCode == badgeCode {
			return e.ID.String(), nil
		}
	}
	return "", gorm.ErrRecordNotFound
}

func (f *fakeRepo) NameByID(ctx context.Context, companyID, employeeID string) (string, error) {
	if e, ok := f.byID[employeeID]; ok && e.CompanyID.String() == companyID {
		return e.FullName, nil
	}
	return employeeID, nil
}

func (f *fakeRepo) Update(ctx context.Context, empl *Employee) error {
	f.byID[empl.ID.String()] = empl
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestService_Create_GeneratesNumberAndBadge(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	svc := NewServiceWithOutbox(db, repo, &fakeCounter{next: 6}, outbox, nil)

	companyID := uuid.New().String()
	resp, err := svc.Create(context.Background(), companyID, CreateEmployeeRequest{
		FullName: "Sara Haddad",
		Email:    "sara@example.com",
		HireDate: "2026-03-01",
	})

	require.NoError(t, err)
	assert.Equal(t, "EMP-000007", resp.EmployeeNumber)
	assert.NotEmpty(t, resp.BadgeCode)
	assert.Equal(t, "ACTIVE", resp.EmploymentStatus)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, "employee_created", outbox.events[0].EventType)
	assert.Equal(t, resp.ID, outbox.events[0].AggregateID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateBadge(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	repo := newFakeRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_employee_badge" (SQLSTATE 23505)`)
	svc := NewService(db, repo, &fakeCounter{}, nil)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateEmployeeRequest{
		FullName:  "Omar Khalil",
		Email:     "omar@example.com",
		BadgeCode: "taken",
		HireDate:  "2026-03-01",
	})

	assert.ErrorIs(t, err, employeeerrors.ErrBadgeAlreadyAssigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_InvalidHireDate(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err := svc.Create(context.Background(), uuid.New().String(), CreateEmployeeRequest{
		FullName: "Omar Khalil",
		Email:    "omar@example.com",
		HireDate: "03/01/2026",
	})

	assert.Error(t, err)
}

func TestService_GetByID_NotFound(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewService(db, newFakeRepo(), &fakeCounter{}, nil)

	_, err := svc.GetByID(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
}

func TestService_ResolveByBadge(t *testing.T) {
	repo := newFakeRepo()
	companyID := uuid.New()
	empl := &Employee{ID: uuid.New(), CompanyID: companyID, BadgeCode: "badge-123"}
	repo.byID[empl.ID.String()] = empl

	id, err := repo.ResolveByBadge(context.Background(), companyID.String(), "badge-123")
	require.NoError(t, err)
	assert.Equal(t, empl.ID.String(), id)

	_, err = repo.ResolveByBadge(context.Background(), companyID.String(), "unknown")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestService_GetOptions_CachesInRedis(t *testing.T) {
	db, _ := newTestDB(t)
	rdb, rmock := redismock.NewClientMock()

	companyID := uuid.New()
	repo := newFakeRepo()
	repo.options = []Employee{
		{ID: uuid.New(), CompanyID: companyID, FullName: "Sara Haddad", Email: "sara@example.com", HireDate: time.Now()},
	}

	svc := NewService(db, repo, &fakeCounter{}, rdb)
	cacheKey := GetEmployeeOptionsKey(companyID.String())

	rmock.ExpectGet(cacheKey).RedisNil()
	rmock.Regexp().ExpectSet(cacheKey, `.*Sara Haddad.*`, 1*time.Hour).SetVal("OK")

	resp, err := svc.GetOptions(context.Background(), companyID.String())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Sara Haddad", resp[0].FullName)

	assert.NoError(t, rmock.ExpectationsWereMet())
}
