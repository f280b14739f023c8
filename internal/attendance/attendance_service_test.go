package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "supplyhr/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	records map[string]*Record // keyed by employeeID|date
	missing []string           // returned by ListEmployeeIDsWithoutRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*Record)}
}

func key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(dateLayout)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, r *Record) error {
	k := key(r.EmployeeID.String(), r.Date)
	if _, ok := f.records[k]; ok {
		return errors.New(`duplicate key value violates unique constraint "uq_attendance_daily"`)
	}
	cp := *r
	f.records[k] = &cp
	return nil
}

func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Record, error) {
	if r, ok := f.records[key(employeeID, date)]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByEmployeeAndRange(ctx context.Context, companyID, employeeID string, start, end time.Time) ([]Record, error) {
	var out []Record
	for _, r := range f.records {
		if r.EmployeeID.String() == employeeID && !r.Date.Before(start) && !r.Date.After(end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]Record, error) {
	var out []Record
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) FindAllByCompanyAndEmployee(ctx context.Context, companyID, employeeID string) ([]Record, error) {
	var out []Record
	for _, r := range f.records {
		if r.EmployeeID.String() == employeeID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CompleteCheckOut(ctx context.Context, companyID, employeeID string, date, checkOut time.Time) (int64, error) {
	r, ok := f.records[key(employeeID, date)]
	if !ok || r.CheckInTime == nil || r.CheckOutTime != nil {
		return 0, nil
	}
	t := checkOut
	r.CheckOutTime = &t
	return 1, nil
}

func (f *fakeRepo) ClaimAbsent(ctx context.Context, rec *Record) (int64, error) {
	r, ok := f.records[key(rec.EmployeeID.String(), rec.Date)]
	if !ok || r.Status != StatusAbsent || r.CheckInTime != nil {
		return 0, nil
	}
	r.CheckInTime = rec.CheckInTime
	r.Status = rec.Status
	r.Location = rec.Location
	r.QRScanData = rec.QRScanData
	r.Notes = rec.Notes
	return 1, nil
}

func (f *fakeRepo) ListEmployeeIDsWithoutRecord(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	var out []string
	for _, id := range f.missing {
		if _, ok := f.records[key(id, date)]; !ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

type fakeDirectory struct {
	badges map[string]string
}

func (f *fakeDirectory) ResolveByBadge(ctx context.Context, companyID, qrCode string) (string, error) {
	if id, ok := f.badges[qrCode]; ok {
		return id, nil
	}
	return "", gorm.ErrRecordNotFound
}

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func setup(t *testing.T, now time.Time) (*sql.DB, sqlmock.Sqlmock, *fakeRepo, *fixedClock, Service, string, string) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	repo := newFakeRepo()
	dir := &fakeDirectory{badges: map[string]string{"BADGE-001": employeeID}}
	clock := &fixedClock{now: now}

	svc := NewService(db, repo, dir, clock)
	return db, mock, repo, clock, svc, companyID, employeeID
}

func TestService_CheckInThenCheckOut(t *testing.T) {
	_, mock, _, clock, svc, companyID, employeeID := setup(t, at("2025-01-06 08:00:00"))
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	in, err := svc.CheckIn(ctx, companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.NoError(t, err)
	assert.Equal(t, StatusPresent, in.Status)
	assert.Equal(t, "2025-01-06", in.Date)
	assert.Equal(t, employeeID, in.EmployeeID)
	assert.NotNil(t, in.CheckInTime)
	assert.Nil(t, in.CheckOutTime)
	// Open session reads as zero duration, not an error.
	assert.Equal(t, "—", in.WorkedHours)
	assert.EqualValues(t, 0, in.WorkedSeconds)

	clock.now = at("2025-01-06 17:30:00")
	mock.ExpectBegin()
	mock.ExpectCommit()
	out, err := svc.CheckOut(ctx, companyID, employeeID, CheckOutRequest{})
	assert.NoError(t, err)
	assert.NotNil(t, out.CheckOutTime)
	assert.Equal(t, StatusPresent, out.Status)
	assert.Equal(t, "9h 30m", out.WorkedHours)
	assert.EqualValues(t, (9*time.Hour + 30*time.Minute).Seconds(), out.WorkedSeconds)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_CutoffBoundary(t *testing.T) {
	cases := []struct {
		clock  string
		status string
	}{
		{"2025-01-06 08:29:59", StatusPresent},
		{"2025-01-06 08:30:00", StatusPresent}, // boundary is exclusive
		{"2025-01-06 08:30:01", StatusLate},
	}

	for _, tc := range cases {
		t.Run(tc.clock, func(t *testing.T) {
			_, mock, _, _, svc, companyID, _ := setup(t, at(tc.clock))

			mock.ExpectBegin()
			mock.ExpectCommit()
			resp, err := svc.CheckIn(context.Background(), companyID, CheckInRequest{QRCode: "BADGE-001"})
			assert.NoError(t, err)
			assert.Equal(t, tc.status, resp.Status)
		})
	}
}

// The boundary stays exclusive below whole seconds: half a second past
// 08:30 is already late.
func TestService_CheckIn_CutoffSubSecond(t *testing.T) {
	_, mock, _, _, svc, companyID, _ := setup(t, at("2025-01-06 08:30:00").Add(500*time.Millisecond))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(context.Background(), companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
}

// An employee marked absent by the scan can still check in afterwards: the
// synthesized row is claimed, not reported as a completed day.
func TestService_CheckIn_ClaimsScanSynthesizedAbsence(t *testing.T) {
	_, mock, repo, _, svc, companyID, employeeID := setup(t, at("2025-01-06 16:30:00"))
	repo.missing = []string{employeeID}
	ctx := context.Background()
	day := at("2025-01-06 00:00:00")

	mock.ExpectBegin()
	mock.ExpectCommit()
	marked, err := svc.MarkAbsentees(ctx, companyID, day)
	assert.NoError(t, err)
	assert.Equal(t, 1, marked)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(ctx, companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)

	// Still one row for the day, now carrying the session.
	assert.Len(t, repo.records, 1)
	rec := repo.records[key(employeeID, day)]
	assert.NotNil(t, rec.CheckInTime)
	assert.Equal(t, StatusLate, rec.Status)

	// The claimed session behaves like any open one.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(ctx, companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
}

func TestService_CheckIn_StoresQRSourceVerbatim(t *testing.T) {
	_, mock, repo, _, svc, companyID, employeeID := setup(t, at("2025-01-06 08:00:00"))

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(context.Background(), companyID, CheckInRequest{QRCode: "  BADGE-001  "})
	assert.NoError(t, err)

	rec := repo.records[key(employeeID, at("2025-01-06 00:00:00"))]
	assert.NotNil(t, rec.QRScanData)
	assert.Equal(t, "  BADGE-001  ", *rec.QRScanData)
}

func TestService_CheckIn_TwiceYieldsOneRecordAndDistinctErrors(t *testing.T) {
	_, mock, repo, clock, svc, companyID, employeeID := setup(t, at("2025-01-06 08:10:00"))
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(ctx, companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.NoError(t, err)

	// Second attempt against the still-open session.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(ctx, companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.Len(t, repo.records, 1)

	// Close the session, then try again: different error kind.
	clock.now = at("2025-01-06 17:00:00")
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.CheckOut(ctx, companyID, employeeID, CheckOutRequest{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckIn(ctx, companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCompletedToday)
	assert.Len(t, repo.records, 1)
}

func TestService_CheckIn_UnknownBadge(t *testing.T) {
	_, _, repo, _, svc, companyID, _ := setup(t, at("2025-01-06 08:00:00"))

	_, err := svc.CheckIn(context.Background(), companyID, CheckInRequest{QRCode: "NO-SUCH-BADGE"})
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
	assert.Empty(t, repo.records)
}

func TestService_CheckOut_BeforeCheckIn(t *testing.T) {
	_, mock, _, _, svc, companyID, employeeID := setup(t, at("2025-01-06 09:00:00"))

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.CheckOut(context.Background(), companyID, employeeID, CheckOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
}

func TestService_CheckOut_Twice(t *testing.T) {
	_, mock, _, clock, svc, companyID, employeeID := setup(t, at("2025-01-06 08:00:00"))
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.CheckIn(ctx, companyID, CheckInRequest{QRCode: "BADGE-001"})
	assert.NoError(t, err)

	clock.now = at("2025-01-06 16:00:00")
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.CheckOut(ctx, companyID, employeeID, CheckOutRequest{})
	assert.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(ctx, companyID, employeeID, CheckOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
}

// A lost conditional update (zero rows) must surface as AlreadyCheckedOut,
// never be silently ignored.
func TestService_CheckOut_LostRaceReportsAlreadyCheckedOut(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	now := at("2025-01-06 17:00:00")
	checkIn := at("2025-01-06 08:00:00")

	repo := &racingRepo{open: Record{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		EmployeeID:  uuid.MustParse(employeeID),
		Date:        at("2025-01-06 00:00:00"),
		CheckInTime: &checkIn,
		Status:      StatusPresent,
	}}

	svc := NewService(db, repo, &fakeDirectory{}, &fixedClock{now: now})

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.CheckOut(context.Background(), companyID, employeeID, CheckOutRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
}

// racingRepo reports an open record but refuses the conditional update, as
// if another request closed the session in between.
type racingRepo struct {
	fakeRepo
	open Record
}

func (r *racingRepo) WithTx(tx *sql.Tx) Repository { return r }

func (r *racingRepo) FindByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) (*Record, error) {
	cp := r.open
	return &cp, nil
}

func (r *racingRepo) CompleteCheckOut(ctx context.Context, companyID, employeeID string, date, checkOut time.Time) (int64, error) {
	return 0, nil
}

func TestService_MarkAbsentees(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	companyID := uuid.New().String()
	missing := []string{uuid.New().String(), uuid.New().String()}

	repo := &absenceRepo{fakeRepo: *newFakeRepo(), missing: missing}
	svc := NewService(db, repo, &fakeDirectory{}, &fixedClock{now: at("2025-01-07 02:00:00")})
	ctx := context.Background()

	// Saturday: nothing to do, no transaction.
	marked, err := svc.MarkAbsentees(ctx, companyID, at("2025-01-04 00:00:00"))
	assert.NoError(t, err)
	assert.Zero(t, marked)

	// Monday: both employees get an ABSENT row.
	mock.ExpectBegin()
	mock.ExpectCommit()
	marked, err = svc.MarkAbsentees(ctx, companyID, at("2025-01-06 00:00:00"))
	assert.NoError(t, err)
	assert.Equal(t, 2, marked)
	for _, id := range missing {
		rec, ok := repo.records[key(id, at("2025-01-06 00:00:00"))]
		assert.True(t, ok)
		assert.Equal(t, StatusAbsent, rec.Status)
		assert.Nil(t, rec.CheckInTime)
		assert.Nil(t, rec.CheckOutTime)
	}

	// Re-run is idempotent: the unique index swallows the duplicates.
	mock.ExpectBegin()
	mock.ExpectCommit()
	marked, err = svc.MarkAbsentees(ctx, companyID, at("2025-01-06 00:00:00"))
	assert.NoError(t, err)
	assert.Zero(t, marked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

type absenceRepo struct {
	fakeRepo
	missing []string
}

func (r *absenceRepo) WithTx(tx *sql.Tx) Repository { return r }

func (r *absenceRepo) ListEmployeeIDsWithoutRecord(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	return r.missing, nil
}
