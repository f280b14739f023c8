package report_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"supplyhr/internal/attendance"
	attendanceerrors "supplyhr/internal/attendance/errors"
	"supplyhr/internal/report"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSource struct {
	records []attendance.Record
}

func (f *fakeSource) FindAllByCompany(ctx context.Context, companyID string) ([]attendance.Record, error) {
	return f.records, nil
}

type fakeNamer struct {
	names map[string]string
}

func (f *fakeNamer) NameByID(ctx context.Context, companyID, employeeID string) (string, error) {
	return f.names[employeeID], nil
}

func ts(day string, clock string) *time.Time {
	t, _ := time.Parse("2006-01-02 15:04", day+" "+clock)
	return &t
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestService_BuildAttendanceWorkbook(t *testing.T) {
	companyID := uuid.NewString()
	sara := uuid.New()
	omar := uuid.New()

	source := &fakeSource{records: []attendance.Record{
		{
			EmployeeID:   sara,
			Date:         day("2024-03-04"),
			CheckInTime:  ts("2024-03-04", "08:15"),
			CheckOutTime: ts("2024-03-04", "17:15"),
			Status:       attendance.StatusPresent,
		},
		{
			EmployeeID:   omar,
			Date:         day("2024-03-04"),
			CheckInTime:  ts("2024-03-04", "09:02"),
			CheckOutTime: ts("2024-03-04", "17:32"),
			Status:       attendance.StatusLate,
		},
		{
			EmployeeID: sara,
			Date:       day("2024-03-05"),
			Status:     attendance.StatusAbsent,
		},
		// Outside the requested range, must not appear.
		{
			EmployeeID:   sara,
			Date:         day("2024-02-28"),
			CheckInTime:  ts("2024-02-28", "08:00"),
			CheckOutTime: ts("2024-02-28", "16:00"),
			Status:       attendance.StatusPresent,
		},
	}}
	namer := &fakeNamer{names: map[string]string{
		sara.String(): "Sara Haddad",
		omar.String(): "Omar Aziz",
	}}

	svc := report.NewService(source, namer)

	data, err := svc.BuildAttendanceWorkbook(context.Background(), companyID, "2024-03-01", "2024-03-07")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 4, "header + three sessions in range")

	assert.Equal(t, []string{"Employee", "Date", "Status", "Check In", "Check Out", "Worked"}, rows[0])

	// Rows are ordered by date, then employee.
	assert.Equal(t, "2024-03-04", rows[1][1])
	assert.Equal(t, "2024-03-04", rows[2][1])
	assert.Equal(t, "2024-03-05", rows[3][1])

	names := []string{rows[1][0], rows[2][0]}
	assert.Contains(t, names, "Sara Haddad")
	assert.Contains(t, names, "Omar Aziz")

	for _, row := range rows[1:] {
		if row[0] == "Sara Haddad" && row[1] == "2024-03-04" {
			assert.Equal(t, attendance.StatusPresent, row[2])
			assert.Equal(t, "08:15", row[3])
			assert.Equal(t, "9h 0m", row[5])
		}
		if row[0] == "Omar Aziz" {
			assert.Equal(t, attendance.StatusLate, row[2])
			assert.Equal(t, "8h 30m", row[5])
		}
	}

	// The absent row carries no times and no worked duration.
	last := rows[3]
	assert.Equal(t, attendance.StatusAbsent, last[2])
	assert.Equal(t, "—", last[5])

	present, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", present)

	late, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "1", late)

	absent, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "1", absent)

	worked, err := f.GetCellValue("Summary", "B6")
	require.NoError(t, err)
	assert.Equal(t, "17h 30m", worked)
}

func TestService_BuildAttendanceWorkbook_InvalidRange(t *testing.T) {
	svc := report.NewService(&fakeSource{}, &fakeNamer{})

	_, err := svc.BuildAttendanceWorkbook(context.Background(), uuid.NewString(), "04-03-2024", "2024-03-07")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)

	_, err = svc.BuildAttendanceWorkbook(context.Background(), uuid.NewString(), "2024-03-07", "2024-03-01")
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)
}
