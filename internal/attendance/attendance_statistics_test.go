package attendance_test

import (
	"context"
	"testing"
	"time"

	"supplyhr/internal/attendance"
	attendanceerrors "supplyhr/internal/attendance/errors"
	attendanceMock "supplyhr/internal/attendance/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func closedRecord(employeeID uuid.UUID, date string, status string, worked time.Duration) attendance.Record {
	in := day(date).Add(8 * time.Hour)
	out := in.Add(worked)
	return attendance.Record{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		Date:         day(date),
		CheckInTime:  &in,
		CheckOutTime: &out,
		Status:       status,
	}
}

func TestService_GetStatistics(t *testing.T) {
	ctrl := gomock.NewController(t)
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := attendanceMock.NewMockRepository(ctrl)
	svc := attendance.NewService(db, repo, nil, utcClock{})

	companyID := uuid.New().String()
	employeeID := uuid.New()

	// 3 PRESENT + 2 LATE, 36 worked hours total.
	rows := []attendance.Record{
		closedRecord(employeeID, "2025-01-06", attendance.StatusPresent, 8*time.Hour),
		closedRecord(employeeID, "2025-01-07", attendance.StatusPresent, 8*time.Hour),
		closedRecord(employeeID, "2025-01-08", attendance.StatusPresent, 7*time.Hour),
		closedRecord(employeeID, "2025-01-09", attendance.StatusLate, 7*time.Hour),
		closedRecord(employeeID, "2025-01-10", attendance.StatusLate, 6*time.Hour),
	}

	repo.EXPECT().
		FindByEmployeeAndRange(gomock.Any(), companyID, employeeID.String(), day("2025-01-01"), day("2025-01-31")).
		Return(rows, nil)

	stats, err := svc.GetStatistics(context.Background(), companyID, attendance.StatisticsFilterRequest{
		EmployeeID: employeeID.String(),
		StartDate:  "2025-01-01",
		EndDate:    "2025-01-31",
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.PresentDays)
	assert.Equal(t, 2, stats.LateDays)
	assert.Equal(t, 0, stats.AbsentDays)
	assert.InDelta(t, 36.0, stats.TotalHours, 1e-9)
	assert.InDelta(t, 7.2, stats.AvgHoursPerDay, 1e-9)
}

func TestService_GetStatistics_EmptyRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := attendanceMock.NewMockRepository(ctrl)
	svc := attendance.NewService(db, repo, nil, utcClock{})

	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	repo.EXPECT().
		FindByEmployeeAndRange(gomock.Any(), companyID, employeeID, day("2025-02-01"), day("2025-02-28")).
		Return(nil, nil)

	stats, err := svc.GetStatistics(context.Background(), companyID, attendance.StatisticsFilterRequest{
		EmployeeID: employeeID,
		StartDate:  "2025-02-01",
		EndDate:    "2025-02-28",
	})
	assert.NoError(t, err)
	// No records: everything zero, no division by zero.
	assert.Zero(t, stats.TotalHours)
	assert.Zero(t, stats.AvgHoursPerDay)
}

func TestService_GetStatistics_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := attendanceMock.NewMockRepository(ctrl)
	svc := attendance.NewService(db, repo, nil, utcClock{})

	_, err = svc.GetStatistics(context.Background(), uuid.New().String(), attendance.StatisticsFilterRequest{
		EmployeeID: uuid.New().String(),
		StartDate:  "2025-03-31",
		EndDate:    "2025-03-01",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateRange)

	_, err = svc.GetStatistics(context.Background(), uuid.New().String(), attendance.StatisticsFilterRequest{
		EmployeeID: uuid.New().String(),
		StartDate:  "03/01/2025",
		EndDate:    "2025-03-31",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
}
