package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	attendanceerrors "supplyhr/internal/attendance/errors"
	"supplyhr/internal/events"
	"supplyhr/internal/messaging/kafka"
	"supplyhr/internal/shared/apperror"
	"supplyhr/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Cutoff for punctuality. Strictly after 08:30:00 is LATE; 08:30:00
// exactly is PRESENT.
const (
	cutoffHour   = 8
	cutoffMinute = 30
)

// EmployeeDirectory is a local interface; the employee package satisfies
// it. Resolution failures must surface gorm.ErrRecordNotFound for an
// unknown badge.
type EmployeeDirectory interface {
	ResolveByBadge(ctx context.Context, companyID, qrCode string) (string, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, companyID string, req CheckInRequest) (RecordResponse, error)
	CheckOut(ctx context.Context, companyID, actorEmployeeID string, req CheckOutRequest) (RecordResponse, error)
	GetToday(ctx context.Context, companyID, employeeID string) (RecordResponse, error)
	GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]RecordResponse, error)
	GetStatistics(ctx context.Context, companyID string, filter StatisticsFilterRequest) (StatisticsResponse, error)
	MarkAbsentees(ctx context.Context, companyID string, date time.Time) (int, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory EmployeeDirectory
	outbox    kafka.OutboxRepository
	clock     Clock
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, directory EmployeeDirectory, clock Clock, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, directory, clock, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	directory EmployeeDirectory,
	clock Clock,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if clock == nil {
		clock = NewSystemClock(time.UTC)
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		outbox:    outboxRepo,
		clock:     clock,
		logger:    l,
	}
}

func (s *service) CheckIn(ctx context.Context, companyID string, req CheckInRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	qrCode := strings.TrimSpace(req.QRCode)
	if qrCode == "" {
		return RecordResponse{}, attendanceerrors.ErrEmptyQRCode
	}

	employeeID, err := s.directory.ResolveByBadge(ctx, companyID, qrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return RecordResponse{}, storageError(err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, storageError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.clock.Now()
	today := dateOnly(now)

	existing, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return RecordResponse{}, storageError(err)
	}
	claiming := false
	if err == nil {
		if !existing.UnclaimedAbsence() {
			return RecordResponse{}, duplicateCheckInError(*existing)
		}
		// The absence scan got to this day first but the employee showed
		// up after all; the synthesized row is taken over instead of
		// blocking the session.
		claiming = true
	}

	status := StatusPresent
	if afterCutoff(now) {
		status = StatusLate
	}

	// The scan source is kept verbatim; trimming is only for resolution.
	qrSource := req.QRCode
	checkIn := now
	rec := &Record{
		ID:          uuid.New(),
		CompanyID:   uuid.MustParse(companyID),
		EmployeeID:  uuid.MustParse(employeeID),
		Date:        today,
		CheckInTime: &checkIn,
		Status:      status,
		Location:    req.Location,
		QRScanData:  &qrSource,
		Notes:       req.Notes,
	}

	if claiming {
		rec.ID = existing.ID
		rows, err := qtx.ClaimAbsent(ctx, rec)
		if err != nil {
			return RecordResponse{}, storageError(err)
		}
		if rows == 0 {
			// A concurrent check-in claimed the row first.
			return RecordResponse{}, s.classifyConflict(ctx, companyID, employeeID, today)
		}
	} else if err := qtx.Create(ctx, rec); err != nil {
		if isDailyUniqueViolation(err) {
			// Lost the race to a concurrent check-in. The committed row
			// decides which distinct error the caller sees.
			return RecordResponse{}, s.classifyConflict(ctx, companyID, employeeID, today)
		}
		return RecordResponse{}, storageError(err)
	}

	if err := s.appendSessionEvent(ctx, tx, rid, *rec, events.AttendanceCheckedIn); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, storageError(err)
	}

	s.logger.Info("check-in recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
		zap.String("status", status),
	)

	return mapToResponse(*rec), nil
}

func (s *service) CheckOut(ctx context.Context, companyID, actorEmployeeID string, req CheckOutRequest) (RecordResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID := actorEmployeeID
	if req.QRCode != nil && strings.TrimSpace(*req.QRCode) != "" {
		resolved, err := s.directory.ResolveByBadge(ctx, companyID, strings.TrimSpace(*req.QRCode))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RecordResponse{}, attendanceerrors.ErrEmployeeNotFound
			}
			return RecordResponse{}, storageError(err)
		}
		employeeID = resolved
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return RecordResponse{}, storageError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.clock.Now()
	today := dateOnly(now)

	rec, err := qtx.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return RecordResponse{}, storageError(err)
	}
	if rec.CheckInTime == nil {
		// Synthesized ABSENT row; there is no session to close.
		return RecordResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if rec.CheckOutTime != nil {
		return RecordResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	rows, err := qtx.CompleteCheckOut(ctx, companyID, employeeID, today, now)
	if err != nil {
		return RecordResponse{}, storageError(err)
	}
	if rows == 0 {
		// A concurrent check-out won; report it, never swallow it.
		return RecordResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	checkOut := now
	rec.CheckOutTime = &checkOut
	if req.Notes != nil {
		rec.Notes = req.Notes
	}

	if err := s.appendSessionEvent(ctx, tx, rid, *rec, events.AttendanceCheckedOut); err != nil {
		return RecordResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return RecordResponse{}, storageError(err)
	}

	s.logger.Info("check-out recorded",
		zap.String("request_id", rid),
		zap.String("employee_id", employeeID),
	)

	return mapToResponse(*rec), nil
}

func (s *service) GetToday(ctx context.Context, companyID, employeeID string) (RecordResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return RecordResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	today := dateOnly(s.clock.Now())
	rec, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecordResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return RecordResponse{}, storageError(err)
	}

	return mapToResponse(*rec), nil
}

func (s *service) GetAll(ctx context.Context, companyID, actorID string, canReadAll bool) ([]RecordResponse, error) {
	var (
		rows []Record
		err  error
	)
	if canReadAll {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	} else {
		if _, parseErr := uuid.Parse(actorID); parseErr != nil {
			return nil, attendanceerrors.ErrInvalidEmployeeID
		}
		rows, err = s.repo.FindAllByCompanyAndEmployee(ctx, companyID, actorID)
	}
	if err != nil {
		return nil, storageError(err)
	}

	res := make([]RecordResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// GetStatistics aggregates records whose date falls in the inclusive
// range. ABSENT days only exist when the absence scan has produced them.
func (s *service) GetStatistics(ctx context.Context, companyID string, filter StatisticsFilterRequest) (StatisticsResponse, error) {
	if _, err := uuid.Parse(filter.EmployeeID); err != nil {
		return StatisticsResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}

	start, err := time.Parse(dateLayout, filter.StartDate)
	if err != nil {
		return StatisticsResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, filter.EndDate)
	if err != nil {
		return StatisticsResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return StatisticsResponse{}, attendanceerrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindByEmployeeAndRange(ctx, companyID, filter.EmployeeID, start, end)
	if err != nil {
		return StatisticsResponse{}, storageError(err)
	}

	stats := StatisticsResponse{
		EmployeeID: filter.EmployeeID,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
	}

	var total time.Duration
	for _, r := range rows {
		switch r.Status {
		case StatusPresent:
			stats.PresentDays++
		case StatusLate:
			stats.LateDays++
		case StatusAbsent:
			stats.AbsentDays++
		}
		total += WorkDuration(r)
	}

	stats.TotalHours = total.Hours()
	if len(rows) > 0 {
		stats.AvgHoursPerDay = total.Hours() / float64(len(rows))
	}

	return stats, nil
}

// MarkAbsentees synthesizes ABSENT records for every employee without a
// record on the given weekday. Check-in itself never produces ABSENT; this
// scan is the only source. Idempotent: the daily unique index swallows
// re-runs.
func (s *service) MarkAbsentees(ctx context.Context, companyID string, date time.Time) (int, error) {
	day := dateOnly(date)
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return 0, nil
	}

	missing, err := s.repo.ListEmployeeIDsWithoutRecord(ctx, companyID, day)
	if err != nil {
		return 0, storageError(err)
	}
	if len(missing) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, storageError(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	marked := 0
	for _, employeeID := range missing {
		rec := &Record{
			ID:         uuid.New(),
			CompanyID:  uuid.MustParse(companyID),
			EmployeeID: uuid.MustParse(employeeID),
			Date:       day,
			Status:     StatusAbsent,
		}
		if err := qtx.Create(ctx, rec); err != nil {
			if isDailyUniqueViolation(err) {
				continue
			}
			return 0, storageError(err)
		}
		if err := s.appendSessionEvent(ctx, tx, "", *rec, events.AttendanceMarkedAbsent); err != nil {
			return 0, err
		}
		marked++
	}

	if err := tx.Commit(); err != nil {
		return 0, storageError(err)
	}

	s.logger.Info("absence scan finished",
		zap.String("company_id", companyID),
		zap.String("date", day.Format(dateLayout)),
		zap.Int("marked", marked),
	)

	return marked, nil
}

func (s *service) appendSessionEvent(ctx context.Context, tx *sql.Tx, requestID string, rec Record, eventType string) error {
	if s.outbox == nil {
		return nil
	}

	event := events.AttendanceSessionEvent{
		EventType:  eventType,
		RequestID:  requestID,
		RecordID:   rec.ID.String(),
		CompanyID:  rec.CompanyID.String(),
		EmployeeID: rec.EmployeeID.String(),
		Date:       rec.Date.Format(dateLayout),
		Status:     rec.Status,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "attendance",
		AggregateID:   rec.ID.String(),
		EventType:     eventType,
		Topic:         events.AttendanceSessionTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// classifyConflict is called after losing the insert race; it reads the
// committed winner to pick the distinct error kind.
func (s *service) classifyConflict(ctx context.Context, companyID, employeeID string, day time.Time) error {
	existing, err := s.repo.FindByEmployeeAndDate(ctx, companyID, employeeID, day)
	if err != nil {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	return duplicateCheckInError(*existing)
}

func duplicateCheckInError(existing Record) error {
	if existing.Open() {
		return attendanceerrors.ErrAlreadyCheckedIn
	}
	return attendanceerrors.ErrAlreadyCompletedToday
}

func afterCutoff(now time.Time) bool {
	cutoff := time.Duration(cutoffHour)*time.Hour + time.Duration(cutoffMinute)*time.Minute
	// Full time-of-day comparison; the boundary is exclusive down to the
	// nanosecond, so 08:30:00.000000001 is already late.
	return now.Sub(dateOnly(now)) > cutoff
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isDailyUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_attendance_daily"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_attendance_daily")
}

func storageError(err error) error {
	return apperror.Wrap(err, apperror.CodeStorageUnavailable,
		"Storage is temporarily unavailable", http.StatusServiceUnavailable)
}

func mapToResponse(r Record) RecordResponse {
	worked := WorkDuration(r)
	resp := RecordResponse{
		ID:            r.ID.String(),
		CompanyID:     r.CompanyID.String(),
		EmployeeID:    r.EmployeeID.String(),
		Date:          r.Date.Format(dateLayout),
		Status:        r.Status,
		Location:      r.Location,
		QRScanData:    r.QRScanData,
		Notes:         r.Notes,
		WorkedHours:   FormatHours(worked),
		WorkedSeconds: int64(worked.Seconds()),
	}
	if r.CheckInTime != nil {
		v := r.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if r.CheckOutTime != nil {
		v := r.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	return resp
}
