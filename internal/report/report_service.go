package report

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"supplyhr/internal/attendance"
	attendanceerrors "supplyhr/internal/attendance/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// AttendanceSource is the slice of the attendance store the report
// builder reads from.
type AttendanceSource interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]attendance.Record, error)
}

// EmployeeNamer resolves employee ids to display names for the sheet.
type EmployeeNamer interface {
	NameByID(ctx context.Context, companyID, employeeID string) (string, error)
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	// BuildAttendanceWorkbook renders all attendance sessions inside the
	// date range as an XLSX workbook with a per-status summary sheet.
	BuildAttendanceWorkbook(ctx context.Context, companyID, startDate, endDate string) ([]byte, error)
}

type service struct {
	source AttendanceSource
	namer  EmployeeNamer
	logger *zap.Logger
}

func NewService(source AttendanceSource, namer EmployeeNamer, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{source: source, namer: namer, logger: l}
}

func (s *service) BuildAttendanceWorkbook(ctx context.Context, companyID, startDate, endDate string) ([]byte, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}

	records, err := s.source.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var inRange []attendance.Record
	for _, rec := range records {
		d := rec.Date
		if d.Before(start) || d.After(end) {
			continue
		}
		inRange = append(inRange, rec)
	}
	sort.Slice(inRange, func(i, j int) bool {
		if !inRange[i].Date.Equal(inRange[j].Date) {
			return inRange[i].Date.Before(inRange[j].Date)
		}
		return inRange[i].EmployeeID.String() < inRange[j].EmployeeID.String()
	})

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	styleHeader, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#3b82f6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	headers := []string{"Employee", "Date", "Status", "Check In", "Check Out", "Worked"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, styleHeader)
	}

	statusCounts := map[string]int{}
	var totalWorked time.Duration

	idx := 2
	for _, rec := range inRange {
		name := rec.EmployeeID.String()
		if s.namer != nil {
			if resolved, err := s.namer.NameByID(ctx, companyID, name); err == nil && resolved != "" {
				name = resolved
			}
		}

		worked := attendance.WorkDuration(rec)
		totalWorked += worked
		statusCounts[rec.Status]++

		f.SetCellValue(sheet, fmt.Sprintf("A%d", idx), name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", idx), rec.Date.Format(dateLayout))
		f.SetCellValue(sheet, fmt.Sprintf("C%d", idx), rec.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", idx), formatClock(rec.CheckInTime))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", idx), formatClock(rec.CheckOutTime))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", idx), attendance.FormatHours(worked))
		idx++
	}

	summary := "Summary"
	if _, err := f.NewSheet(summary); err != nil {
		return nil, err
	}
	f.SetCellValue(summary, "A1", "Period")
	f.SetCellValue(summary, "B1", fmt.Sprintf("%s to %s", startDate, endDate))
	f.SetCellValue(summary, "A2", "Sessions")
	f.SetCellValue(summary, "B2", len(inRange))
	f.SetCellValue(summary, "A3", "Present")
	f.SetCellValue(summary, "B3", statusCounts[attendance.StatusPresent])
	f.SetCellValue(summary, "A4", "Late")
	f.SetCellValue(summary, "B4", statusCounts[attendance.StatusLate])
	f.SetCellValue(summary, "A5", "Absent")
	f.SetCellValue(summary, "B5", statusCounts[attendance.StatusAbsent])
	f.SetCellValue(summary, "A6", "Total Worked")
	f.SetCellValue(summary, "B6", attendance.FormatHours(totalWorked))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}

	s.logger.Info("attendance workbook built",
		zap.String("company_id", companyID),
		zap.Int("sessions", len(inRange)),
	)

	return buf.Bytes(), nil
}

func formatClock(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}
