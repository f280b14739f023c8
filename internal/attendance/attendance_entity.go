package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusAbsent  = "ABSENT"
)

// Record is one daily attendance session. The composite unique index is
// the arbiter for "at most one record per employee per day"; concurrent
// check-ins race on it and exactly one wins.
//
// Status is fixed at creation. Check-out never recomputes it. ABSENT rows
// are synthesized by the absence scan and carry no check-in or check-out
// time.
type Record struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID  `gorm:"column:company_id;type:uuid;not null;uniqueIndex:uq_attendance_daily"`
	EmployeeID   uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_daily"`
	Date         time.Time  `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_daily"`
	CheckInTime  *time.Time `gorm:"column:check_in_time;type:timestamptz"`
	CheckOutTime *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	Status       string     `gorm:"column:status;type:varchar(20);not null"`
	Location     *string    `gorm:"column:location;type:varchar(120)"`
	QRScanData   *string    `gorm:"column:qr_scan_data;type:varchar(200)"`
	Notes        *string    `gorm:"column:notes;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "attendance_records"
}

// Open reports whether the session has a check-in but no check-out yet.
func (r Record) Open() bool {
	return r.CheckInTime != nil && r.CheckOutTime == nil
}

// UnclaimedAbsence reports whether the record is a scan-synthesized ABSENT
// row that no check-in has taken over yet.
func (r Record) UnclaimedAbsence() bool {
	return r.Status == StatusAbsent && r.CheckInTime == nil
}
