package events

import "time"

const AttendanceSessionTopic = "scm.attendance.session.v1"

const (
	AttendanceCheckedIn    = "attendance_checked_in"
	AttendanceCheckedOut   = "attendance_checked_out"
	AttendanceMarkedAbsent = "attendance_marked_absent"
)

// AttendanceSessionEvent is published for every state change of a daily
// attendance session. Date is YYYY-MM-DD.
type AttendanceSessionEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	RecordID   string    `json:"record_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
