package attendance

import (
	"fmt"
	"time"
)

// WorkDuration is check-out minus check-in. An open or absent record has a
// zero duration; "still in progress" is not an error.
func WorkDuration(r Record) time.Duration {
	if r.CheckInTime == nil || r.CheckOutTime == nil {
		return 0
	}
	d := r.CheckOutTime.Sub(*r.CheckInTime)
	if d < 0 {
		return 0
	}
	return d
}

// FormatHours renders a duration the way the dashboards do: whole hours
// and minutes, truncated rather than rounded, and an em-dash for zero.
func FormatHours(d time.Duration) string {
	if d == 0 {
		return "—"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
