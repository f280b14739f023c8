package attendance

type CheckInRequest struct {
	QRCode   string  `json:"qr_code" binding:"required"`
	Location *string `json:"location"`
	Notes    *string `json:"notes"`
}

// CheckOutRequest optionally carries a QR code for kiosk flows; when
// absent the authenticated employee checks out.
type CheckOutRequest struct {
	QRCode *string `json:"qr_code"`
	Notes  *string `json:"notes"`
}

type RecordResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	EmployeeID    string  `json:"employee_id"`
	Date          string  `json:"date"`
	CheckInTime   *string `json:"check_in_time,omitempty"`
	CheckOutTime  *string `json:"check_out_time,omitempty"`
	Status        string  `json:"status"`
	Location      *string `json:"location,omitempty"`
	QRScanData    *string `json:"qr_scan_data,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	WorkedHours   string  `json:"worked_hours"`
	WorkedSeconds int64   `json:"worked_seconds"`
}

type StatisticsFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
}

type StatisticsResponse struct {
	EmployeeID     string  `json:"employee_id"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	PresentDays    int     `json:"present_days"`
	LateDays       int     `json:"late_days"`
	AbsentDays     int     `json:"absent_days"`
	TotalHours     float64 `json:"total_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}
