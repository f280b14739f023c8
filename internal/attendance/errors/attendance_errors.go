package attendanceerrors

import (
	"net/http"

	"supplyhr/internal/shared/apperror"
)

// The check-in/check-out error kinds are deliberately distinct so the
// caller can word its messaging per case.
var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"no employee matches the scanned code",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in today, session still open",
		http.StatusConflict,
	)
	ErrAlreadyCompletedToday = apperror.New(
		apperror.CodeConflict,
		"attendance for today is already completed",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"no check-in found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out today",
		http.StatusBadRequest,
	)
	ErrEmptyQRCode = apperror.New(
		apperror.CodeInvalidInput,
		"qr_code must not be empty",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
)
