package purchaseordererrors

import (
	"net/http"

	"supplyhr/internal/shared/apperror"
)

var (
	ErrOrderNotFound = apperror.New(
		apperror.CodeNotFound,
		"Purchase order not found",
		http.StatusNotFound,
	)
	ErrSupplierNotFound = apperror.New(
		apperror.CodeNotFound,
		"Supplier not found for this company",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Purchase order status transition not allowed",
		http.StatusConflict,
	)
	ErrEmptyOrderLines = apperror.New(
		apperror.CodeInvalidInput,
		"Purchase order needs at least one line",
		http.StatusBadRequest,
	)
	ErrDraftOnlyEdit = apperror.New(
		apperror.CodeInvalidState,
		"Only draft purchase orders can be edited",
		http.StatusConflict,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Rejection reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid company ID",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor ID",
		http.StatusBadRequest,
	)
	ErrInvalidSupplierID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid supplier ID",
		http.StatusBadRequest,
	)
)
