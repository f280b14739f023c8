package suppliererrors

import (
	"net/http"

	"supplyhr/internal/shared/apperror"
)

var (
	ErrSupplierNotFound = apperror.New(
		apperror.CodeNotFound,
		"Supplier not found",
		http.StatusNotFound,
	)
	ErrSupplierAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Supplier with the same name already exists in this company",
		http.StatusConflict,
	)
	ErrInvalidSupplierID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid supplier ID",
		http.StatusBadRequest,
	)
)
