package inventoryerrors

import (
	"net/http"

	"supplyhr/internal/shared/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"Inventory item not found",
		http.StatusNotFound,
	)
	ErrSKUAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"SKU already exists in this company",
		http.StatusConflict,
	)
	ErrInsufficientStock = apperror.New(
		apperror.CodeInvalidState,
		"Adjustment would drive stock below zero",
		http.StatusConflict,
	)
	ErrZeroAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"Adjustment delta must not be zero",
		http.StatusBadRequest,
	)
)
