package payrollerrors

import (
	"net/http"

	"campus-hr/internal/shared/apperror"
)

var (
	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid person id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLineID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid payroll line id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrLineNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll line not found",
		http.StatusNotFound,
	)
	ErrLineFinalized = apperror.New(
		apperror.CodeInvalidState,
		"payroll line is finalized and can no longer be recomputed",
		http.StatusBadRequest,
	)
	ErrStateChanged = apperror.New(
		apperror.CodeConflict,
		"payroll line state changed, refresh and retry",
		http.StatusConflict,
	)
	ErrPersonNotFound = apperror.New(
		apperror.CodeNotFound,
		"person not found",
		http.StatusNotFound,
	)
)
