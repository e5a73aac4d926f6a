package attendanceerrors

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
	ErrInvalidEventID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance event id",
		http.StatusBadRequest,
	)
	ErrInvalidScheduleEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid schedule entry id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must be before or equal to",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"already checked in for this session",
		http.StatusConflict,
	)
	ErrCheckInNotFound = apperror.New(
		apperror.CodeNotFound,
		"no open check-in found for this session",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"already checked out for this session",
		http.StatusBadRequest,
	)
	ErrEventNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance event not found",
		http.StatusNotFound,
	)
	ErrScheduleEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"schedule entry not found",
		http.StatusNotFound,
	)
	ErrNegativeDuration = apperror.New(
		apperror.CodeDataError,
		"time_out is earlier than time_in",
		http.StatusUnprocessableEntity,
	)
	ErrMissingTimeIn = apperror.New(
		apperror.CodeDataError,
		"time_out recorded without a time_in",
		http.StatusUnprocessableEntity,
	)
)
