package scheduleerrors

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
	ErrInvalidEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid schedule entry id",
		http.StatusBadRequest,
	)
	ErrInvalidDayOfWeek = apperror.New(
		apperror.CodeInvalidInput,
		"day_of_week must be between 0 (Sunday) and 6 (Saturday)",
		http.StatusBadRequest,
	)
	ErrInvalidClockFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidTimeWindow = apperror.New(
		apperror.CodeInvalidInput,
		"start_time must be strictly before end_time",
		http.StatusBadRequest,
	)
	ErrScheduleConflict = apperror.New(
		apperror.CodeConflict,
		"schedule entry overlaps existing entries for this person and day",
		http.StatusConflict,
	)
	ErrEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"schedule entry not found",
		http.StatusNotFound,
	)
)
