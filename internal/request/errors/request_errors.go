package requesterrors

import (
	"net/http"

	"campus-hr/internal/shared/apperror"
)

var (
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidRequesterID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid requester id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidRequestType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request type",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrDestinationRequired = apperror.New(
		apperror.CodeInvalidInput,
		"destination is required for gate pass requests",
		http.StatusBadRequest,
	)
	ErrInvalidGateWindow = apperror.New(
		apperror.CodeInvalidInput,
		"gate pass time_out must be before time_in",
		http.StatusBadRequest,
	)
	ErrLeaveDatesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"start_date and end_date are required for leave requests",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrRequesterNotFound = apperror.New(
		apperror.CodeNotFound,
		"requester not found",
		http.StatusNotFound,
	)
	ErrIllegalTransition = apperror.New(
		apperror.CodeInvalidState,
		"request is not in a state that allows this action",
		http.StatusBadRequest,
	)
	ErrStateChanged = apperror.New(
		apperror.CodeConflict,
		"request state changed, refresh and retry",
		http.StatusConflict,
	)
	ErrGatePassOnly = apperror.New(
		apperror.CodeInvalidState,
		"guard actions only apply to gate pass requests",
		http.StatusBadRequest,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester may cancel a request",
		http.StatusForbidden,
	)
)
