package employeeerrors

import (
	"net/http"

	"campus-hr/internal/shared/apperror"
)

var (
	ErrPersonNotFound = apperror.New(
		apperror.CodeNotFound,
		"person not found",
		http.StatusNotFound,
	)
	ErrPersonAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"a person with this email already exists",
		http.StatusConflict,
	)
	ErrInvalidPersonID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid person id",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role",
		http.StatusBadRequest,
	)
	ErrInvalidPosition = apperror.New(
		apperror.CodeInvalidInput,
		"invalid position",
		http.StatusBadRequest,
	)
	ErrPersonInactive = apperror.New(
		apperror.CodeInvalidState,
		"person is not active",
		http.StatusBadRequest,
	)
)
