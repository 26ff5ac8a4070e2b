package personnelerrors

import (
	"net/http"

	"tireops/internal/shared/apperror"
)

var (
	ErrPersonnelNotFound = apperror.New(
		apperror.CodeNotFound,
		"personnel not found",
		http.StatusNotFound,
	)
	ErrPersonnelAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"personnel with this email already exists",
		http.StatusConflict,
	)
	ErrPersonnelNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"personnel number already exists",
		http.StatusConflict,
	)
	ErrInvalidPersonnelID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid personnel id",
		http.StatusBadRequest,
	)
	ErrInvalidScheduledStart = apperror.New(
		apperror.CodeInvalidInput,
		"scheduled_start_minutes must be between 0 and 1439",
		http.StatusBadRequest,
	)
)
