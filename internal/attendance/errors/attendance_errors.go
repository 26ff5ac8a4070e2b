package attendanceerrors

import (
	"net/http"

	"tireops/internal/shared/apperror"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrIssueNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance issue not found",
		http.StatusNotFound,
	)
	ErrInvalidIssueID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance issue id",
		http.StatusBadRequest,
	)
	ErrWriteUpAlreadyLinked = apperror.New(
		apperror.CodeInvalidState,
		"a write-up already exists for this attendance issue",
		http.StatusConflict,
	)
	ErrInvalidPersonnelID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid personnel id",
		http.StatusBadRequest,
	)
)
