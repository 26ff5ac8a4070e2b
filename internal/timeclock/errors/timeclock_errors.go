package timeclockerrors

import (
	"net/http"

	"tireops/internal/shared/apperror"
)

var (
	ErrTimeEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry not found",
		http.StatusNotFound,
	)
	ErrInvalidTimeEntryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time entry id",
		http.StatusBadRequest,
	)
	ErrInvalidPersonnelID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid personnel id",
		http.StatusBadRequest,
	)
	ErrInvalidEntryType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time entry type",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimestamp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timestamp, expected RFC3339",
		http.StatusBadRequest,
	)
	ErrPersonnelNotFound = apperror.New(
		apperror.CodeNotFound,
		"personnel not found",
		http.StatusNotFound,
	)

	ErrAlreadyClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"already clocked in",
		http.StatusConflict,
	)
	ErrNotClockedIn = apperror.New(
		apperror.CodeInvalidState,
		"not currently clocked in",
		http.StatusConflict,
	)
	ErrAlreadyOnBreak = apperror.New(
		apperror.CodeInvalidState,
		"break already started",
		http.StatusConflict,
	)
	ErrNotOnBreak = apperror.New(
		apperror.CodeInvalidState,
		"no open break to end",
		http.StatusConflict,
	)
	ErrBreakOpen = apperror.New(
		apperror.CodeInvalidState,
		"cannot clock out while a break is open",
		http.StatusConflict,
	)

	ErrEditReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a reason is required for manual time entry changes",
		http.StatusBadRequest,
	)

	ErrCorrectionNotFound = apperror.New(
		apperror.CodeNotFound,
		"correction request not found",
		http.StatusNotFound,
	)
	ErrInvalidCorrectionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid correction request id",
		http.StatusBadRequest,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"correction request has already been reviewed",
		http.StatusConflict,
	)
	ErrOriginalEntryNotFound = apperror.New(
		apperror.CodeNotFound,
		"time entry referenced by the correction was not found",
		http.StatusNotFound,
	)
)
