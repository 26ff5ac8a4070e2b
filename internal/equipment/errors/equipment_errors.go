package equipmenterrors

import (
	"net/http"

	"tireops/internal/shared/apperror"
)

var (
	ErrEquipmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"equipment not found",
		http.StatusNotFound,
	)
	ErrInvalidEquipmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid equipment id",
		http.StatusBadRequest,
	)
	ErrInvalidEquipmentType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid equipment type",
		http.StatusBadRequest,
	)
	ErrEquipmentNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"equipment number already exists",
		http.StatusConflict,
	)
	ErrNotAvailable = apperror.New(
		apperror.CodeInvalidState,
		"equipment is not available for assignment",
		http.StatusConflict,
	)
	ErrNotAssigned = apperror.New(
		apperror.CodeInvalidState,
		"equipment is not currently assigned",
		http.StatusConflict,
	)
	ErrAlreadyRetired = apperror.New(
		apperror.CodeInvalidState,
		"equipment is retired; no further status changes are permitted",
		http.StatusConflict,
	)
	ErrRepairBlocksReassignment = apperror.New(
		apperror.CodeInvalidState,
		"equipment requires repair and cannot be reassigned",
		http.StatusConflict,
	)
	ErrConcurrentStatusChange = apperror.New(
		apperror.CodeConflict,
		"equipment status changed concurrently, please retry",
		http.StatusConflict,
	)
	ErrSignatureRequired = apperror.New(
		apperror.CodeInvalidInput,
		"signature is required",
		http.StatusBadRequest,
	)
	ErrRetireReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"retirement reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidOverallCondition = apperror.New(
		apperror.CodeInvalidInput,
		"invalid overall condition",
		http.StatusBadRequest,
	)
	ErrAssigneeNotFound = apperror.New(
		apperror.CodeNotFound,
		"personnel not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusForType = apperror.New(
		apperror.CodeInvalidInput,
		"status is not valid for this equipment type",
		http.StatusBadRequest,
	)
	ErrStatusChangeWhileAssigned = apperror.New(
		apperror.CodeInvalidState,
		"equipment is currently assigned; process a return first",
		http.StatusConflict,
	)
	ErrSuperuserOnly = apperror.New(
		apperror.CodeForbidden,
		"only a superuser may permanently delete equipment",
		http.StatusForbidden,
	)
)
