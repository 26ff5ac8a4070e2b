package equipment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	equipmenterrors "tireops/internal/equipment/errors"
	"tireops/internal/events"
	"tireops/internal/history"
	"tireops/internal/messaging/kafka"
	"tireops/internal/personnel"
	"tireops/internal/rbac"
	"tireops/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=equipment_service.go -destination=mock/equipment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor Actor, req CreateEquipmentRequest) (EquipmentResponse, error)
	GetAll(ctx context.Context) ([]EquipmentResponse, error)
	GetByID(ctx context.Context, id string) (EquipmentResponse, error)
	GetHistory(ctx context.Context, id string) ([]HistoryRecordResponse, error)
	GetAgreements(ctx context.Context, id string) ([]AgreementResponse, error)

	AssignWithAgreement(ctx context.Context, actor Actor, id string, req AssignEquipmentRequest) (AgreementResponse, error)
	ReturnWithCheck(ctx context.Context, actor Actor, id string, req ReturnEquipmentRequest) (EquipmentResponse, error)
	Reassign(ctx context.Context, actor Actor, id string, req ReassignEquipmentRequest) (EquipmentResponse, error)
	Retire(ctx context.Context, actor Actor, id string, reason string) (EquipmentResponse, error)
	UpdateStatus(ctx context.Context, actor Actor, id string, req UpdateStatusRequest) (EquipmentResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type service struct {
	db            *sql.DB
	repo          Repository
	historyRepo   history.Repository
	personnelRepo personnel.Repository
	outboxRepo    kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, historyRepo history.Repository, personnelRepo personnel.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("equipment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("equipment.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		historyRepo:   historyRepo,
		personnelRepo: personnelRepo,
		logger:        l,
	}
}

// NewServiceWithOutbox menambahkan penulisan event outbox di transaksi yang
// sama dengan mutasi lifecycle.
func NewServiceWithOutbox(db *sql.DB, repo Repository, historyRepo history.Repository, personnelRepo personnel.Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	s := NewService(db, repo, historyRepo, personnelRepo, logger...).(*service)
	s.outboxRepo = outboxRepo
	return s
}

func (s *service) Create(ctx context.Context, actor Actor, req CreateEquipmentRequest) (EquipmentResponse, error) {
	s.logger.Debug("create equipment requested",
		zap.String("type", req.Type),
		zap.String("number", req.Number),
	)

	if !ValidType(req.Type) {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidEquipmentType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create equipment begin tx failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u := &EquipmentUnit{
		ID:           uuid.New(),
		Type:         req.Type,
		Number:       strings.TrimSpace(req.Number),
		SerialNumber: req.SerialNumber,
		PIN:          req.PIN,
		Status:       idleStatus(req.Type),
		Location:     req.Location,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create equipment persist failed", zap.Error(err))
		return EquipmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create equipment commit failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	s.logger.Info("create equipment success",
		zap.String("equipment_id", u.ID.String()),
		zap.String("number", u.Number),
		zap.String("performed_by", actor.ID),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]EquipmentResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EquipmentResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, mapToResponse(u))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EquipmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidEquipmentID
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EquipmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*u), nil
}

func (s *service) GetHistory(ctx context.Context, id string) ([]HistoryRecordResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, equipmenterrors.ErrInvalidEquipmentID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}
	recs, err := s.historyRepo.FindByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]HistoryRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, mapHistoryToResponse(rec))
	}
	return out, nil
}

func (s *service) GetAgreements(ctx context.Context, id string) ([]AgreementResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, equipmenterrors.ErrInvalidEquipmentID
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, mapRepositoryError(err)
	}
	rows, err := s.repo.FindAgreementsByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]AgreementResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, mapAgreementToResponse(a))
	}
	return out, nil
}

func (s *service) AssignWithAgreement(ctx context.Context, actor Actor, id string, req AssignEquipmentRequest) (AgreementResponse, error) {
	s.logger.Debug("assign equipment requested",
		zap.String("equipment_id", id),
		zap.String("personnel_id", req.PersonnelID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return AgreementResponse{}, equipmenterrors.ErrInvalidEquipmentID
	}
	if strings.TrimSpace(req.SignatureData) == "" {
		return AgreementResponse{}, equipmenterrors.ErrSignatureRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign equipment begin tx failed", zap.Error(err))
		return AgreementResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qtxHistory := s.historyRepo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return AgreementResponse{}, mapRepositoryError(err)
	}
	if u.Status == StatusRetired {
		return AgreementResponse{}, equipmenterrors.ErrAlreadyRetired
	}
	if u.Status != idleStatus(u.Type) {
		return AgreementResponse{}, equipmenterrors.ErrNotAvailable
	}

	person, err := s.personnelRepo.WithTx(tx).FindByID(ctx, req.PersonnelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AgreementResponse{}, equipmenterrors.ErrAssigneeNotFound
		}
		return AgreementResponse{}, err
	}

	agreement := &AssignmentAgreement{
		ID:             uuid.New(),
		EquipmentID:    u.ID,
		PersonnelID:    person.ID,
		PersonnelName:  person.FullName,
		EquipmentValue: EquipmentValue,
		SignatureData:  req.SignatureData,
		AgreementText:  BuildAgreementText(u.Type, u.Number, u.SerialNumber, person.FullName, EquipmentValue),
		IssuedByID:     actorUUID(actor),
		IssuedByName:   actor.Name,
	}
	if err := qtx.CreateAgreement(ctx, agreement); err != nil {
		s.logger.Error("assign equipment persist agreement failed", zap.Error(err))
		return AgreementResponse{}, err
	}

	prevStatus := u.Status
	u.Status = StatusAssigned
	u.AssignedToID = &person.ID
	u.AssignedToName = &person.FullName

	ok, err := qtx.UpdateGuarded(ctx, u, prevStatus)
	if err != nil {
		s.logger.Error("assign equipment update failed", zap.Error(err))
		return AgreementResponse{}, err
	}
	if !ok {
		return AgreementResponse{}, equipmenterrors.ErrConcurrentStatusChange
	}

	if err := qtxHistory.Append(ctx, &history.EquipmentHistoryRecord{
		ID:              uuid.New(),
		EquipmentID:     u.ID,
		Action:          history.ActionAssigned,
		NewAssigneeName: &person.FullName,
		PreviousStatus:  &prevStatus,
		NewStatus:       &u.Status,
		PerformedByID:   actorUUID(actor),
		PerformedByName: actor.Name,
	}); err != nil {
		s.logger.Error("assign equipment append history failed", zap.Error(err))
		return AgreementResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EquipmentAssigned, u, person.ID.String()); err != nil {
		s.logger.Error("assign equipment enqueue event failed", zap.Error(err))
		return AgreementResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign equipment commit failed", zap.Error(err))
		return AgreementResponse{}, err
	}

	s.logger.Info("assign equipment success",
		zap.String("equipment_id", u.ID.String()),
		zap.String("personnel_id", person.ID.String()),
		zap.String("performed_by", actor.ID),
	)

	return mapAgreementToResponse(*agreement), nil
}

func (s *service) ReturnWithCheck(ctx context.Context, actor Actor, id string, req ReturnEquipmentRequest) (EquipmentResponse, error) {
	s.logger.Debug("return equipment requested", zap.String("equipment_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidEquipmentID
	}
	if !validOverallCondition(req.OverallCondition) {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidOverallCondition
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("return equipment begin tx failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qtxHistory := s.historyRepo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EquipmentResponse{}, mapRepositoryError(err)
	}
	if u.Status == StatusRetired {
		return EquipmentResponse{}, equipmenterrors.ErrAlreadyRetired
	}
	if u.Status != StatusAssigned {
		return EquipmentResponse{}, equipmenterrors.ErrNotAssigned
	}

	// Repair required memaksa unit keluar dari rotasi, apa pun kata flag
	// ready_for_reassignment dari client.
	readyForReassignment := req.ReadyForReassignment
	if req.RepairRequired {
		readyForReassignment = false
	}

	var deduction float64
	if req.DeductionRequired && req.DeductionAmount != nil {
		deduction = ClampDeduction(*req.DeductionAmount)
	}

	check := &ConditionCheck{
		ID:                uuid.New(),
		EquipmentID:       u.ID,
		Checklist:         req.Checklist,
		DamageNotes:       req.DamageNotes,
		OverallCondition:  req.OverallCondition,
		RepairRequired:    req.RepairRequired,
		DeductionRequired: req.DeductionRequired,
		DeductionAmount:   deduction,
		CheckedByID:       actorUUID(actor),
		CheckedByName:     actor.Name,
	}
	if err := qtx.CreateConditionCheck(ctx, check); err != nil {
		s.logger.Error("return equipment persist check failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	prevStatus := u.Status
	prevAssigneeName := u.AssignedToName
	prevAssigneeID := assigneeIDString(u)

	newStatus := idleStatus(u.Type)
	if req.RepairRequired || !readyForReassignment {
		newStatus = repairStatus(u.Type)
	}

	u.Status = newStatus
	u.AssignedToID = nil
	u.AssignedToName = nil
	u.ConditionNotes = conditionSummary(req.OverallCondition, req.RepairRequired, req.DeductionRequired, deduction, req.DamageNotes)

	ok, err := qtx.UpdateGuarded(ctx, u, prevStatus)
	if err != nil {
		s.logger.Error("return equipment update failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	if !ok {
		return EquipmentResponse{}, equipmenterrors.ErrConcurrentStatusChange
	}

	if err := qtxHistory.Append(ctx, &history.EquipmentHistoryRecord{
		ID:                   uuid.New(),
		EquipmentID:          u.ID,
		Action:               history.ActionUnassigned,
		PreviousAssigneeName: prevAssigneeName,
		PreviousStatus:       &prevStatus,
		NewStatus:            &u.Status,
		Notes:                u.ConditionNotes,
		PerformedByID:        actorUUID(actor),
		PerformedByName:      actor.Name,
	}); err != nil {
		s.logger.Error("return equipment append history failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EquipmentReturned, u, prevAssigneeID); err != nil {
		s.logger.Error("return equipment enqueue event failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("return equipment commit failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	s.logger.Info("return equipment success",
		zap.String("equipment_id", u.ID.String()),
		zap.String("new_status", u.Status),
		zap.String("performed_by", actor.ID),
	)

	return mapToResponse(*u), nil
}

func (s *service) Reassign(ctx context.Context, actor Actor, id string, req ReassignEquipmentRequest) (EquipmentResponse, error) {
	s.logger.Debug("reassign equipment requested",
		zap.String("equipment_id", id),
		zap.String("new_personnel_id", req.NewPersonnelID),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidEquipmentID
	}
	if !validOverallCondition(req.OverallCondition) {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidOverallCondition
	}
	if strings.TrimSpace(req.SignOffSignature) == "" || strings.TrimSpace(req.NewPersonnelSignature) == "" {
		return EquipmentResponse{}, equipmenterrors.ErrSignatureRequired
	}
	// Unit yang butuh perbaikan tidak boleh dioper langsung; harus lewat
	// flow return dulu supaya masuk status repair.
	if req.RepairRequired {
		return EquipmentResponse{}, equipmenterrors.ErrRepairBlocksReassignment
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reassign equipment begin tx failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qtxHistory := s.historyRepo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EquipmentResponse{}, mapRepositoryError(err)
	}
	if u.Status == StatusRetired {
		return EquipmentResponse{}, equipmenterrors.ErrAlreadyRetired
	}
	if u.Status != StatusAssigned {
		return EquipmentResponse{}, equipmenterrors.ErrNotAssigned
	}

	newPerson, err := s.personnelRepo.WithTx(tx).FindByID(ctx, req.NewPersonnelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EquipmentResponse{}, equipmenterrors.ErrAssigneeNotFound
		}
		return EquipmentResponse{}, err
	}

	var deduction float64
	if req.DeductionRequired && req.DeductionAmount != nil {
		deduction = ClampDeduction(*req.DeductionAmount)
	}

	// Fase 1: condition check atas nama assignee lama, sign-off manager.
	check := &ConditionCheck{
		ID:                uuid.New(),
		EquipmentID:       u.ID,
		Checklist:         req.Checklist,
		DamageNotes:       req.DamageNotes,
		OverallCondition:  req.OverallCondition,
		RepairRequired:    false,
		DeductionRequired: req.DeductionRequired,
		DeductionAmount:   deduction,
		SignOffSignature:  &req.SignOffSignature,
		CheckedByID:       actorUUID(actor),
		CheckedByName:     actor.Name,
	}
	if err := qtx.CreateConditionCheck(ctx, check); err != nil {
		s.logger.Error("reassign equipment persist check failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	// Fase 2: agreement baru untuk assignee baru. Unit tidak pernah lewat
	// status idle; tetap assigned sepanjang operasi.
	agreement := &AssignmentAgreement{
		ID:             uuid.New(),
		EquipmentID:    u.ID,
		PersonnelID:    newPerson.ID,
		PersonnelName:  newPerson.FullName,
		EquipmentValue: EquipmentValue,
		SignatureData:  req.NewPersonnelSignature,
		AgreementText:  BuildAgreementText(u.Type, u.Number, u.SerialNumber, newPerson.FullName, EquipmentValue),
		IssuedByID:     actorUUID(actor),
		IssuedByName:   actor.Name,
	}
	if err := qtx.CreateAgreement(ctx, agreement); err != nil {
		s.logger.Error("reassign equipment persist agreement failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	prevAssigneeName := u.AssignedToName

	u.AssignedToID = &newPerson.ID
	u.AssignedToName = &newPerson.FullName
	u.ConditionNotes = conditionSummary(req.OverallCondition, false, req.DeductionRequired, deduction, req.DamageNotes)

	ok, err := qtx.UpdateGuarded(ctx, u, StatusAssigned)
	if err != nil {
		s.logger.Error("reassign equipment update failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	if !ok {
		return EquipmentResponse{}, equipmenterrors.ErrConcurrentStatusChange
	}

	assignedStatus := StatusAssigned
	if err := qtxHistory.Append(ctx, &history.EquipmentHistoryRecord{
		ID:                   uuid.New(),
		EquipmentID:          u.ID,
		Action:               history.ActionUnassigned,
		PreviousAssigneeName: prevAssigneeName,
		PreviousStatus:       &assignedStatus,
		NewStatus:            &assignedStatus,
		Notes:                "reassignment hand-off",
		PerformedByID:        actorUUID(actor),
		PerformedByName:      actor.Name,
	}); err != nil {
		s.logger.Error("reassign equipment append history failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	if err := qtxHistory.Append(ctx, &history.EquipmentHistoryRecord{
		ID:              uuid.New(),
		EquipmentID:     u.ID,
		Action:          history.ActionAssigned,
		NewAssigneeName: &newPerson.FullName,
		PreviousStatus:  &assignedStatus,
		NewStatus:       &assignedStatus,
		Notes:           "reassignment hand-off",
		PerformedByID:   actorUUID(actor),
		PerformedByName: actor.Name,
	}); err != nil {
		s.logger.Error("reassign equipment append history failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EquipmentAssigned, u, newPerson.ID.String()); err != nil {
		s.logger.Error("reassign equipment enqueue event failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reassign equipment commit failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	s.logger.Info("reassign equipment success",
		zap.String("equipment_id", u.ID.String()),
		zap.String("new_personnel_id", newPerson.ID.String()),
		zap.String("performed_by", actor.ID),
	)

	return mapToResponse(*u), nil
}

func (s *service) Retire(ctx context.Context, actor Actor, id string, reason string) (EquipmentResponse, error) {
	s.logger.Debug("retire equipment requested", zap.String("equipment_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidEquipmentID
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return EquipmentResponse{}, equipmenterrors.ErrRetireReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("retire equipment begin tx failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qtxHistory := s.historyRepo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EquipmentResponse{}, mapRepositoryError(err)
	}
	if u.Status == StatusRetired {
		return EquipmentResponse{}, equipmenterrors.ErrAlreadyRetired
	}

	prevStatus := u.Status
	prevAssigneeName := u.AssignedToName
	prevAssigneeID := assigneeIDString(u)

	u.Status = StatusRetired
	u.AssignedToID = nil
	u.AssignedToName = nil
	u.RetirementReason = &reason

	ok, err := qtx.UpdateGuarded(ctx, u, prevStatus)
	if err != nil {
		s.logger.Error("retire equipment update failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	if !ok {
		return EquipmentResponse{}, equipmenterrors.ErrConcurrentStatusChange
	}

	if err := qtxHistory.Append(ctx, &history.EquipmentHistoryRecord{
		ID:                   uuid.New(),
		EquipmentID:          u.ID,
		Action:               history.ActionStatusChange,
		PreviousAssigneeName: prevAssigneeName,
		PreviousStatus:       &prevStatus,
		NewStatus:            &u.Status,
		Notes:                "retired: " + reason,
		PerformedByID:        actorUUID(actor),
		PerformedByName:      actor.Name,
	}); err != nil {
		s.logger.Error("retire equipment append history failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	if err := s.enqueueLifecycleEvent(ctx, tx, events.EquipmentRetired, u, prevAssigneeID); err != nil {
		s.logger.Error("retire equipment enqueue event failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("retire equipment commit failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	s.logger.Info("retire equipment success",
		zap.String("equipment_id", u.ID.String()),
		zap.String("reason", reason),
		zap.String("performed_by", actor.ID),
	)

	return mapToResponse(*u), nil
}

// UpdateStatus menandai unit lost/out_of_service/maintenance secara manual.
// Assigned dan retired punya alur sendiri (assign, return, retire).
func (s *service) UpdateStatus(ctx context.Context, actor Actor, id string, req UpdateStatusRequest) (EquipmentResponse, error) {
	s.logger.Debug("update equipment status requested",
		zap.String("equipment_id", id),
		zap.String("status", req.Status),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidEquipmentID
	}
	if req.Status == StatusAssigned || req.Status == StatusRetired {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidStatusForType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update equipment status begin tx failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qtxHistory := s.historyRepo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EquipmentResponse{}, mapRepositoryError(err)
	}
	if u.Status == StatusRetired {
		return EquipmentResponse{}, equipmenterrors.ErrAlreadyRetired
	}
	if u.Status == StatusAssigned {
		return EquipmentResponse{}, equipmenterrors.ErrStatusChangeWhileAssigned
	}
	if !validStatusForType(u.Type, req.Status) {
		return EquipmentResponse{}, equipmenterrors.ErrInvalidStatusForType
	}

	prevStatus := u.Status
	u.Status = req.Status

	ok, err := qtx.UpdateGuarded(ctx, u, prevStatus)
	if err != nil {
		s.logger.Error("update equipment status failed", zap.Error(err))
		return EquipmentResponse{}, err
	}
	if !ok {
		return EquipmentResponse{}, equipmenterrors.ErrConcurrentStatusChange
	}

	if err := qtxHistory.Append(ctx, &history.EquipmentHistoryRecord{
		ID:              uuid.New(),
		EquipmentID:     u.ID,
		Action:          history.ActionStatusChange,
		PreviousStatus:  &prevStatus,
		NewStatus:       &u.Status,
		Notes:           strings.TrimSpace(req.Notes),
		PerformedByID:   actorUUID(actor),
		PerformedByName: actor.Name,
	}); err != nil {
		s.logger.Error("update equipment status append history failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update equipment status commit failed", zap.Error(err))
		return EquipmentResponse{}, err
	}

	s.logger.Info("update equipment status success",
		zap.String("equipment_id", u.ID.String()),
		zap.String("previous_status", prevStatus),
		zap.String("new_status", u.Status),
		zap.String("performed_by", actor.ID),
	)

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, actor Actor, id string) error {
	s.logger.Debug("delete equipment requested", zap.String("equipment_id", id))

	// Route sudah menjaga lewat RBAC; cek ulang di sini supaya service
	// tetap aman dipanggil dari jalur lain.
	if actor.Role != rbac.RoleSuperuser {
		return equipmenterrors.ErrSuperuserOnly
	}
	if _, err := uuid.Parse(id); err != nil {
		return equipmenterrors.ErrInvalidEquipmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete equipment begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	qtxHistory := s.historyRepo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	// Cascade manual: agreement, condition check, dan history ikut hilang.
	// Ini satu-satunya operasi yang menghapus audit trail.
	if err := qtx.DeleteAgreementsByEquipment(ctx, id); err != nil {
		s.logger.Error("delete equipment agreements failed", zap.Error(err))
		return err
	}
	if err := qtx.DeleteConditionChecksByEquipment(ctx, id); err != nil {
		s.logger.Error("delete equipment condition checks failed", zap.Error(err))
		return err
	}
	if err := qtxHistory.DeleteByEquipment(ctx, id); err != nil {
		s.logger.Error("delete equipment history failed", zap.Error(err))
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete equipment failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete equipment commit failed", zap.Error(err))
		return err
	}

	s.logger.Warn("delete equipment success",
		zap.String("equipment_id", u.ID.String()),
		zap.String("number", u.Number),
		zap.String("performed_by", actor.ID),
	)

	return nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *sql.Tx, eventType string, u *EquipmentUnit, personnelID string) error {
	if s.outboxRepo == nil {
		return nil
	}

	payload, err := json.Marshal(events.EquipmentLifecycleEvent{
		EventType:     eventType,
		EquipmentID:   u.ID.String(),
		EquipmentType: u.Type,
		PersonnelID:   personnelID,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "equipment",
		AggregateID:   u.ID.String(),
		EventType:     eventType,
		Topic:         events.EquipmentLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func actorUUID(actor Actor) uuid.UUID {
	parsed, err := uuid.Parse(actor.ID)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

func assigneeIDString(u *EquipmentUnit) string {
	if u.AssignedToID == nil {
		return ""
	}
	return u.AssignedToID.String()
}

func conditionSummary(overall string, repairRequired, deductionRequired bool, deduction float64, damageNotes *string) string {
	parts := []string{"condition: " + overall}
	if repairRequired {
		parts = append(parts, "repair required")
	}
	if deductionRequired {
		parts = append(parts, fmt.Sprintf("deduction: $%.2f", deduction))
	}
	if damageNotes != nil && strings.TrimSpace(*damageNotes) != "" {
		parts = append(parts, "damage: "+strings.TrimSpace(*damageNotes))
	}
	return strings.Join(parts, "; ")
}

func mapToResponse(u EquipmentUnit) EquipmentResponse {
	resp := EquipmentResponse{
		ID:               u.ID.String(),
		Type:             u.Type,
		TypeLabel:        TypeLabel(u.Type),
		Number:           u.Number,
		SerialNumber:     u.SerialNumber,
		Status:           u.Status,
		Location:         u.Location,
		AssignedToName:   u.AssignedToName,
		ConditionNotes:   u.ConditionNotes,
		RetirementReason: u.RetirementReason,
	}
	if u.AssignedToID != nil {
		idStr := u.AssignedToID.String()
		resp.AssignedToID = &idStr
	}
	return resp
}

func mapAgreementToResponse(a AssignmentAgreement) AgreementResponse {
	return AgreementResponse{
		ID:             a.ID.String(),
		EquipmentID:    a.EquipmentID.String(),
		PersonnelID:    a.PersonnelID.String(),
		PersonnelName:  a.PersonnelName,
		EquipmentValue: a.EquipmentValue,
		AgreementText:  a.AgreementText,
		IssuedByName:   a.IssuedByName,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
	}
}

func mapHistoryToResponse(rec history.EquipmentHistoryRecord) HistoryRecordResponse {
	return HistoryRecordResponse{
		ID:                   rec.ID.String(),
		Action:               rec.Action,
		PreviousAssigneeName: rec.PreviousAssigneeName,
		NewAssigneeName:      rec.NewAssigneeName,
		PreviousStatus:       rec.PreviousStatus,
		NewStatus:            rec.NewStatus,
		Notes:                rec.Notes,
		PerformedByName:      rec.PerformedByName,
		CreatedAt:            rec.CreatedAt.Format(time.RFC3339),
	}
}
