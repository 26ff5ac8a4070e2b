package timeclock

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"tireops/internal/personnel"
	"tireops/internal/shared/apperror"
	timeclockerrors "tireops/internal/timeclock/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ActiveClocksCacheKey = "timeclock:active"

// TTL pendek: daftar "siapa sedang kerja" boleh basi beberapa detik,
// tapi tidak boleh meledakkan DB saat dashboard auto-refresh.
const activeClocksCacheTTL = 30 * time.Second

//go:generate mockgen -source=timeclock_service.go -destination=mock/timeclock_service_mock.go -package=mock
type Service interface {
	Punch(ctx context.Context, actor Actor, entryType string) (TimeEntryResponse, error)
	GetDailySummary(ctx context.Context, date string) ([]DailySummaryResponse, error)
	GetActiveClocks(ctx context.Context) ([]ActiveClockResponse, error)

	AddMissedEntry(ctx context.Context, actor Actor, req AddEntryRequest) (TimeEntryResponse, error)
	EditEntry(ctx context.Context, actor Actor, id string, req EditEntryRequest) (TimeEntryResponse, error)
	DeleteEntry(ctx context.Context, actor Actor, id string) error
	ForceClockOut(ctx context.Context, actor Actor, req ForceClockOutRequest) (TimeEntryResponse, error)

	SubmitCorrection(ctx context.Context, actor Actor, req SubmitCorrectionRequest) (CorrectionResponse, error)
	GetPendingCorrections(ctx context.Context) ([]CorrectionResponse, error)
	ReviewCorrection(ctx context.Context, actor Actor, id string, req ReviewCorrectionRequest) (CorrectionResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	personnelRepo personnel.Repository
	rdb           *redis.Client
	sf            *singleflight.Group
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, personnelRepo personnel.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeclock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeclock.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		personnelRepo: personnelRepo,
		rdb:           rdb,
		sf:            &singleflight.Group{},
		logger:        l,
	}
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.Add(24 * time.Hour)
}

func (s *service) Punch(ctx context.Context, actor Actor, entryType string) (TimeEntryResponse, error) {
	s.logger.Debug("punch requested",
		zap.String("personnel_id", actor.PersonnelID),
		zap.String("type", entryType),
	)

	personnelID, err := uuid.Parse(actor.PersonnelID)
	if err != nil {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidPersonnelID
	}
	if !validEntryType(entryType) {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidEntryType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("punch begin tx failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := time.Now().UTC()
	from, to := dayBounds(now)
	entries, err := qtx.FindEntriesByPersonnelAndRange(ctx, actor.PersonnelID, from, to)
	if err != nil {
		s.logger.Error("punch load entries failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	if err := guardPunch(entries, entryType); err != nil {
		return TimeEntryResponse{}, err
	}

	e := &TimeEntry{
		ID:            uuid.New(),
		PersonnelID:   personnelID,
		PersonnelName: actor.Name,
		Timestamp:     now,
		Type:          entryType,
	}
	if err := qtx.CreateEntry(ctx, e); err != nil {
		s.logger.Error("punch persist failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("punch commit failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateActiveClocksCache(ctx)
	s.logger.Info("punch success",
		zap.String("personnel_id", actor.PersonnelID),
		zap.String("type", entryType),
	)

	return mapEntryToResponse(*e), nil
}

// guardPunch menegakkan urutan punch yang sah terhadap keadaan hari ini.
func guardPunch(entries []TimeEntry, entryType string) error {
	clockedIn, onBreak := punchState(entries)

	switch entryType {
	case EntryClockIn:
		if clockedIn {
			return timeclockerrors.ErrAlreadyClockedIn
		}
	case EntryClockOut:
		if !clockedIn {
			return timeclockerrors.ErrNotClockedIn
		}
		if onBreak {
			return timeclockerrors.ErrBreakOpen
		}
	case EntryBreakStart:
		if !clockedIn {
			return timeclockerrors.ErrNotClockedIn
		}
		if onBreak {
			return timeclockerrors.ErrAlreadyOnBreak
		}
	case EntryBreakEnd:
		if !onBreak {
			return timeclockerrors.ErrNotOnBreak
		}
	default:
		return timeclockerrors.ErrInvalidEntryType
	}
	return nil
}

func (s *service) GetDailySummary(ctx context.Context, date string) ([]DailySummaryResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return nil, timeclockerrors.ErrInvalidDate
	}
	from, to := dayBounds(day)

	entries, err := s.repo.FindEntriesByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	// Entries sudah terurut per personnel lalu timestamp.
	var out []DailySummaryResponse
	var current []TimeEntry
	flush := func() {
		if len(current) == 0 {
			return
		}
		clockedIn, onBreak := punchState(current)
		summary := DailySummaryResponse{
			PersonnelID:   current[0].PersonnelID.String(),
			PersonnelName: current[0].PersonnelName,
			WorkedMinutes: workedMinutes(current),
			ClockedIn:     clockedIn,
			OnBreak:       onBreak,
			Incomplete:    clockedIn,
			Entries:       make([]TimeEntryResponse, 0, len(current)),
		}
		for _, e := range current {
			summary.Entries = append(summary.Entries, mapEntryToResponse(e))
		}
		out = append(out, summary)
		current = current[:0:0]
	}

	for _, e := range entries {
		if len(current) > 0 && current[0].PersonnelID != e.PersonnelID {
			flush()
		}
		current = append(current, e)
	}
	flush()

	return out, nil
}

func (s *service) GetActiveClocks(ctx context.Context) ([]ActiveClockResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, ActiveClocksCacheKey).Result()
		if err == nil {
			var out []ActiveClockResponse
			if jsonErr := json.Unmarshal([]byte(cached), &out); jsonErr == nil {
				return out, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("active clocks cache read failed", zap.Error(err))
		}
	}

	result, err, _ := s.sf.Do(ActiveClocksCacheKey, func() (interface{}, error) {
		out, err := s.loadActiveClocks(ctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if payload, jsonErr := json.Marshal(out); jsonErr == nil {
				if setErr := s.rdb.Set(ctx, ActiveClocksCacheKey, payload, activeClocksCacheTTL).Err(); setErr != nil {
					s.logger.Warn("active clocks cache write failed", zap.Error(setErr))
				}
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]ActiveClockResponse), nil
}

func (s *service) loadActiveClocks(ctx context.Context) ([]ActiveClockResponse, error) {
	from, to := dayBounds(time.Now())
	entries, err := s.repo.FindEntriesByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]ActiveClockResponse, 0)
	var current []TimeEntry
	flush := func() {
		if len(current) == 0 {
			return
		}
		clockedIn, onBreak := punchState(current)
		if clockedIn {
			var clockedInAt time.Time
			for _, e := range current {
				if e.Type == EntryClockIn {
					clockedInAt = e.Timestamp
				}
			}
			out = append(out, ActiveClockResponse{
				PersonnelID:   current[0].PersonnelID.String(),
				PersonnelName: current[0].PersonnelName,
				ClockedInAt:   clockedInAt.Format(time.RFC3339),
				OnBreak:       onBreak,
			})
		}
		current = current[:0:0]
	}

	for _, e := range entries {
		if len(current) > 0 && current[0].PersonnelID != e.PersonnelID {
			flush()
		}
		current = append(current, e)
	}
	flush()

	return out, nil
}

func (s *service) invalidateActiveClocksCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, ActiveClocksCacheKey).Err(); err != nil {
		s.logger.Warn("active clocks cache invalidation failed", zap.Error(err))
	}
}

func (s *service) AddMissedEntry(ctx context.Context, actor Actor, req AddEntryRequest) (TimeEntryResponse, error) {
	s.logger.Debug("add missed entry requested",
		zap.String("personnel_id", req.PersonnelID),
		zap.String("type", req.Type),
	)

	if strings.TrimSpace(req.Reason) == "" {
		return TimeEntryResponse{}, timeclockerrors.ErrEditReasonRequired
	}
	if !validEntryType(req.Type) {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidEntryType
	}
	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidTimestamp
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add missed entry begin tx failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	person, err := s.personnelRepo.WithTx(tx).FindByID(ctx, req.PersonnelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeEntryResponse{}, timeclockerrors.ErrPersonnelNotFound
		}
		return TimeEntryResponse{}, err
	}

	reason := strings.TrimSpace(req.Reason)
	e := &TimeEntry{
		ID:            uuid.New(),
		PersonnelID:   person.ID,
		PersonnelName: person.FullName,
		Timestamp:     ts.UTC(),
		Type:          req.Type,
		EditedByID:    actorUUIDPtr(actor),
		EditedByName:  &actor.Name,
		EditReason:    &reason,
	}
	if err := qtx.CreateEntry(ctx, e); err != nil {
		s.logger.Error("add missed entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add missed entry commit failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateActiveClocksCache(ctx)
	s.logger.Info("add missed entry success",
		zap.String("entry_id", e.ID.String()),
		zap.String("performed_by", actor.UserID),
	)

	return mapEntryToResponse(*e), nil
}

func (s *service) EditEntry(ctx context.Context, actor Actor, id string, req EditEntryRequest) (TimeEntryResponse, error) {
	s.logger.Debug("edit entry requested", zap.String("entry_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidTimeEntryID
	}
	if strings.TrimSpace(req.Reason) == "" {
		return TimeEntryResponse{}, timeclockerrors.ErrEditReasonRequired
	}
	if !validEntryType(req.Type) {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidEntryType
	}
	ts, err := time.Parse(time.RFC3339, req.Timestamp)
	if err != nil {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidTimestamp
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("edit entry begin tx failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindEntryByID(ctx, id)
	if err != nil {
		return TimeEntryResponse{}, mapEntryError(err)
	}

	// Identitas entry dipertahankan; hanya waktu/tipe yang berubah,
	// dengan jejak siapa dan kenapa.
	reason := strings.TrimSpace(req.Reason)
	e.Timestamp = ts.UTC()
	e.Type = req.Type
	e.EditedByID = actorUUIDPtr(actor)
	e.EditedByName = &actor.Name
	e.EditReason = &reason

	if err := qtx.UpdateEntry(ctx, e); err != nil {
		s.logger.Error("edit entry persist failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("edit entry commit failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateActiveClocksCache(ctx)
	s.logger.Info("edit entry success",
		zap.String("entry_id", e.ID.String()),
		zap.String("performed_by", actor.UserID),
	)

	return mapEntryToResponse(*e), nil
}

func (s *service) DeleteEntry(ctx context.Context, actor Actor, id string) error {
	s.logger.Debug("delete entry requested", zap.String("entry_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return timeclockerrors.ErrInvalidTimeEntryID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete entry begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindEntryByID(ctx, id); err != nil {
		return mapEntryError(err)
	}
	if err := qtx.DeleteEntry(ctx, id); err != nil {
		s.logger.Error("delete entry failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete entry commit failed", zap.Error(err))
		return err
	}

	s.invalidateActiveClocksCache(ctx)
	s.logger.Info("delete entry success",
		zap.String("entry_id", id),
		zap.String("performed_by", actor.UserID),
	)

	return nil
}

func (s *service) ForceClockOut(ctx context.Context, actor Actor, req ForceClockOutRequest) (TimeEntryResponse, error) {
	s.logger.Debug("force clock out requested", zap.String("personnel_id", req.PersonnelID))

	personnelID, err := uuid.Parse(req.PersonnelID)
	if err != nil {
		return TimeEntryResponse{}, timeclockerrors.ErrInvalidPersonnelID
	}
	if strings.TrimSpace(req.Reason) == "" {
		return TimeEntryResponse{}, timeclockerrors.ErrEditReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("force clock out begin tx failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	now := time.Now().UTC()
	from, to := dayBounds(now)
	entries, err := qtx.FindEntriesByPersonnelAndRange(ctx, req.PersonnelID, from, to)
	if err != nil {
		s.logger.Error("force clock out load entries failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	clockedIn, onBreak := punchState(entries)
	if !clockedIn {
		return TimeEntryResponse{}, timeclockerrors.ErrNotClockedIn
	}

	personnelName := ""
	if len(entries) > 0 {
		personnelName = entries[0].PersonnelName
	}

	reason := strings.TrimSpace(req.Reason)

	// Break yang masih menggantung ditutup dulu supaya urutan event tetap sah.
	if onBreak {
		breakEnd := &TimeEntry{
			ID:            uuid.New(),
			PersonnelID:   personnelID,
			PersonnelName: personnelName,
			Timestamp:     now,
			Type:          EntryBreakEnd,
			EditedByID:    actorUUIDPtr(actor),
			EditedByName:  &actor.Name,
			EditReason:    &reason,
		}
		if err := qtx.CreateEntry(ctx, breakEnd); err != nil {
			s.logger.Error("force clock out close break failed", zap.Error(err))
			return TimeEntryResponse{}, err
		}
	}

	e := &TimeEntry{
		ID:            uuid.New(),
		PersonnelID:   personnelID,
		PersonnelName: personnelName,
		Timestamp:     now,
		Type:          EntryClockOut,
		EditedByID:    actorUUIDPtr(actor),
		EditedByName:  &actor.Name,
		EditReason:    &reason,
	}
	if err := qtx.CreateEntry(ctx, e); err != nil {
		s.logger.Error("force clock out persist failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("force clock out commit failed", zap.Error(err))
		return TimeEntryResponse{}, err
	}

	s.invalidateActiveClocksCache(ctx)
	s.logger.Info("force clock out success",
		zap.String("personnel_id", req.PersonnelID),
		zap.String("performed_by", actor.UserID),
	)

	return mapEntryToResponse(*e), nil
}

func (s *service) SubmitCorrection(ctx context.Context, actor Actor, req SubmitCorrectionRequest) (CorrectionResponse, error) {
	s.logger.Debug("submit correction requested",
		zap.String("personnel_id", actor.PersonnelID),
		zap.String("request_type", req.RequestType),
	)

	personnelID, err := uuid.Parse(actor.PersonnelID)
	if err != nil {
		return CorrectionResponse{}, timeclockerrors.ErrInvalidPersonnelID
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return CorrectionResponse{}, timeclockerrors.ErrInvalidDate
	}
	if strings.TrimSpace(req.Reason) == "" {
		return CorrectionResponse{}, timeclockerrors.ErrEditReasonRequired
	}

	cr := &CorrectionRequest{
		ID:            uuid.New(),
		PersonnelID:   personnelID,
		PersonnelName: actor.Name,
		Date:          date,
		RequestType:   req.RequestType,
		Reason:        strings.TrimSpace(req.Reason),
		RequestedType: req.RequestedType,
		Status:        CorrectionPending,
	}

	switch req.RequestType {
	case CorrectionAddEntry:
		if req.RequestedTimestamp == nil {
			return CorrectionResponse{}, apperror.RequiredField("requested_timestamp")
		}
		if req.RequestedType == nil {
			return CorrectionResponse{}, apperror.RequiredField("requested_type")
		}
	case CorrectionAmendEntry:
		if req.OriginalTimestamp == nil {
			return CorrectionResponse{}, apperror.RequiredField("original_timestamp")
		}
		if req.RequestedTimestamp == nil {
			return CorrectionResponse{}, apperror.RequiredField("requested_timestamp")
		}
	default:
		return CorrectionResponse{}, apperror.InvalidField("request_type")
	}

	if req.RequestedTimestamp != nil {
		ts, err := time.Parse(time.RFC3339, *req.RequestedTimestamp)
		if err != nil {
			return CorrectionResponse{}, timeclockerrors.ErrInvalidTimestamp
		}
		utc := ts.UTC()
		cr.RequestedTimestamp = &utc
	}
	if req.OriginalTimestamp != nil {
		ts, err := time.Parse(time.RFC3339, *req.OriginalTimestamp)
		if err != nil {
			return CorrectionResponse{}, timeclockerrors.ErrInvalidTimestamp
		}
		utc := ts.UTC()
		cr.OriginalTimestamp = &utc
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit correction begin tx failed", zap.Error(err))
		return CorrectionResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).CreateCorrection(ctx, cr); err != nil {
		s.logger.Error("submit correction persist failed", zap.Error(err))
		return CorrectionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit correction commit failed", zap.Error(err))
		return CorrectionResponse{}, err
	}

	s.logger.Info("submit correction success",
		zap.String("correction_id", cr.ID.String()),
		zap.String("personnel_id", actor.PersonnelID),
	)

	return mapCorrectionToResponse(*cr), nil
}

func (s *service) GetPendingCorrections(ctx context.Context) ([]CorrectionResponse, error) {
	rows, err := s.repo.FindPendingCorrections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CorrectionResponse, 0, len(rows))
	for _, cr := range rows {
		out = append(out, mapCorrectionToResponse(cr))
	}
	return out, nil
}

func (s *service) ReviewCorrection(ctx context.Context, actor Actor, id string, req ReviewCorrectionRequest) (CorrectionResponse, error) {
	s.logger.Debug("review correction requested",
		zap.String("correction_id", id),
		zap.Bool("approve", req.Approve),
	)

	if _, err := uuid.Parse(id); err != nil {
		return CorrectionResponse{}, timeclockerrors.ErrInvalidCorrectionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review correction begin tx failed", zap.Error(err))
		return CorrectionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	cr, err := qtx.FindCorrectionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CorrectionResponse{}, timeclockerrors.ErrCorrectionNotFound
		}
		return CorrectionResponse{}, err
	}

	// Review one-shot: percobaan kedua gagal tanpa mengubah apa pun.
	if cr.Status != CorrectionPending {
		return CorrectionResponse{}, timeclockerrors.ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	cr.Status = CorrectionDenied
	if req.Approve {
		cr.Status = CorrectionApproved
	}
	cr.ReviewedByID = actorUUIDPtr(actor)
	cr.ReviewedByName = &actor.Name
	cr.ReviewNotes = req.Notes
	cr.ReviewedAt = &now

	if req.Approve {
		if err := s.applyCorrection(ctx, qtx, actor, cr); err != nil {
			return CorrectionResponse{}, err
		}
	}

	if err := qtx.UpdateCorrection(ctx, cr); err != nil {
		s.logger.Error("review correction persist failed", zap.Error(err))
		return CorrectionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("review correction commit failed", zap.Error(err))
		return CorrectionResponse{}, err
	}

	s.invalidateActiveClocksCache(ctx)
	s.logger.Info("review correction success",
		zap.String("correction_id", cr.ID.String()),
		zap.String("status", cr.Status),
		zap.String("performed_by", actor.UserID),
	)

	return mapCorrectionToResponse(*cr), nil
}

// applyCorrection mengeksekusi perbaikan yang diminta di transaksi yang sama
// dengan perubahan status review. Alasan koreksi ikut jadi edit reason.
func (s *service) applyCorrection(ctx context.Context, qtx Repository, actor Actor, cr *CorrectionRequest) error {
	switch cr.RequestType {
	case CorrectionAddEntry:
		e := &TimeEntry{
			ID:            uuid.New(),
			PersonnelID:   cr.PersonnelID,
			PersonnelName: cr.PersonnelName,
			Timestamp:     *cr.RequestedTimestamp,
			Type:          *cr.RequestedType,
			EditedByID:    actorUUIDPtr(actor),
			EditedByName:  &actor.Name,
			EditReason:    &cr.Reason,
		}
		if err := qtx.CreateEntry(ctx, e); err != nil {
			s.logger.Error("apply correction create entry failed", zap.Error(err))
			return err
		}
	case CorrectionAmendEntry:
		e, err := qtx.FindEntryByPersonnelAndTimestamp(ctx, cr.PersonnelID.String(), *cr.OriginalTimestamp)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return timeclockerrors.ErrOriginalEntryNotFound
			}
			return err
		}
		e.Timestamp = *cr.RequestedTimestamp
		if cr.RequestedType != nil {
			e.Type = *cr.RequestedType
		}
		e.EditedByID = actorUUIDPtr(actor)
		e.EditedByName = &actor.Name
		e.EditReason = &cr.Reason
		if err := qtx.UpdateEntry(ctx, e); err != nil {
			s.logger.Error("apply correction update entry failed", zap.Error(err))
			return err
		}
	}
	return nil
}

func actorUUIDPtr(actor Actor) *uuid.UUID {
	parsed, err := uuid.Parse(actor.UserID)
	if err != nil {
		return nil
	}
	return &parsed
}

func mapEntryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return timeclockerrors.ErrTimeEntryNotFound
	}
	return err
}

func mapEntryToResponse(e TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:            e.ID.String(),
		PersonnelID:   e.PersonnelID.String(),
		PersonnelName: e.PersonnelName,
		Timestamp:     e.Timestamp.Format(time.RFC3339),
		Type:          e.Type,
		EditedByName:  e.EditedByName,
		EditReason:    e.EditReason,
	}
}

func mapCorrectionToResponse(cr CorrectionRequest) CorrectionResponse {
	resp := CorrectionResponse{
		ID:             cr.ID.String(),
		PersonnelID:    cr.PersonnelID.String(),
		PersonnelName:  cr.PersonnelName,
		Date:           cr.Date.Format("2006-01-02"),
		RequestType:    cr.RequestType,
		Reason:         cr.Reason,
		RequestedType:  cr.RequestedType,
		Status:         cr.Status,
		ReviewedByName: cr.ReviewedByName,
		ReviewNotes:    cr.ReviewNotes,
		CreatedAt:      cr.CreatedAt.Format(time.RFC3339),
	}
	if cr.RequestedTimestamp != nil {
		v := cr.RequestedTimestamp.Format(time.RFC3339)
		resp.RequestedTimestamp = &v
	}
	if cr.OriginalTimestamp != nil {
		v := cr.OriginalTimestamp.Format(time.RFC3339)
		resp.OriginalTimestamp = &v
	}
	if cr.ReviewedAt != nil {
		v := cr.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
