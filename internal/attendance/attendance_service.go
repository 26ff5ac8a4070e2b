package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	attendanceerrors "tireops/internal/attendance/errors"
	"tireops/internal/events"
	"tireops/internal/messaging/kafka"
	"tireops/internal/personnel"
	"tireops/internal/shared/contextutil"
	"tireops/internal/timeclock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	GetTodayLive(ctx context.Context) ([]LiveStatusResponse, error)
	GetIssues(ctx context.Context, date string) ([]IssueResponse, error)
	CreateWriteUpFromAttendance(ctx context.Context, actor Actor, issueID string) (WriteUpResponse, error)
	GetWriteUps(ctx context.Context, personnelID string) ([]WriteUpResponse, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	personnelRepo personnel.Repository
	timeclockRepo timeclock.Repository
	outboxRepo    kafka.OutboxRepository
	cfg           Config
	logger        *zap.Logger
}

func NewService(db *sql.DB, repo Repository, personnelRepo personnel.Repository, timeclockRepo timeclock.Repository, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		personnelRepo: personnelRepo,
		timeclockRepo: timeclockRepo,
		cfg:           cfg,
		logger:        l,
	}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, personnelRepo personnel.Repository, timeclockRepo timeclock.Repository, outboxRepo kafka.OutboxRepository, cfg Config, logger ...*zap.Logger) Service {
	s := NewService(db, repo, personnelRepo, timeclockRepo, cfg, logger...).(*service)
	s.outboxRepo = outboxRepo
	return s
}

// earliestClockIns memetakan personnel id ke clock-in paling awal dari
// kumpulan entry satu hari.
func earliestClockIns(entries []timeclock.TimeEntry) map[string]time.Time {
	out := make(map[string]time.Time)
	for _, e := range entries {
		if e.Type != timeclock.EntryClockIn {
			continue
		}
		key := e.PersonnelID.String()
		if first, ok := out[key]; !ok || e.Timestamp.Before(first) {
			out[key] = e.Timestamp
		}
	}
	return out
}

func formatScheduledStart(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (s *service) GetTodayLive(ctx context.Context) ([]LiveStatusResponse, error) {
	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	people, err := s.personnelRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.timeclockRepo.FindEntriesByRange(ctx, date, date.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	clockIns := earliestClockIns(entries)

	out := make([]LiveStatusResponse, 0, len(people))
	for _, p := range people {
		if p.ScheduledStartMinutes == nil {
			continue
		}

		var earliest *time.Time
		if ts, ok := clockIns[p.ID.String()]; ok {
			earliest = &ts
		}

		eval := Evaluate(s.cfg, date, *p.ScheduledStartMinutes, earliest, now)
		resp := LiveStatusResponse{
			PersonnelID:    p.ID.String(),
			PersonnelName:  p.FullName,
			ScheduledStart: formatScheduledStart(*p.ScheduledStartMinutes),
			Status:         eval.Status,
			MinutesLate:    eval.MinutesLate,
		}
		if earliest != nil {
			v := earliest.Format(time.RFC3339)
			resp.ClockedInAt = &v
		}
		out = append(out, resp)
	}

	return out, nil
}

func (s *service) GetIssues(ctx context.Context, dateStr string) ([]IssueResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}

	people, err := s.personnelRepo.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.timeclockRepo.FindEntriesByRange(ctx, date, date.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	clockIns := earliestClockIns(entries)
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("get issues begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Evaluasi yang flagged di-upsert supaya id issue stabil antar
	// pemanggilan; write-up butuh id yang tidak berubah-ubah.
	out := make([]IssueResponse, 0)
	for _, p := range people {
		if p.ScheduledStartMinutes == nil {
			continue
		}

		var earliest *time.Time
		if ts, ok := clockIns[p.ID.String()]; ok {
			earliest = &ts
		}

		eval := Evaluate(s.cfg, date, *p.ScheduledStartMinutes, earliest, now)
		if eval.Status != StatusLate && eval.Status != StatusNoCallNoShow {
			continue
		}

		issue, err := qtx.FindIssueByPersonnelAndDate(ctx, p.ID.String(), date)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			issue = &AttendanceIssue{
				ID:            uuid.New(),
				PersonnelID:   p.ID,
				PersonnelName: p.FullName,
				Date:          date,
				Kind:          eval.Status,
				MinutesLate:   eval.MinutesLate,
			}
			if err := qtx.CreateIssue(ctx, issue); err != nil {
				s.logger.Error("get issues persist failed", zap.Error(err))
				return nil, err
			}
		}

		linked, err := qtx.HasWriteUpForIssue(ctx, issue.ID.String())
		if err != nil {
			return nil, err
		}

		out = append(out, IssueResponse{
			ID:               issue.ID.String(),
			PersonnelID:      issue.PersonnelID.String(),
			PersonnelName:    issue.PersonnelName,
			Date:             issue.Date.Format("2006-01-02"),
			Kind:             issue.Kind,
			MinutesLate:      issue.MinutesLate,
			HasLinkedWriteUp: linked,
		})
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("get issues commit failed", zap.Error(err))
		return nil, err
	}

	return out, nil
}

func (s *service) CreateWriteUpFromAttendance(ctx context.Context, actor Actor, issueID string) (WriteUpResponse, error) {
	s.logger.Debug("create write-up requested", zap.String("issue_id", issueID))

	if _, err := uuid.Parse(issueID); err != nil {
		return WriteUpResponse{}, attendanceerrors.ErrInvalidIssueID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create write-up begin tx failed", zap.Error(err))
		return WriteUpResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	issue, err := qtx.FindIssueByID(ctx, issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WriteUpResponse{}, attendanceerrors.ErrIssueNotFound
		}
		return WriteUpResponse{}, err
	}

	linked, err := qtx.HasWriteUpForIssue(ctx, issueID)
	if err != nil {
		return WriteUpResponse{}, err
	}
	if linked {
		return WriteUpResponse{}, attendanceerrors.ErrWriteUpAlreadyLinked
	}

	now := time.Now().UTC()
	priorCount, err := qtx.CountWriteUpsSince(ctx, issue.PersonnelID.String(), CategoryAttendance, now.AddDate(0, -6, 0))
	if err != nil {
		return WriteUpResponse{}, err
	}

	w := &WriteUp{
		ID:                uuid.New(),
		AttendanceIssueID: issue.ID,
		PersonnelID:       issue.PersonnelID,
		PersonnelName:     issue.PersonnelName,
		Severity:          severityForCount(priorCount),
		Category:          CategoryAttendance,
		IssuedByID:        actorUUID(actor),
		IssuedByName:      actor.Name,
	}
	if err := qtx.CreateWriteUp(ctx, w); err != nil {
		s.logger.Error("create write-up persist failed", zap.Error(err))
		return WriteUpResponse{}, err
	}

	if err := s.enqueueWriteUpEvent(ctx, tx, w); err != nil {
		s.logger.Error("create write-up enqueue event failed", zap.Error(err))
		return WriteUpResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create write-up commit failed", zap.Error(err))
		return WriteUpResponse{}, err
	}

	s.logger.Info("create write-up success",
		zap.String("writeup_id", w.ID.String()),
		zap.String("personnel_id", w.PersonnelID.String()),
		zap.String("severity", w.Severity),
		zap.String("performed_by", actor.UserID),
	)

	return mapWriteUpToResponse(*w), nil
}

func (s *service) GetWriteUps(ctx context.Context, personnelID string) ([]WriteUpResponse, error) {
	if _, err := uuid.Parse(personnelID); err != nil {
		return nil, attendanceerrors.ErrInvalidPersonnelID
	}
	rows, err := s.repo.FindWriteUpsByPersonnel(ctx, personnelID)
	if err != nil {
		return nil, err
	}
	out := make([]WriteUpResponse, 0, len(rows))
	for _, w := range rows {
		out = append(out, mapWriteUpToResponse(w))
	}
	return out, nil
}

func (s *service) enqueueWriteUpEvent(ctx context.Context, tx *sql.Tx, w *WriteUp) error {
	if s.outboxRepo == nil {
		return nil
	}

	payload, err := json.Marshal(events.WriteUpCreatedEvent{
		EventType:   "writeup.created",
		WriteUpID:   w.ID.String(),
		PersonnelID: w.PersonnelID.String(),
		Severity:    w.Severity,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outboxRepo.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "writeup",
		AggregateID:   w.ID.String(),
		EventType:     "writeup.created",
		Topic:         events.WriteUpCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func actorUUID(actor Actor) uuid.UUID {
	parsed, err := uuid.Parse(actor.UserID)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

func mapWriteUpToResponse(w WriteUp) WriteUpResponse {
	return WriteUpResponse{
		ID:                w.ID.String(),
		AttendanceIssueID: w.AttendanceIssueID.String(),
		PersonnelID:       w.PersonnelID.String(),
		PersonnelName:     w.PersonnelName,
		Severity:          w.Severity,
		Category:          w.Category,
		IssuedByName:      w.IssuedByName,
		CreatedAt:         w.CreatedAt.Format(time.RFC3339),
	}
}
