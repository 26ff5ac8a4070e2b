package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"tireops/internal/attendance"
	attendanceerrors "tireops/internal/attendance/errors"
	"tireops/internal/messaging/kafka"
	"tireops/internal/personnel"
	"tireops/internal/rbac"
	"tireops/internal/timeclock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAttendanceRepository struct {
	createIssueFn      func(ctx context.Context, issue *attendance.AttendanceIssue) error
	findIssueByIDFn    func(ctx context.Context, id string) (*attendance.AttendanceIssue, error)
	findIssueByDateFn  func(ctx context.Context, personnelID string, date time.Time) (*attendance.AttendanceIssue, error)
	findIssuesByDateFn func(ctx context.Context, date time.Time) ([]attendance.AttendanceIssue, error)
	createWriteUpFn    func(ctx context.Context, w *attendance.WriteUp) error
	hasWriteUpFn       func(ctx context.Context, issueID string) (bool, error)
	countWriteUpsFn    func(ctx context.Context, personnelID string, category string, since time.Time) (int64, error)
	findWriteUpsFn     func(ctx context.Context, personnelID string) ([]attendance.WriteUp, error)

	createdIssues []attendance.AttendanceIssue
}

func (f *fakeAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeAttendanceRepository) CreateIssue(ctx context.Context, issue *attendance.AttendanceIssue) error {
	if f.createIssueFn != nil {
		return f.createIssueFn(ctx, issue)
	}
	f.createdIssues = append(f.createdIssues, *issue)
	return nil
}

func (f *fakeAttendanceRepository) FindIssueByID(ctx context.Context, id string) (*attendance.AttendanceIssue, error) {
	if f.findIssueByIDFn != nil {
		return f.findIssueByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindIssueByPersonnelAndDate(ctx context.Context, personnelID string, date time.Time) (*attendance.AttendanceIssue, error) {
	if f.findIssueByDateFn != nil {
		return f.findIssueByDateFn(ctx, personnelID, date)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAttendanceRepository) FindIssuesByDate(ctx context.Context, date time.Time) ([]attendance.AttendanceIssue, error) {
	if f.findIssuesByDateFn != nil {
		return f.findIssuesByDateFn(ctx, date)
	}
	return nil, nil
}

func (f *fakeAttendanceRepository) CreateWriteUp(ctx context.Context, w *attendance.WriteUp) error {
	if f.createWriteUpFn != nil {
		return f.createWriteUpFn(ctx, w)
	}
	return nil
}

func (f *fakeAttendanceRepository) HasWriteUpForIssue(ctx context.Context, issueID string) (bool, error) {
	if f.hasWriteUpFn != nil {
		return f.hasWriteUpFn(ctx, issueID)
	}
	return false, nil
}

func (f *fakeAttendanceRepository) CountWriteUpsSince(ctx context.Context, personnelID string, category string, since time.Time) (int64, error) {
	if f.countWriteUpsFn != nil {
		return f.countWriteUpsFn(ctx, personnelID, category, since)
	}
	return 0, nil
}

func (f *fakeAttendanceRepository) FindWriteUpsByPersonnel(ctx context.Context, personnelID string) ([]attendance.WriteUp, error) {
	if f.findWriteUpsFn != nil {
		return f.findWriteUpsFn(ctx, personnelID)
	}
	return nil, nil
}

type fakeScheduleDirectory struct {
	findAllActiveFn func(ctx context.Context) ([]personnel.Personnel, error)
}

func (f *fakeScheduleDirectory) WithTx(tx *sql.Tx) personnel.Repository { return f }

func (f *fakeScheduleDirectory) Create(ctx context.Context, p *personnel.Personnel) error {
	return nil
}

func (f *fakeScheduleDirectory) FindAll(ctx context.Context) ([]personnel.Personnel, error) {
	return nil, nil
}

func (f *fakeScheduleDirectory) FindAllActive(ctx context.Context) ([]personnel.Personnel, error) {
	if f.findAllActiveFn != nil {
		return f.findAllActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeScheduleDirectory) FindByID(ctx context.Context, id string) (*personnel.Personnel, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeScheduleDirectory) Update(ctx context.Context, p *personnel.Personnel) error {
	return nil
}

func (f *fakeScheduleDirectory) Delete(ctx context.Context, id string) error { return nil }

type fakePunchLog struct {
	findByRangeFn func(ctx context.Context, from, to time.Time) ([]timeclock.TimeEntry, error)
}

func (f *fakePunchLog) WithTx(tx *sql.Tx) timeclock.Repository { return f }

func (f *fakePunchLog) CreateEntry(ctx context.Context, e *timeclock.TimeEntry) error { return nil }

func (f *fakePunchLog) FindEntryByID(ctx context.Context, id string) (*timeclock.TimeEntry, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePunchLog) FindEntriesByPersonnelAndRange(ctx context.Context, personnelID string, from, to time.Time) ([]timeclock.TimeEntry, error) {
	return nil, nil
}

func (f *fakePunchLog) FindEntriesByRange(ctx context.Context, from, to time.Time) ([]timeclock.TimeEntry, error) {
	if f.findByRangeFn != nil {
		return f.findByRangeFn(ctx, from, to)
	}
	return nil, nil
}

func (f *fakePunchLog) FindEntryByPersonnelAndTimestamp(ctx context.Context, personnelID string, ts time.Time) (*timeclock.TimeEntry, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePunchLog) UpdateEntry(ctx context.Context, e *timeclock.TimeEntry) error { return nil }

func (f *fakePunchLog) DeleteEntry(ctx context.Context, id string) error { return nil }

func (f *fakePunchLog) CreateCorrection(ctx context.Context, cr *timeclock.CorrectionRequest) error {
	return nil
}

func (f *fakePunchLog) FindCorrectionByID(ctx context.Context, id string) (*timeclock.CorrectionRequest, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePunchLog) FindPendingCorrections(ctx context.Context) ([]timeclock.CorrectionRequest, error) {
	return nil, nil
}

func (f *fakePunchLog) UpdateCorrection(ctx context.Context, cr *timeclock.CorrectionRequest) error {
	return nil
}

type fakeEventQueue struct {
	created []kafka.OutboxEvent
}

func (f *fakeEventQueue) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeEventQueue) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeEventQueue) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeEventQueue) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeEventQueue) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type attendanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service attendance.Service
	repo    *fakeAttendanceRepository
	people  *fakeScheduleDirectory
	punches *fakePunchLog
	outbox  *fakeEventQueue
}

func setupAttendanceServiceTest(t *testing.T) *attendanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAttendanceRepository{}
	people := &fakeScheduleDirectory{}
	punches := &fakePunchLog{}
	outbox := &fakeEventQueue{}

	svc := attendance.NewServiceWithOutbox(db, repo, people, punches, outbox, attendance.Config{
		GraceMinutes:        5,
		LateBufferMinutes:   10,
		NoShowCutoffMinutes: 120,
	})

	return &attendanceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		people:  people,
		punches: punches,
		outbox:  outbox,
	}
}

func coachActor() attendance.Actor {
	return attendance.Actor{
		UserID: uuid.NewString(),
		Name:   "Coach Dua",
		Role:   rbac.RoleCoach,
	}
}

func scheduledWorker(name string, startMinutes int) personnel.Personnel {
	return personnel.Personnel{
		ID:                    uuid.New(),
		FullName:              name,
		Active:                true,
		ScheduledStartMinutes: &startMinutes,
	}
}

func TestAttendanceService_GetIssues(t *testing.T) {
	ctx := context.Background()

	t.Run("success flags late and no-show, skips on-time", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		// Tanggal lampau: cutoff no-show pasti sudah lewat.
		onTime := scheduledWorker("Budi Santoso", 8*60)
		late := scheduledWorker("Citra Lestari", 8*60)
		noShow := scheduledWorker("Dewi Anggraini", 8*60)
		unscheduled := personnel.Personnel{ID: uuid.New(), FullName: "Eko Prasetyo", Active: true}

		deps.people.findAllActiveFn = func(ctx context.Context) ([]personnel.Personnel, error) {
			return []personnel.Personnel{onTime, late, noShow, unscheduled}, nil
		}
		deps.punches.findByRangeFn = func(ctx context.Context, from, to time.Time) ([]timeclock.TimeEntry, error) {
			return []timeclock.TimeEntry{
				{PersonnelID: onTime.ID, PersonnelName: onTime.FullName, Type: timeclock.EntryClockIn, Timestamp: time.Date(2026, 8, 3, 7, 58, 0, 0, time.UTC)},
				{PersonnelID: late.ID, PersonnelName: late.FullName, Type: timeclock.EntryClockIn, Timestamp: time.Date(2026, 8, 3, 8, 40, 0, 0, time.UTC)},
			}, nil
		}

		out, err := deps.service.GetIssues(ctx, "2026-08-03")

		assert.NoError(t, err)
		assert.Len(t, out, 2)
		assert.Len(t, deps.repo.createdIssues, 2)

		byName := map[string]attendance.IssueResponse{}
		for _, issue := range out {
			byName[issue.PersonnelName] = issue
		}
		assert.Equal(t, attendance.StatusLate, byName["Citra Lestari"].Kind)
		assert.Equal(t, 40, byName["Citra Lestari"].MinutesLate)
		assert.Equal(t, attendance.StatusNoCallNoShow, byName["Dewi Anggraini"].Kind)
	})

	t.Run("success reuses persisted issue for stable id", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		worker := scheduledWorker("Citra Lestari", 8*60)
		deps.people.findAllActiveFn = func(ctx context.Context) ([]personnel.Personnel, error) {
			return []personnel.Personnel{worker}, nil
		}

		existing := &attendance.AttendanceIssue{
			ID:            uuid.New(),
			PersonnelID:   worker.ID,
			PersonnelName: worker.FullName,
			Date:          time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
			Kind:          attendance.StatusNoCallNoShow,
		}
		deps.repo.findIssueByDateFn = func(ctx context.Context, personnelID string, date time.Time) (*attendance.AttendanceIssue, error) {
			return existing, nil
		}

		out, err := deps.service.GetIssues(ctx, "2026-08-03")

		assert.NoError(t, err)
		assert.Len(t, out, 1)
		assert.Equal(t, existing.ID.String(), out[0].ID)
		assert.Empty(t, deps.repo.createdIssues)
	})

	t.Run("negative bad date", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetIssues(ctx, "03/08/2026")

		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
	})
}

func TestAttendanceService_CreateWriteUpFromAttendance(t *testing.T) {
	ctx := context.Background()

	issueFor := func(personnelID uuid.UUID) *attendance.AttendanceIssue {
		return &attendance.AttendanceIssue{
			ID:            uuid.New(),
			PersonnelID:   personnelID,
			PersonnelName: "Citra Lestari",
			Date:          time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
			Kind:          attendance.StatusLate,
			MinutesLate:   40,
		}
	}

	t.Run("success severity escalates with prior count", func(t *testing.T) {
		cases := []struct {
			priorCount int64
			severity   string
		}{
			{0, attendance.SeverityVerbalWarning},
			{1, attendance.SeverityWrittenWarning},
			{2, attendance.SeverityFinalWarning},
			{3, attendance.SeveritySuspension},
			{7, attendance.SeveritySuspension},
		}

		for _, tc := range cases {
			deps := setupAttendanceServiceTest(t)

			deps.sqlMock.ExpectBegin()
			deps.sqlMock.ExpectCommit()

			issue := issueFor(uuid.New())
			deps.repo.findIssueByIDFn = func(ctx context.Context, id string) (*attendance.AttendanceIssue, error) {
				return issue, nil
			}
			deps.repo.countWriteUpsFn = func(ctx context.Context, personnelID string, category string, since time.Time) (int64, error) {
				assert.Equal(t, attendance.CategoryAttendance, category)
				return tc.priorCount, nil
			}

			resp, err := deps.service.CreateWriteUpFromAttendance(ctx, coachActor(), issue.ID.String())

			assert.NoError(t, err)
			assert.Equal(t, tc.severity, resp.Severity)
			deps.db.Close()
		}
	})

	t.Run("success uses trailing six month window", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		issue := issueFor(uuid.New())
		deps.repo.findIssueByIDFn = func(ctx context.Context, id string) (*attendance.AttendanceIssue, error) {
			return issue, nil
		}

		var since time.Time
		deps.repo.countWriteUpsFn = func(ctx context.Context, personnelID string, category string, s time.Time) (int64, error) {
			since = s
			return 0, nil
		}

		_, err := deps.service.CreateWriteUpFromAttendance(ctx, coachActor(), issue.ID.String())

		assert.NoError(t, err)
		expected := time.Now().UTC().AddDate(0, -6, 0)
		assert.WithinDuration(t, expected, since, time.Minute)
	})

	t.Run("success emits writeup created event", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		issue := issueFor(uuid.New())
		deps.repo.findIssueByIDFn = func(ctx context.Context, id string) (*attendance.AttendanceIssue, error) {
			return issue, nil
		}

		_, err := deps.service.CreateWriteUpFromAttendance(ctx, coachActor(), issue.ID.String())

		assert.NoError(t, err)
		assert.Len(t, deps.outbox.created, 1)
		assert.Equal(t, "writeup.created", deps.outbox.created[0].EventType)
	})

	t.Run("negative duplicate write-up for same issue", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		issue := issueFor(uuid.New())
		deps.repo.findIssueByIDFn = func(ctx context.Context, id string) (*attendance.AttendanceIssue, error) {
			return issue, nil
		}
		deps.repo.hasWriteUpFn = func(ctx context.Context, issueID string) (bool, error) {
			return true, nil
		}

		var createCalled bool
		deps.repo.createWriteUpFn = func(ctx context.Context, w *attendance.WriteUp) error {
			createCalled = true
			return nil
		}

		_, err := deps.service.CreateWriteUpFromAttendance(ctx, coachActor(), issue.ID.String())

		assert.ErrorIs(t, err, attendanceerrors.ErrWriteUpAlreadyLinked)
		assert.False(t, createCalled)
		assert.Empty(t, deps.outbox.created)
	})

	t.Run("negative issue not found", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.CreateWriteUpFromAttendance(ctx, coachActor(), uuid.NewString())

		assert.ErrorIs(t, err, attendanceerrors.ErrIssueNotFound)
	})
}

func TestAttendanceService_GetTodayLive(t *testing.T) {
	ctx := context.Background()

	t.Run("success skips unscheduled personnel", func(t *testing.T) {
		deps := setupAttendanceServiceTest(t)
		defer deps.db.Close()

		scheduled := scheduledWorker("Budi Santoso", 0)
		unscheduled := personnel.Personnel{ID: uuid.New(), FullName: "Eko Prasetyo", Active: true}

		deps.people.findAllActiveFn = func(ctx context.Context) ([]personnel.Personnel, error) {
			return []personnel.Personnel{scheduled, unscheduled}, nil
		}
		deps.punches.findByRangeFn = func(ctx context.Context, from, to time.Time) ([]timeclock.TimeEntry, error) {
			return []timeclock.TimeEntry{
				{PersonnelID: scheduled.ID, PersonnelName: scheduled.FullName, Type: timeclock.EntryClockIn, Timestamp: time.Now().UTC()},
			}, nil
		}

		out, err := deps.service.GetTodayLive(ctx)

		assert.NoError(t, err)
		assert.Len(t, out, 1)
		assert.Equal(t, scheduled.ID.String(), out[0].PersonnelID)
		assert.NotNil(t, out[0].ClockedInAt)
	})
}
