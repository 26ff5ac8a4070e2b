package personnel_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tireops/internal/personnel"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePersonnelRepository struct {
	withTxFn        func(tx *sql.Tx) personnel.Repository
	createFn        func(ctx context.Context, p *personnel.Personnel) error
	findAllFn       func(ctx context.Context) ([]personnel.Personnel, error)
	findAllActiveFn func(ctx context.Context) ([]personnel.Personnel, error)
	findByIDFn      func(ctx context.Context, id string) (*personnel.Personnel, error)
	updateFn        func(ctx context.Context, p *personnel.Personnel) error
	deleteFn        func(ctx context.Context, id string) error
}

func (f *fakePersonnelRepository) WithTx(tx *sql.Tx) personnel.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePersonnelRepository) Create(ctx context.Context, p *personnel.Personnel) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	return nil
}

func (f *fakePersonnelRepository) FindAll(ctx context.Context) ([]personnel.Personnel, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakePersonnelRepository) FindAllActive(ctx context.Context) ([]personnel.Personnel, error) {
	if f.findAllActiveFn != nil {
		return f.findAllActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakePersonnelRepository) FindByID(ctx context.Context, id string) (*personnel.Personnel, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePersonnelRepository) Update(ctx context.Context, p *personnel.Personnel) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, p)
	}
	return nil
}

func (f *fakePersonnelRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

type personnelServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	service   personnel.Service
	repo      *fakePersonnelRepository
	counter   *fakeCounterRepository
}

func setupPersonnelServiceTest(t *testing.T) *personnelServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()

	repo := &fakePersonnelRepository{}
	counterRepo := &fakeCounterRepository{}
	svc := personnel.NewService(db, repo, counterRepo, rdb)

	return &personnelServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		redisMock: redisMock,
		service:   svc,
		repo:      repo,
		counter:   counterRepo,
	}
}

func TestPersonnelService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success with generated number", func(t *testing.T) {
		deps := setupPersonnelServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.redisMock.ExpectDel(personnel.OptionsCacheKey).SetVal(1)

		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			assert.Equal(t, "personnel_number", counterType)
			return 42, nil
		}
		deps.repo.createFn = func(ctx context.Context, p *personnel.Personnel) error {
			assert.Equal(t, "EMP-0042", p.Number)
			assert.True(t, p.Active)
			return nil
		}

		resp, err := deps.service.Create(ctx, personnel.CreatePersonnelRequest{
			FullName: "Maria Lopez",
			Email:    "maria@tireops.local",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-0042", resp.Number)
		assert.Equal(t, "Maria Lopez", resp.FullName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid scheduled start", func(t *testing.T) {
		deps := setupPersonnelServiceTest(t)
		defer deps.db.Close()

		badStart := 2000
		_, err := deps.service.Create(ctx, personnel.CreatePersonnelRequest{
			FullName:              "Bad Schedule",
			Email:                 "bad@tireops.local",
			ScheduledStartMinutes: &badStart,
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "scheduled_start_minutes")
	})

	t.Run("negative counter failure", func(t *testing.T) {
		deps := setupPersonnelServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.counter.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			return 0, errors.New("counter unavailable")
		}

		_, err := deps.service.Create(ctx, personnel.CreatePersonnelRequest{
			FullName: "No Number",
			Email:    "nonumber@tireops.local",
		})

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPersonnelService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("success cache miss falls back to repo and fills cache", func(t *testing.T) {
		deps := setupPersonnelServiceTest(t)
		defer deps.db.Close()

		rows := []personnel.Personnel{
			{ID: uuid.New(), Number: "EMP-0001", FullName: "Alpha"},
			{ID: uuid.New(), Number: "EMP-0002", FullName: "Beta"},
		}
		deps.repo.findAllActiveFn = func(ctx context.Context) ([]personnel.Personnel, error) {
			return rows, nil
		}

		expected := make([]personnel.PersonnelOption, len(rows))
		for i, p := range rows {
			expected[i] = personnel.PersonnelOption{ID: p.ID.String(), Number: p.Number, FullName: p.FullName}
		}
		payload, err := json.Marshal(expected)
		assert.NoError(t, err)

		deps.redisMock.ExpectGet(personnel.OptionsCacheKey).RedisNil()
		deps.redisMock.ExpectSet(personnel.OptionsCacheKey, payload, 5*time.Minute).SetVal("OK")

		opts, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, opts, 2)
		assert.Equal(t, "EMP-0001", opts[0].Number)
	})

	t.Run("success cache hit skips repo", func(t *testing.T) {
		deps := setupPersonnelServiceTest(t)
		defer deps.db.Close()

		cached := []personnel.PersonnelOption{{ID: uuid.New().String(), Number: "EMP-0009", FullName: "Cached"}}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)

		deps.redisMock.ExpectGet(personnel.OptionsCacheKey).SetVal(string(payload))
		deps.repo.findAllActiveFn = func(ctx context.Context) ([]personnel.Personnel, error) {
			t.Fatal("repo should not be called on cache hit")
			return nil, nil
		}

		opts, err := deps.service.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, opts, 1)
		assert.Equal(t, "Cached", opts[0].FullName)
	})
}

func TestPersonnelService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("success deactivate", func(t *testing.T) {
		deps := setupPersonnelServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.redisMock.ExpectDel(personnel.OptionsCacheKey).SetVal(1)

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*personnel.Personnel, error) {
			return &personnel.Personnel{ID: id, Number: "EMP-0007", FullName: "Old Name", Email: "old@tireops.local", Active: true}, nil
		}
		inactive := false
		deps.repo.updateFn = func(ctx context.Context, p *personnel.Personnel) error {
			assert.False(t, p.Active)
			assert.Equal(t, "New Name", p.FullName)
			return nil
		}

		resp, err := deps.service.Update(ctx, id.String(), personnel.UpdatePersonnelRequest{
			FullName: "New Name",
			Email:    "new@tireops.local",
			Active:   &inactive,
		})

		assert.NoError(t, err)
		assert.False(t, resp.Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative invalid id", func(t *testing.T) {
		deps := setupPersonnelServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Update(ctx, "not-a-uuid", personnel.UpdatePersonnelRequest{
			FullName: "X", Email: "x@tireops.local",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid personnel id")
	})
}
