package personnel

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	personnelerrors "tireops/internal/personnel/errors"
	"tireops/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const OptionsCacheKey = "personnel:options"

const optionsCacheTTL = 5 * time.Minute

//go:generate mockgen -source=personnel_service.go -destination=mock/personnel_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePersonnelRequest) (PersonnelResponse, error)
	GetAll(ctx context.Context) ([]PersonnelResponse, error)
	GetOptions(ctx context.Context) ([]PersonnelOption, error)
	GetByID(ctx context.Context, id string) (PersonnelResponse, error)
	Update(ctx context.Context, id string, req UpdatePersonnelRequest) (PersonnelResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("personnel.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("personnel.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, req CreatePersonnelRequest) (PersonnelResponse, error) {
	s.logger.Debug("create personnel requested",
		zap.String("email", req.Email),
		zap.String("full_name", req.FullName),
	)

	if err := validateScheduledStart(req.ScheduledStartMinutes); err != nil {
		return PersonnelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create personnel begin tx failed", zap.Error(err))
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	number := req.Number
	if number == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "personnel_number")
		if err != nil {
			s.logger.Error("create personnel generate number failed", zap.Error(err))
			return PersonnelResponse{}, err
		}
		number = fmt.Sprintf("EMP-%04d", nextVal)
	}

	p := &Personnel{
		ID:                    uuid.New(),
		Number:                number,
		FullName:              req.FullName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Active:                true,
		ScheduledStartMinutes: req.ScheduledStartMinutes,
	}

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("create personnel persist failed", zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create personnel commit failed", zap.Error(err))
		return PersonnelResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("create personnel success",
		zap.String("personnel_id", p.ID.String()),
		zap.String("number", p.Number),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]PersonnelResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]PersonnelResponse, len(rows))
	for i, p := range rows {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

// GetOptions melayani dropdown UI; di-cache di redis dan dilindungi singleflight
// supaya cache miss serentak tidak membanjiri database.
func (s *service) GetOptions(ctx context.Context) ([]PersonnelOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var opts []PersonnelOption
			if err := json.Unmarshal([]byte(cached), &opts); err == nil {
				return opts, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		rows, err := s.repo.FindAllActive(ctx)
		if err != nil {
			return nil, err
		}

		opts := make([]PersonnelOption, len(rows))
		for i, p := range rows {
			opts[i] = PersonnelOption{
				ID:       p.ID.String(),
				Number:   p.Number,
				FullName: p.FullName,
			}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(opts); err == nil {
				if err := s.rdb.Set(ctx, OptionsCacheKey, payload, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("personnel options cache set failed", zap.Error(err))
				}
			}
		}

		return opts, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PersonnelOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PersonnelResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PersonnelResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePersonnelRequest) (PersonnelResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonnelResponse{}, personnelerrors.ErrInvalidPersonnelID
	}
	if err := validateScheduledStart(req.ScheduledStartMinutes); err != nil {
		return PersonnelResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PersonnelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	p.FullName = req.FullName
	p.Email = req.Email
	p.Phone = req.Phone
	p.ScheduledStartMinutes = req.ScheduledStartMinutes
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update personnel persist failed", zap.String("personnel_id", id), zap.Error(err))
		return PersonnelResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PersonnelResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update personnel success", zap.String("personnel_id", id))

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return personnelerrors.ErrInvalidPersonnelID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Warn("personnel options cache invalidate failed", zap.Error(err))
	}
}

func validateScheduledStart(v *int) error {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > 1439 {
		return personnelerrors.ErrInvalidScheduledStart
	}
	return nil
}

func mapToResponse(p Personnel) PersonnelResponse {
	return PersonnelResponse{
		ID:                    p.ID.String(),
		Number:                p.Number,
		FullName:              p.FullName,
		Email:                 p.Email,
		Phone:                 p.Phone,
		Active:                p.Active,
		ScheduledStartMinutes: p.ScheduledStartMinutes,
	}
}
