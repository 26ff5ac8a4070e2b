package timeclock

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=timeclock_repo.go -destination=mock/timeclock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateEntry(ctx context.Context, e *TimeEntry) error
	FindEntryByID(ctx context.Context, id string) (*TimeEntry, error)
	FindEntriesByPersonnelAndRange(ctx context.Context, personnelID string, from, to time.Time) ([]TimeEntry, error)
	FindEntriesByRange(ctx context.Context, from, to time.Time) ([]TimeEntry, error)
	FindEntryByPersonnelAndTimestamp(ctx context.Context, personnelID string, ts time.Time) (*TimeEntry, error)
	UpdateEntry(ctx context.Context, e *TimeEntry) error
	DeleteEntry(ctx context.Context, id string) error

	CreateCorrection(ctx context.Context, cr *CorrectionRequest) error
	FindCorrectionByID(ctx context.Context, id string) (*CorrectionRequest, error)
	FindPendingCorrections(ctx context.Context) ([]CorrectionRequest, error)
	UpdateCorrection(ctx context.Context, cr *CorrectionRequest) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn memakai transaksi aktif bila ada, selain itu pool gorm.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) CreateEntry(ctx context.Context, e *TimeEntry) error {
	return r.conn(ctx).Create(e).Error
}

func (r *repository) FindEntryByID(ctx context.Context, id string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.conn(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindEntriesByPersonnelAndRange(ctx context.Context, personnelID string, from, to time.Time) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.conn(ctx).
		Where("personnel_id = ?", personnelID).
		Where("timestamp >= ? AND timestamp < ?", from, to).
		Order("timestamp ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEntriesByRange(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.conn(ctx).
		Where("timestamp >= ? AND timestamp < ?", from, to).
		Order("personnel_id ASC, timestamp ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindEntryByPersonnelAndTimestamp(ctx context.Context, personnelID string, ts time.Time) (*TimeEntry, error) {
	var e TimeEntry
	err := r.conn(ctx).
		Where("personnel_id = ?", personnelID).
		First(&e, "timestamp = ?", ts).Error
	return &e, err
}

func (r *repository) UpdateEntry(ctx context.Context, e *TimeEntry) error {
	return r.conn(ctx).Save(e).Error
}

func (r *repository) DeleteEntry(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&TimeEntry{}, "id = ?", id).Error
}

func (r *repository) CreateCorrection(ctx context.Context, cr *CorrectionRequest) error {
	return r.conn(ctx).Create(cr).Error
}

func (r *repository) FindCorrectionByID(ctx context.Context, id string) (*CorrectionRequest, error) {
	var cr CorrectionRequest
	err := r.conn(ctx).First(&cr, "id = ?", id).Error
	return &cr, err
}

func (r *repository) FindPendingCorrections(ctx context.Context) ([]CorrectionRequest, error) {
	var rows []CorrectionRequest
	err := r.conn(ctx).
		Where("status = ?", CorrectionPending).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) UpdateCorrection(ctx context.Context, cr *CorrectionRequest) error {
	return r.conn(ctx).Save(cr).Error
}
