package attendance

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateIssue(ctx context.Context, issue *AttendanceIssue) error
	FindIssueByID(ctx context.Context, id string) (*AttendanceIssue, error)
	FindIssueByPersonnelAndDate(ctx context.Context, personnelID string, date time.Time) (*AttendanceIssue, error)
	FindIssuesByDate(ctx context.Context, date time.Time) ([]AttendanceIssue, error)

	CreateWriteUp(ctx context.Context, w *WriteUp) error
	HasWriteUpForIssue(ctx context.Context, issueID string) (bool, error)
	CountWriteUpsSince(ctx context.Context, personnelID string, category string, since time.Time) (int64, error)
	FindWriteUpsByPersonnel(ctx context.Context, personnelID string) ([]WriteUp, error)
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

func (r *repository) CreateIssue(ctx context.Context, issue *AttendanceIssue) error {
	return r.conn(ctx).Create(issue).Error
}

func (r *repository) FindIssueByID(ctx context.Context, id string) (*AttendanceIssue, error) {
	var issue AttendanceIssue
	err := r.conn(ctx).First(&issue, "id = ?", id).Error
	return &issue, err
}

func (r *repository) FindIssueByPersonnelAndDate(ctx context.Context, personnelID string, date time.Time) (*AttendanceIssue, error) {
	var issue AttendanceIssue
	err := r.conn(ctx).
		Where("personnel_id = ?", personnelID).
		First(&issue, "date = ?", date).Error
	return &issue, err
}

func (r *repository) FindIssuesByDate(ctx context.Context, date time.Time) ([]AttendanceIssue, error) {
	var rows []AttendanceIssue
	err := r.conn(ctx).
		Where("date = ?", date).
		Order("personnel_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CreateWriteUp(ctx context.Context, w *WriteUp) error {
	return r.conn(ctx).Create(w).Error
}

func (r *repository) HasWriteUpForIssue(ctx context.Context, issueID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&WriteUp{}).
		Where("attendance_issue_id = ?", issueID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountWriteUpsSince(ctx context.Context, personnelID string, category string, since time.Time) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&WriteUp{}).
		Where("personnel_id = ?", personnelID).
		Where("category = ?", category).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) FindWriteUpsByPersonnel(ctx context.Context, personnelID string) ([]WriteUp, error) {
	var rows []WriteUp
	err := r.conn(ctx).
		Where("personnel_id = ?", personnelID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
