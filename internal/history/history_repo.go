package history

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Repository hanya punya Append dan pembacaan; tidak ada path update.
// DeleteByEquipment satu-satunya penghapusan, dipakai cascade delete unit.
//
//go:generate mockgen -source=history_repo.go -destination=mock/history_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Append(ctx context.Context, rec *EquipmentHistoryRecord) error
	FindByEquipment(ctx context.Context, equipmentID string) ([]EquipmentHistoryRecord, error)
	DeleteByEquipment(ctx context.Context, equipmentID string) error
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

func (r *repository) Append(ctx context.Context, rec *EquipmentHistoryRecord) error {
	return r.conn(ctx).Create(rec).Error
}

func (r *repository) FindByEquipment(ctx context.Context, equipmentID string) ([]EquipmentHistoryRecord, error) {
	var rows []EquipmentHistoryRecord
	err := r.conn(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByEquipment(ctx context.Context, equipmentID string) error {
	return r.conn(ctx).
		Where("equipment_id = ?", equipmentID).
		Delete(&EquipmentHistoryRecord{}).Error
}
