package equipment

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=equipment_repo.go -destination=mock/equipment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, u *EquipmentUnit) error
	FindAll(ctx context.Context) ([]EquipmentUnit, error)
	FindByID(ctx context.Context, id string) (*EquipmentUnit, error)
	// UpdateGuarded menulis unit hanya jika status tersimpan masih
	// expectedStatus; mengembalikan false jika record sudah berubah
	// (precondition optimistik untuk operasi konkuren pada unit yang sama).
	UpdateGuarded(ctx context.Context, u *EquipmentUnit, expectedStatus string) (bool, error)
	Delete(ctx context.Context, id string) error

	CreateAgreement(ctx context.Context, a *AssignmentAgreement) error
	FindAgreementsByEquipment(ctx context.Context, equipmentID string) ([]AssignmentAgreement, error)
	DeleteAgreementsByEquipment(ctx context.Context, equipmentID string) error

	CreateConditionCheck(ctx context.Context, cc *ConditionCheck) error
	FindConditionChecksByEquipment(ctx context.Context, equipmentID string) ([]ConditionCheck, error)
	DeleteConditionChecksByEquipment(ctx context.Context, equipmentID string) error
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
// Tanpa ini, write di dalam service tx jalan autocommit sendiri-sendiri.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, u *EquipmentUnit) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindAll(ctx context.Context) ([]EquipmentUnit, error) {
	var rows []EquipmentUnit
	err := r.conn(ctx).
		Order("type ASC, number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*EquipmentUnit, error) {
	var u EquipmentUnit
	err := r.conn(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) UpdateGuarded(ctx context.Context, u *EquipmentUnit, expectedStatus string) (bool, error) {
	res := r.conn(ctx).
		Model(&EquipmentUnit{}).
		Where("id = ? AND status = ?", u.ID, expectedStatus).
		Select("status", "assigned_to_id", "assigned_to_name", "condition_notes", "retirement_reason", "updated_at").
		Updates(u)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&EquipmentUnit{}, "id = ?", id).Error
}

func (r *repository) CreateAgreement(ctx context.Context, a *AssignmentAgreement) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) FindAgreementsByEquipment(ctx context.Context, equipmentID string) ([]AssignmentAgreement, error) {
	var rows []AssignmentAgreement
	err := r.conn(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteAgreementsByEquipment(ctx context.Context, equipmentID string) error {
	return r.conn(ctx).
		Where("equipment_id = ?", equipmentID).
		Delete(&AssignmentAgreement{}).Error
}

func (r *repository) CreateConditionCheck(ctx context.Context, cc *ConditionCheck) error {
	return r.conn(ctx).Create(cc).Error
}

func (r *repository) FindConditionChecksByEquipment(ctx context.Context, equipmentID string) ([]ConditionCheck, error) {
	var rows []ConditionCheck
	err := r.conn(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteConditionChecksByEquipment(ctx context.Context, equipmentID string) error {
	return r.conn(ctx).
		Where("equipment_id = ?", equipmentID).
		Delete(&ConditionCheck{}).Error
}
