package history

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionAssigned       = "assigned"
	ActionUnassigned     = "unassigned"
	ActionStatusChange   = "status_change"
	ActionConditionCheck = "condition_check"
)

// EquipmentHistoryRecord adalah audit trail append-only per unit equipment.
// Nama assignee sengaja didenormalisasi: history harus menampilkan nama
// sebagaimana saat kejadian, bukan hasil join yang ikut berubah saat rename.
type EquipmentHistoryRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_equipment_history_equipment"`

	Action               string  `gorm:"type:varchar(30);not null"`
	PreviousAssigneeName *string `gorm:"type:varchar(120)"`
	NewAssigneeName      *string `gorm:"type:varchar(120)"`
	PreviousStatus       *string `gorm:"type:varchar(30)"`
	NewStatus            *string `gorm:"type:varchar(30)"`
	Notes                string  `gorm:"type:text"`

	PerformedByID   uuid.UUID `gorm:"type:uuid;not null"`
	PerformedByName string    `gorm:"type:varchar(120);not null"`

	CreatedAt time.Time
}

func (EquipmentHistoryRecord) TableName() string {
	return "equipment_history"
}
