package personnel

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Personnel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number   string    `gorm:"type:varchar(20);uniqueIndex:uq_personnel_number;not null"`
	FullName string    `gorm:"type:varchar(120);not null"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex:uq_personnel_email;not null"`
	Phone    *string   `gorm:"type:varchar(30)"`
	Active   bool      `gorm:"not null;default:true"`

	// ScheduledStartMinutes adalah jadwal masuk harian dalam menit sejak 00:00.
	// NULL berarti orang ini tidak punya jadwal tetap (tidak dievaluasi attendance).
	ScheduledStartMinutes *int `gorm:"type:int"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_personnel_deleted_at"`
}

func (Personnel) TableName() string {
	return "personnel"
}
