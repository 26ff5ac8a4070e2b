package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOnTime       = "on_time"
	StatusGracePeriod  = "grace_period"
	StatusLate         = "late"
	StatusNoCallNoShow = "no_call_no_show"

	// Hanya untuk tampilan live: terjadwal, belum clock in, belum lewat cutoff.
	StatusPending = "pending"
)

const (
	SeverityVerbalWarning  = "verbal_warning"
	SeverityWrittenWarning = "written_warning"
	SeverityFinalWarning   = "final_warning"
	SeveritySuspension     = "suspension"
)

const CategoryAttendance = "attendance"

// AttendanceIssue adalah evaluasi negatif yang dipersist supaya write-up
// punya id stabil untuk di-link. Satu baris per orang per tanggal.
type AttendanceIssue struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonnelID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_issue_person_date"`
	PersonnelName string    `gorm:"type:varchar(120);not null"`

	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_issue_person_date"`
	Kind        string    `gorm:"type:varchar(30);not null"`
	MinutesLate int       `gorm:"not null;default:0"`

	CreatedAt time.Time
}

func (AttendanceIssue) TableName() string {
	return "attendance_issues"
}

type WriteUp struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceIssueID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_writeups_issue"`

	PersonnelID   uuid.UUID `gorm:"type:uuid;not null;index:idx_writeups_personnel"`
	PersonnelName string    `gorm:"type:varchar(120);not null"`

	Severity string `gorm:"type:varchar(30);not null"`
	Category string `gorm:"type:varchar(30);not null"`

	IssuedByID   uuid.UUID `gorm:"type:uuid;not null"`
	IssuedByName string    `gorm:"type:varchar(120);not null"`

	CreatedAt time.Time
}

func (WriteUp) TableName() string {
	return "writeups"
}

// severityForCount memetakan jumlah write-up attendance dalam 6 bulan
// terakhir ke tingkat eskalasi berikutnya. Monoton naik.
func severityForCount(priorCount int64) string {
	switch priorCount {
	case 0:
		return SeverityVerbalWarning
	case 1:
		return SeverityWrittenWarning
	case 2:
		return SeverityFinalWarning
	default:
		return SeveritySuspension
	}
}
