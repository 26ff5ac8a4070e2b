package timeclock

import (
	"time"

	"github.com/google/uuid"
)

const (
	EntryClockIn    = "clock_in"
	EntryClockOut   = "clock_out"
	EntryBreakStart = "break_start"
	EntryBreakEnd   = "break_end"
)

const (
	CorrectionAddEntry   = "add_entry"
	CorrectionAmendEntry = "amend_entry"
)

const (
	CorrectionPending  = "pending"
	CorrectionApproved = "approved"
	CorrectionDenied   = "denied"
)

// TimeEntry adalah event punch tunggal, bukan interval. Durasi kerja
// dihitung dari urutan event per orang per hari.
type TimeEntry struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonnelID   uuid.UUID `gorm:"type:uuid;not null;index:idx_time_entries_personnel"`
	PersonnelName string    `gorm:"type:varchar(120);not null"`

	Timestamp time.Time `gorm:"not null;index:idx_time_entries_timestamp"`
	Type      string    `gorm:"type:varchar(20);not null"`

	// Terisi hanya untuk entry yang dibuat atau diubah manual oleh admin
	// (missed entry, edit, force clock-out, koreksi yang disetujui).
	EditedByID   *uuid.UUID `gorm:"type:uuid"`
	EditedByName *string    `gorm:"type:varchar(120)"`
	EditReason   *string    `gorm:"type:text"`

	CreatedAt time.Time
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

type CorrectionRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonnelID   uuid.UUID `gorm:"type:uuid;not null;index:idx_corrections_personnel"`
	PersonnelName string    `gorm:"type:varchar(120);not null"`

	Date        time.Time `gorm:"type:date;not null"`
	RequestType string    `gorm:"type:varchar(20);not null"`
	Reason      string    `gorm:"type:text;not null"`

	// add_entry: RequestedTimestamp + RequestedType menjadi entry baru.
	// amend_entry: OriginalTimestamp mengidentifikasi entry yang diubah.
	RequestedTimestamp *time.Time `gorm:""`
	RequestedType      *string    `gorm:"type:varchar(20)"`
	OriginalTimestamp  *time.Time `gorm:""`

	Status         string     `gorm:"type:varchar(20);not null;default:pending;index:idx_corrections_status"`
	ReviewedByID   *uuid.UUID `gorm:"type:uuid"`
	ReviewedByName *string    `gorm:"type:varchar(120)"`
	ReviewNotes    *string    `gorm:"type:text"`
	ReviewedAt     *time.Time `gorm:""`

	CreatedAt time.Time
}

func (CorrectionRequest) TableName() string {
	return "time_correction_requests"
}

func validEntryType(t string) bool {
	switch t {
	case EntryClockIn, EntryClockOut, EntryBreakStart, EntryBreakEnd:
		return true
	default:
		return false
	}
}

// punchState merekonstruksi keadaan seseorang dari urutan event hari itu.
// Entries harus sudah terurut naik berdasarkan timestamp.
func punchState(entries []TimeEntry) (clockedIn, onBreak bool) {
	for _, e := range entries {
		switch e.Type {
		case EntryClockIn:
			clockedIn, onBreak = true, false
		case EntryClockOut:
			clockedIn, onBreak = false, false
		case EntryBreakStart:
			onBreak = true
		case EntryBreakEnd:
			onBreak = false
		}
	}
	return clockedIn, onBreak
}

// workedMinutes menjumlahkan interval clocked-in di luar break. Interval
// antara dua event dihitung jika keadaan sebelum event kedua adalah
// clocked-in dan tidak sedang break.
func workedMinutes(entries []TimeEntry) int {
	var total time.Duration
	var clockedIn, onBreak bool
	var last time.Time

	for _, e := range entries {
		if clockedIn && !onBreak {
			total += e.Timestamp.Sub(last)
		}
		switch e.Type {
		case EntryClockIn:
			clockedIn, onBreak = true, false
		case EntryClockOut:
			clockedIn, onBreak = false, false
		case EntryBreakStart:
			onBreak = true
		case EntryBreakEnd:
			onBreak = false
		}
		last = e.Timestamp
	}

	return int(total / time.Minute)
}
