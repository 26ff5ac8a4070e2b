package equipment

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeScanner  = "scanner"
	TypePicker   = "picker"
	TypeVehicle  = "vehicle"
	TypeComputer = "computer"
)

// Handheld (scanner/picker) status set.
const (
	StatusAvailable   = "available"
	StatusAssigned    = "assigned"
	StatusMaintenance = "maintenance"
	StatusLost        = "lost"
	StatusRetired     = "retired"
)

// Vehicle/computer memakai status set paralel tapi berbeda.
const (
	StatusActive       = "active"
	StatusOutOfService = "out_of_service"
	StatusInRepair     = "in_repair"
)

const (
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
	ConditionDamaged   = "damaged"
)

type EquipmentUnit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type         string    `gorm:"type:varchar(20);not null;index:idx_equipment_type"`
	Number       string    `gorm:"type:varchar(40);uniqueIndex:uq_equipment_number;not null"`
	SerialNumber *string   `gorm:"type:varchar(80)"`
	PIN          *string   `gorm:"column:pin;type:varchar(20)"`

	Status   string `gorm:"type:varchar(30);not null;index:idx_equipment_status"`
	Location string `gorm:"type:varchar(120)"`

	AssignedToID   *uuid.UUID `gorm:"type:uuid;index"`
	AssignedToName *string    `gorm:"type:varchar(120)"`

	ConditionNotes   string  `gorm:"type:text"`
	RetirementReason *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EquipmentUnit) TableName() string {
	return "equipment_units"
}

// AssignmentAgreement bersifat immutable: satu record per assignment event,
// termasuk setiap leg reassignment.
type AssignmentAgreement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EquipmentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_agreements_equipment"`
	PersonnelID   uuid.UUID `gorm:"type:uuid;not null"`
	PersonnelName string    `gorm:"type:varchar(120);not null"`

	EquipmentValue float64 `gorm:"type:numeric(10,2);not null"`
	SignatureData  string  `gorm:"type:text;not null"`
	AgreementText  string  `gorm:"type:text;not null"`

	IssuedByID   uuid.UUID `gorm:"type:uuid;not null"`
	IssuedByName string    `gorm:"type:varchar(120);not null"`

	CreatedAt time.Time
}

func (AssignmentAgreement) TableName() string {
	return "assignment_agreements"
}

// Checklist mencatat fakta mekanis per item. Overall condition TIDAK
// diturunkan dari sini; itu penilaian manusia yang diset terpisah.
type Checklist struct {
	PhysicalCondition bool `gorm:"not null" json:"physical_condition"`
	Screen            bool `gorm:"not null" json:"screen"`
	Buttons           bool `gorm:"not null" json:"buttons"`
	Battery           bool `gorm:"not null" json:"battery"`
	ChargingPort      bool `gorm:"not null" json:"charging_port"`
	ScanFunction      bool `gorm:"not null" json:"scan_function"`
	Cleanliness       bool `gorm:"not null" json:"cleanliness"`
}

type ConditionCheck struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EquipmentID uuid.UUID `gorm:"type:uuid;not null;index:idx_condition_checks_equipment"`

	Checklist Checklist `gorm:"embedded;embeddedPrefix:check_"`

	DamageNotes       *string `gorm:"type:text"`
	OverallCondition  string  `gorm:"type:varchar(20);not null"`
	RepairRequired    bool    `gorm:"not null"`
	DeductionRequired bool    `gorm:"not null"`
	DeductionAmount   float64 `gorm:"type:numeric(10,2);not null;default:0"`

	// SignOffSignature terisi hanya untuk check fase reassignment
	// (tanda tangan manager yang menyetujui kondisi unit).
	SignOffSignature *string `gorm:"type:text"`

	CheckedByID   uuid.UUID `gorm:"type:uuid;not null"`
	CheckedByName string    `gorm:"type:varchar(120);not null"`

	CreatedAt time.Time
}

func (ConditionCheck) TableName() string {
	return "condition_checks"
}

// Lookup per status/type sengaja berupa switch exhaustive, bukan map,
// supaya penambahan status baru ketahuan saat compile.

func ValidType(t string) bool {
	switch t {
	case TypeScanner, TypePicker, TypeVehicle, TypeComputer:
		return true
	default:
		return false
	}
}

func TypeLabel(t string) string {
	switch t {
	case TypeScanner:
		return "Scanner"
	case TypePicker:
		return "Picker"
	case TypeVehicle:
		return "Vehicle"
	case TypeComputer:
		return "Computer"
	default:
		return "Unknown"
	}
}

// idleStatus adalah status "siap dipinjam" per tipe: handheld memakai
// available, vehicle/computer memakai active.
func idleStatus(equipmentType string) string {
	switch equipmentType {
	case TypeScanner, TypePicker:
		return StatusAvailable
	case TypeVehicle, TypeComputer:
		return StatusActive
	default:
		return StatusAvailable
	}
}

// repairStatus adalah status unit yang butuh perbaikan per tipe.
func repairStatus(equipmentType string) string {
	switch equipmentType {
	case TypeScanner, TypePicker:
		return StatusMaintenance
	case TypeVehicle, TypeComputer:
		return StatusInRepair
	default:
		return StatusMaintenance
	}
}

func validStatusForType(equipmentType, status string) bool {
	switch equipmentType {
	case TypeScanner, TypePicker:
		switch status {
		case StatusAvailable, StatusAssigned, StatusMaintenance, StatusLost, StatusRetired:
			return true
		}
	case TypeVehicle, TypeComputer:
		switch status {
		case StatusActive, StatusAssigned, StatusMaintenance, StatusOutOfService, StatusInRepair, StatusRetired:
			return true
		}
	}
	return false
}

func validOverallCondition(c string) bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged:
		return true
	default:
		return false
	}
}
