package equipment

// Actor adalah identitas pengguna yang melakukan operasi, diambil dari
// JWT context oleh handler. Nama ikut dibawa untuk denormalisasi audit.
type Actor struct {
	ID   string
	Name string
	Role string
}

type CreateEquipmentRequest struct {
	Type         string  `json:"type" binding:"required,oneof=scanner picker vehicle computer"`
	Number       string  `json:"number" binding:"required"`
	SerialNumber *string `json:"serial_number"`
	PIN          *string `json:"pin"`
	Location     string  `json:"location"`
}

type AssignEquipmentRequest struct {
	PersonnelID   string `json:"personnel_id" binding:"required,uuid"`
	SignatureData string `json:"signature_data" binding:"required"`
}

type ReturnEquipmentRequest struct {
	Checklist             Checklist `json:"checklist"`
	OverallCondition      string    `json:"overall_condition" binding:"required,oneof=excellent good fair poor damaged"`
	DamageNotes           *string   `json:"damage_notes"`
	RepairRequired        bool      `json:"repair_required"`
	ReadyForReassignment  bool      `json:"ready_for_reassignment"`
	DeductionRequired     bool      `json:"deduction_required"`
	DeductionAmount       *float64  `json:"deduction_amount"`
}

type ReassignEquipmentRequest struct {
	Checklist            Checklist `json:"checklist"`
	OverallCondition     string    `json:"overall_condition" binding:"required,oneof=excellent good fair poor damaged"`
	DamageNotes          *string   `json:"damage_notes"`
	RepairRequired       bool      `json:"repair_required"`
	DeductionRequired    bool      `json:"deduction_required"`
	DeductionAmount      *float64  `json:"deduction_amount"`
	SignOffSignature     string    `json:"sign_off_signature" binding:"required"`
	NewPersonnelID       string    `json:"new_personnel_id" binding:"required,uuid"`
	NewPersonnelSignature string   `json:"new_personnel_signature" binding:"required"`
}

type RetireEquipmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

type EquipmentResponse struct {
	ID               string  `json:"id"`
	Type             string  `json:"type"`
	TypeLabel        string  `json:"type_label"`
	Number           string  `json:"number"`
	SerialNumber     *string `json:"serial_number,omitempty"`
	Status           string  `json:"status"`
	Location         string  `json:"location,omitempty"`
	AssignedToID     *string `json:"assigned_to_id,omitempty"`
	AssignedToName   *string `json:"assigned_to_name,omitempty"`
	ConditionNotes   string  `json:"condition_notes,omitempty"`
	RetirementReason *string `json:"retirement_reason,omitempty"`
}

type AgreementResponse struct {
	ID             string  `json:"id"`
	EquipmentID    string  `json:"equipment_id"`
	PersonnelID    string  `json:"personnel_id"`
	PersonnelName  string  `json:"personnel_name"`
	EquipmentValue float64 `json:"equipment_value"`
	AgreementText  string  `json:"agreement_text"`
	IssuedByName   string  `json:"issued_by_name"`
	CreatedAt      string  `json:"created_at"`
}

type HistoryRecordResponse struct {
	ID                   string  `json:"id"`
	Action               string  `json:"action"`
	PreviousAssigneeName *string `json:"previous_assignee_name,omitempty"`
	NewAssigneeName      *string `json:"new_assignee_name,omitempty"`
	PreviousStatus       *string `json:"previous_status,omitempty"`
	NewStatus            *string `json:"new_status,omitempty"`
	Notes                string  `json:"notes,omitempty"`
	PerformedByName      string  `json:"performed_by_name"`
	CreatedAt            string  `json:"created_at"`
}
