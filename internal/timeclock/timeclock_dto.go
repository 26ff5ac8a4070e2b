package timeclock

// Actor adalah identitas pemanggil dari JWT context. PersonnelID kosong
// untuk akun yang tidak terhubung ke personel (mis. superuser sistem).
type Actor struct {
	UserID      string
	Name        string
	Role        string
	PersonnelID string
}

type PunchRequest struct {
	Type string `json:"type" binding:"required,oneof=clock_in clock_out break_start break_end"`
}

type AddEntryRequest struct {
	PersonnelID string `json:"personnel_id" binding:"required,uuid"`
	Timestamp   string `json:"timestamp" binding:"required"`
	Type        string `json:"type" binding:"required,oneof=clock_in clock_out break_start break_end"`
	Reason      string `json:"reason" binding:"required"`
}

type EditEntryRequest struct {
	Timestamp string `json:"timestamp" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=clock_in clock_out break_start break_end"`
	Reason    string `json:"reason" binding:"required"`
}

type ForceClockOutRequest struct {
	PersonnelID string `json:"personnel_id" binding:"required,uuid"`
	Reason      string `json:"reason" binding:"required"`
}

type SubmitCorrectionRequest struct {
	Date               string  `json:"date" binding:"required"`
	RequestType        string  `json:"request_type" binding:"required,oneof=add_entry amend_entry"`
	Reason             string  `json:"reason" binding:"required"`
	RequestedTimestamp *string `json:"requested_timestamp"`
	RequestedType      *string `json:"requested_type" binding:"omitempty,oneof=clock_in clock_out break_start break_end"`
	OriginalTimestamp  *string `json:"original_timestamp"`
}

type ReviewCorrectionRequest struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes"`
}

type TimeEntryResponse struct {
	ID            string  `json:"id"`
	PersonnelID   string  `json:"personnel_id"`
	PersonnelName string  `json:"personnel_name"`
	Timestamp     string  `json:"timestamp"`
	Type          string  `json:"type"`
	EditedByName  *string `json:"edited_by_name,omitempty"`
	EditReason    *string `json:"edit_reason,omitempty"`
}

type DailySummaryResponse struct {
	PersonnelID   string              `json:"personnel_id"`
	PersonnelName string              `json:"personnel_name"`
	WorkedMinutes int                 `json:"worked_minutes"`
	ClockedIn     bool                `json:"clocked_in"`
	OnBreak       bool                `json:"on_break"`
	Incomplete    bool                `json:"incomplete"`
	Entries       []TimeEntryResponse `json:"entries"`
}

type ActiveClockResponse struct {
	PersonnelID   string `json:"personnel_id"`
	PersonnelName string `json:"personnel_name"`
	ClockedInAt   string `json:"clocked_in_at"`
	OnBreak       bool   `json:"on_break"`
}

type CorrectionResponse struct {
	ID                 string  `json:"id"`
	PersonnelID        string  `json:"personnel_id"`
	PersonnelName      string  `json:"personnel_name"`
	Date               string  `json:"date"`
	RequestType        string  `json:"request_type"`
	Reason             string  `json:"reason"`
	RequestedTimestamp *string `json:"requested_timestamp,omitempty"`
	RequestedType      *string `json:"requested_type,omitempty"`
	OriginalTimestamp  *string `json:"original_timestamp,omitempty"`
	Status             string  `json:"status"`
	ReviewedByName     *string `json:"reviewed_by_name,omitempty"`
	ReviewNotes        *string `json:"review_notes,omitempty"`
	ReviewedAt         *string `json:"reviewed_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}
