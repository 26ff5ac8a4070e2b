package attendance

// Actor adalah identitas pemanggil dari JWT context.
type Actor struct {
	UserID string
	Name   string
	Role   string
}

type LiveStatusResponse struct {
	PersonnelID    string  `json:"personnel_id"`
	PersonnelName  string  `json:"personnel_name"`
	ScheduledStart string  `json:"scheduled_start"`
	Status         string  `json:"status"`
	MinutesLate    int     `json:"minutes_late,omitempty"`
	ClockedInAt    *string `json:"clocked_in_at,omitempty"`
}

type IssueResponse struct {
	ID              string `json:"id"`
	PersonnelID     string `json:"personnel_id"`
	PersonnelName   string `json:"personnel_name"`
	Date            string `json:"date"`
	Kind            string `json:"kind"`
	MinutesLate     int    `json:"minutes_late"`
	HasLinkedWriteUp bool  `json:"has_linked_writeup"`
}

type CreateWriteUpRequest struct {
	AttendanceIssueID string `json:"attendance_issue_id" binding:"required,uuid"`
}

type WriteUpResponse struct {
	ID                string `json:"id"`
	AttendanceIssueID string `json:"attendance_issue_id"`
	PersonnelID       string `json:"personnel_id"`
	PersonnelName     string `json:"personnel_name"`
	Severity          string `json:"severity"`
	Category          string `json:"category"`
	IssuedByName      string `json:"issued_by_name"`
	CreatedAt         string `json:"created_at"`
}
