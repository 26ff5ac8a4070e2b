package events

import "time"

const WriteUpCreatedTopic = "ops.attendance.writeup.v1"

type WriteUpCreatedEvent struct {
	EventType   string    `json:"event_type"`
	WriteUpID   string    `json:"writeup_id"`
	PersonnelID string    `json:"personnel_id"`
	Severity    string    `json:"severity"`
	OccurredAt  time.Time `json:"occurred_at"`
}
