package events

import "time"

const EquipmentLifecycleTopic = "ops.equipment.lifecycle.v1"

const (
	EquipmentAssigned = "equipment.assigned"
	EquipmentReturned = "equipment.returned"
	EquipmentRetired  = "equipment.retired"
)

type EquipmentLifecycleEvent struct {
	EventType     string    `json:"event_type"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentType string    `json:"equipment_type"`
	PersonnelID   string    `json:"personnel_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
