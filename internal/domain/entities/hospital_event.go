package entities

import (
	"time"
)

// HospitalEventType represents the type of a hospital registry event
type HospitalEventType string

const (
	HospitalEventRegistered  HospitalEventType = "hospital.registered"
	HospitalEventUpdated     HospitalEventType = "hospital.updated"
	HospitalEventBedsUpdated HospitalEventType = "hospital.beds_updated"
	HospitalEventDeleted     HospitalEventType = "hospital.deleted"
)

// HospitalEvent is published on the event bus whenever the hospital registry
// changes, so downstream consumers (dashboards, alerting) can react.
type HospitalEvent struct {
	ID         string            `json:"id"`
	Type       HospitalEventType `json:"type"`
	HospitalID string            `json:"hospital_id"`
	Category   BedCategory       `json:"category,omitempty"`
	Available  int               `json:"available,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
}
