package entities

import (
	"time"
)

// ReservationStatus represents the status of a bed reservation
type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// BedReservation represents a bed reserved for an incoming patient after a
// routing decision.
type BedReservation struct {
	ID               string            `json:"id" db:"id"`
	HospitalID       string            `json:"hospital_id" db:"hospital_id"`
	PatientName      string            `json:"patient_name" db:"patient_name"`
	PatientPhone     string            `json:"patient_phone" db:"patient_phone"`
	CareType         CareType          `json:"care_type" db:"care_type"`
	BedCount         int               `json:"bed_count" db:"bed_count"`
	EstimatedArrival int               `json:"estimated_arrival" db:"estimated_arrival"`
	Confidence       int               `json:"confidence" db:"confidence"`
	Status           ReservationStatus `json:"status" db:"status"`
	Notes            string            `json:"notes" db:"notes"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}
