package repositories

import (
	"context"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

// ReservationRepository defines the interface for bed reservation persistence
type ReservationRepository interface {
	// Create persists a new reservation
	Create(ctx context.Context, reservation *entities.BedReservation) error

	// GetByID retrieves a reservation by ID
	GetByID(ctx context.Context, id string) (*entities.BedReservation, error)

	// ListByHospital retrieves reservations for a hospital
	ListByHospital(ctx context.Context, hospitalID string) ([]*entities.BedReservation, error)

	// UpdateStatus updates the status of a reservation
	UpdateStatus(ctx context.Context, id string, status entities.ReservationStatus) error
}
