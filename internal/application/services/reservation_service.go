package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

// ReservationService books beds at a recommended hospital ahead of patient
// arrival. Booking decrements the department's availability; cancelling
// restores it.
type ReservationService struct {
	reservations repositories.ReservationRepository
	hospitals    repositories.HospitalRepository
	beds         *BedManagementService
}

// NewReservationService creates a new reservation service
func NewReservationService(
	reservations repositories.ReservationRepository,
	hospitals repositories.HospitalRepository,
	beds *BedManagementService,
) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		hospitals:    hospitals,
		beds:         beds,
	}
}

// Reserve books beds for an incoming patient
func (s *ReservationService) Reserve(ctx context.Context, reservation *entities.BedReservation) error {
	if reservation.BedCount < 1 {
		return apperrors.NewValidationError("bed count must be at least 1")
	}
	if reservation.PatientName == "" {
		return apperrors.NewValidationError("patient name is required")
	}

	hospital, err := s.hospitals.GetByID(ctx, reservation.HospitalID)
	if err != nil {
		return err
	}

	if !HasAvailableBeds(hospital, reservation.CareType, reservation.BedCount) {
		return apperrors.NewConflictError(fmt.Sprintf(
			"hospital %s cannot admit %d %s patients", hospital.ID, reservation.BedCount, reservation.CareType,
		))
	}

	category := CareCategoryFor(reservation.CareType)
	if _, err := s.beds.AdjustAvailability(ctx, hospital.ID, category, -reservation.BedCount); err != nil {
		return err
	}

	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	reservation.Status = entities.ReservationStatusConfirmed
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = reservation.CreatedAt

	if err := s.reservations.Create(ctx, reservation); err != nil {
		// Roll back the bed hold so the registry is not left short
		if _, restoreErr := s.beds.AdjustAvailability(ctx, hospital.ID, category, reservation.BedCount); restoreErr != nil {
			return apperrors.NewInternalError("failed to persist reservation and restore beds", restoreErr)
		}
		return err
	}

	return nil
}

// GetByID retrieves a reservation
func (s *ReservationService) GetByID(ctx context.Context, id string) (*entities.BedReservation, error) {
	return s.reservations.GetByID(ctx, id)
}

// Cancel cancels a reservation and releases its beds
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	reservation, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation.Status == entities.ReservationStatusCancelled {
		return apperrors.NewConflictError(fmt.Sprintf("reservation %s is already cancelled", id))
	}

	category := CareCategoryFor(reservation.CareType)
	if _, err := s.beds.AdjustAvailability(ctx, reservation.HospitalID, category, reservation.BedCount); err != nil {
		return err
	}

	return s.reservations.UpdateStatus(ctx, id, entities.ReservationStatusCancelled)
}
