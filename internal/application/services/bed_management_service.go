package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/providers"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

// HospitalEventsChannel is the event bus channel for registry changes
const HospitalEventsChannel = "hospital.events"

// BedManagementService mutates hospital bed state through the registry while
// preserving the available + occupied == total invariant, and publishes
// change events for downstream consumers.
type BedManagementService struct {
	hospitals repositories.HospitalRepository
	events    providers.EventBus
}

// NewBedManagementService creates a new bed management service. The event
// bus may be nil; mutations then go unannounced.
func NewBedManagementService(hospitals repositories.HospitalRepository, events providers.EventBus) *BedManagementService {
	return &BedManagementService{
		hospitals: hospitals,
		events:    events,
	}
}

// UpdateBeds sets the free bed count of one department. Occupied count and
// occupancy rate are re-derived, never set directly.
func (s *BedManagementService) UpdateBeds(ctx context.Context, hospitalID string, category entities.BedCategory, available int) (*entities.Hospital, error) {
	if !category.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown bed category %q", category))
	}
	if available < 0 {
		return nil, apperrors.NewValidationError("available bed count cannot be negative")
	}

	hospital, err := s.hospitals.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	department, ok := hospital.Department(category)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %s has no %s department", hospitalID, category))
	}
	if available > department.Total {
		return nil, apperrors.NewValidationError(fmt.Sprintf("available beds (%d) cannot exceed department total (%d)", available, department.Total))
	}

	department.SetAvailable(available)
	hospital.Beds[category] = department
	hospital.UpdatedAt = time.Now()

	if err := s.hospitals.Update(ctx, hospital); err != nil {
		return nil, err
	}

	s.publish(ctx, &entities.HospitalEvent{
		ID:         uuid.New().String(),
		Type:       entities.HospitalEventBedsUpdated,
		HospitalID: hospitalID,
		Category:   category,
		Available:  available,
		OccurredAt: time.Now(),
	})

	return hospital, nil
}

// AdjustAvailability shifts a department's free bed count by delta (negative
// to admit patients, positive to release beds). The result is validated
// against [0, total] rather than clamped, so over-admission is rejected.
func (s *BedManagementService) AdjustAvailability(ctx context.Context, hospitalID string, category entities.BedCategory, delta int) (*entities.Hospital, error) {
	hospital, err := s.hospitals.GetByID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	department, ok := hospital.Department(category)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("hospital %s has no %s department", hospitalID, category))
	}

	next := department.Available + delta
	if next < 0 {
		return nil, apperrors.NewConflictError(fmt.Sprintf("insufficient %s beds at hospital %s", category, hospitalID))
	}
	if next > department.Total {
		return nil, apperrors.NewValidationError(fmt.Sprintf("available beds (%d) cannot exceed department total (%d)", next, department.Total))
	}

	return s.UpdateBeds(ctx, hospitalID, category, next)
}

func (s *BedManagementService) publish(ctx context.Context, event *entities.HospitalEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, HospitalEventsChannel, event); err != nil {
		// Bed state is already persisted; a lost notification is tolerable
		log.Warn().Err(err).Str("hospital_id", event.HospitalID).Msg("failed to publish hospital event")
	}
}
