package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/providers"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
	"github.com/medroute/emergency-routing/pkg/geo"
)

// DispatchService orchestrates a routing decision: it assembles candidates
// from the registry, filters them by proximity and bed sufficiency, annotates
// them with per-request distance and travel time, and hands them to the
// optimizer with a traffic-density estimate.
type DispatchService struct {
	hospitals repositories.HospitalRepository
	traffic   providers.TrafficProvider
	optimizer *RouteOptimizerService
	radiusKm  float64
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(
	hospitals repositories.HospitalRepository,
	traffic providers.TrafficProvider,
	optimizer *RouteOptimizerService,
	radiusKm float64,
) *DispatchService {
	return &DispatchService{
		hospitals: hospitals,
		traffic:   traffic,
		optimizer: optimizer,
		radiusKm:  radiusKm,
	}
}

// Dispatch runs one end-to-end routing decision for an accident. It returns
// an unavailable error when no hospital within the radius can admit the
// requested patient count; the optimizer never sees an empty list.
func (s *DispatchService) Dispatch(ctx context.Context, accident *entities.Accident) (*entities.OptimizationResult, error) {
	if accident.PatientCount < 1 {
		return nil, apperrors.NewValidationError("patient count must be at least 1")
	}

	all, err := s.hospitals.List(ctx, repositories.HospitalFilter{})
	if err != nil {
		return nil, err
	}

	candidates := make([]*entities.Hospital, 0, len(all))
	for _, hospital := range all {
		distance := geo.Distance(
			accident.Coordinates.Latitude, accident.Coordinates.Longitude,
			hospital.Coordinates.Latitude, hospital.Coordinates.Longitude,
		)
		if distance > s.radiusKm {
			continue
		}
		if !HasAvailableBeds(hospital, accident.CareType, accident.PatientCount) {
			continue
		}

		// Copy before annotating so registry-owned records stay untouched
		candidate := *hospital
		candidate.DistanceKm = distance
		candidate.TravelTime = geo.EstimateTravelTime(distance)
		candidates = append(candidates, &candidate)
	}

	if len(candidates) == 0 {
		return nil, apperrors.NewUnavailableError("no hospitals available within dispatch radius")
	}

	density, err := s.traffic.EstimateDensity(ctx, accident.Coordinates, candidates)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to estimate traffic density", err)
	}

	result := s.optimizer.Optimize(candidates, accident, density)

	log.Info().
		Str("accident_id", accident.ID).
		Str("hospital_id", result.RecommendedHospital.ID).
		Int("candidates", len(candidates)).
		Int("traffic_density", density).
		Int("confidence", result.Confidence).
		Int("estimated_arrival", result.EstimatedArrival).
		Msg("dispatch recommendation computed")

	return result, nil
}

// NearbyHospitals lists hospitals within the dispatch radius of an origin,
// annotated with distance and travel time and ordered by suitability for the
// requested care type.
func (s *DispatchService) NearbyHospitals(ctx context.Context, origin entities.Coordinates, careType entities.CareType, requiredBeds int) ([]*entities.Hospital, error) {
	all, err := s.hospitals.List(ctx, repositories.HospitalFilter{})
	if err != nil {
		return nil, err
	}

	nearby := make([]*entities.Hospital, 0, len(all))
	for _, hospital := range all {
		distance := geo.Distance(
			origin.Latitude, origin.Longitude,
			hospital.Coordinates.Latitude, hospital.Coordinates.Longitude,
		)
		if distance > s.radiusKm {
			continue
		}
		candidate := *hospital
		candidate.DistanceKm = distance
		candidate.TravelTime = geo.EstimateTravelTime(distance)
		nearby = append(nearby, &candidate)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return SuitabilityScore(nearby[i], requiredBeds, careType, nearby[i].DistanceKm) >
			SuitabilityScore(nearby[j], requiredBeds, careType, nearby[j].DistanceKm)
	})

	return nearby, nil
}
