package services

import (
	"math"
	"sort"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

const (
	// Normalization ceiling for confidence: base 100 plus the four sub-score maxima
	maxTotalScore = 200.0

	// Critical treatment threshold in minutes
	goldenWindowMinutes = 10

	// Safety margin applied on top of the raw patient count when projecting
	// post-admission bed availability
	admissionSafetyMargin = 1.2
)

// RouteOptimizerService selects the best hospital for an accident from a
// pre-filtered candidate list. It is a pure function of its inputs: no
// state, no I/O, deterministic, safe for concurrent use.
type RouteOptimizerService struct {
	scorer *HospitalScorer
}

// NewRouteOptimizerService creates a new route optimizer
func NewRouteOptimizerService(scorer *HospitalScorer) *RouteOptimizerService {
	return &RouteOptimizerService{scorer: scorer}
}

// Rank scores every candidate and returns them sorted by descending score.
// The sort is stable: ties keep their input order.
func (s *RouteOptimizerService) Rank(hospitals []*entities.Hospital, trafficDensity int) []entities.ScoredHospital {
	multiplier := TrafficMultiplier(trafficDensity)

	scored := make([]entities.ScoredHospital, len(hospitals))
	for i, hospital := range hospitals {
		score, reasoning := s.scorer.Score(hospital, multiplier)
		scored[i] = entities.ScoredHospital{
			Hospital:  hospital,
			Score:     score,
			Reasoning: reasoning,
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// Optimize ranks the candidates and produces the routing recommendation.
// Callers must pre-filter candidates for proximity and bed sufficiency and
// handle the empty case upstream; on an empty list Optimize returns nil.
func (s *RouteOptimizerService) Optimize(hospitals []*entities.Hospital, accident *entities.Accident, trafficDensity int) *entities.OptimizationResult {
	scored := s.Rank(hospitals, trafficDensity)
	if len(scored) == 0 {
		return nil
	}

	recommended := scored[0]
	multiplier := TrafficMultiplier(trafficDensity)

	travelTime := float64(recommended.Hospital.TravelTime)
	if travelTime <= 0 {
		travelTime = defaultTravelTimeMinutes
	}
	estimatedArrival := int(math.Round(travelTime * multiplier))

	icuAvailable := 0
	if icu, ok := recommended.Hospital.Department(entities.BedCategoryICU); ok {
		icuAvailable = icu.Available
	}
	patientCount := accident.PatientCount
	estimatedBeds := icuAvailable - int(math.Ceil(float64(patientCount)*admissionSafetyMargin))
	if estimatedBeds < 0 {
		estimatedBeds = 0
	}

	confidence := int(math.Round(recommended.Score / maxTotalScore * 100))
	if confidence > 100 {
		confidence = 100
	}
	if confidence < 0 {
		confidence = 0
	}

	timeToGoldenWindow := goldenWindowMinutes - estimatedArrival
	if timeToGoldenWindow < 0 {
		timeToGoldenWindow = 0
	}

	return &entities.OptimizationResult{
		RecommendedHospital:      recommended.Hospital,
		Confidence:               confidence,
		Reasoning:                recommended.Reasoning,
		EstimatedArrival:         estimatedArrival,
		EstimatedBedAvailability: estimatedBeds,
		TimeToGoldenWindow:       timeToGoldenWindow,
	}
}
