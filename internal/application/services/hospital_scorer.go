package services

import (
	"fmt"
	"math"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

// Scoring weights. The model starts every hospital at a 100-point base and
// accumulates four capped sub-scores, so the theoretical ceiling is 200.
// Confidence is normalized against that ceiling downstream.
const (
	scoreBase = 100.0

	maxTravelScore = 30.0
	maxICUScore    = 25.0
	maxERLoadScore = 25.0
	maxOxygenScore = 20.0

	travelPenaltyPerMinute = 1.5

	// Fallback when a candidate arrives without a travel-time annotation
	defaultTravelTimeMinutes = 15.0

	fastArrivalMinutes     = 10.0
	strongICUAvailableBeds = 5
	lowERLoadPercent       = 50
	highOxygenPercent      = 85
)

// HospitalScorer computes a suitability score and justification strings for
// one hospital given one traffic multiplier. Stateless and safe for
// concurrent use.
type HospitalScorer struct{}

// NewHospitalScorer creates a new hospital scorer
func NewHospitalScorer() *HospitalScorer {
	return &HospitalScorer{}
}

// TrafficMultiplier converts a traffic-density percentage (0-100) into a
// travel-time multiplier in [1.0, 2.0].
func TrafficMultiplier(trafficDensity int) float64 {
	if trafficDensity < 0 {
		trafficDensity = 0
	}
	if trafficDensity > 100 {
		trafficDensity = 100
	}
	return 1 + float64(trafficDensity)/100
}

// Score computes the weighted suitability score for a hospital. Missing bed
// data degrades the affected sub-score to 0 rather than rejecting the
// hospital; pre-filtering is the caller's concern.
func (s *HospitalScorer) Score(hospital *entities.Hospital, trafficMultiplier float64) (float64, []string) {
	score := scoreBase
	reasoning := []string{}

	// Travel time (max 30 points)
	travelTime := float64(hospital.TravelTime)
	if travelTime <= 0 {
		travelTime = defaultTravelTimeMinutes
	}
	adjustedTravelTime := travelTime * trafficMultiplier
	score += math.Max(0, maxTravelScore-adjustedTravelTime*travelPenaltyPerMinute)
	if adjustedTravelTime < fastArrivalMinutes {
		reasoning = append(reasoning, fmt.Sprintf("Fast arrival time: %d minutes", int(math.Round(adjustedTravelTime))))
	}

	// ICU bed availability (max 25 points); a zero-capacity department
	// contributes 0 instead of dividing by zero
	if icu, ok := hospital.Department(entities.BedCategoryICU); ok && icu.Total > 0 {
		score += float64(icu.Available) / float64(icu.Total) * maxICUScore
		if icu.Available > strongICUAvailableBeds {
			reasoning = append(reasoning, fmt.Sprintf("Strong ICU capacity: %d/%d beds available", icu.Available, icu.Total))
		}
	}

	// ER load (max 25 points, lower load scores higher)
	score += math.Max(0, maxERLoadScore-float64(hospital.ERLoad)/100*maxERLoadScore)
	if hospital.ERLoad < lowERLoadPercent {
		reasoning = append(reasoning, fmt.Sprintf("Low ER congestion: %d%% load", hospital.ERLoad))
	}

	// Oxygen supply (max 20 points)
	score += float64(hospital.OxygenSupply) / 100 * maxOxygenScore
	if hospital.OxygenSupply > highOxygenPercent {
		reasoning = append(reasoning, fmt.Sprintf("Adequate oxygen reserves: %d%%", hospital.OxygenSupply))
	}

	return score, reasoning
}
