package services

import (
	"math"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

// careTypeToBedCategory maps external care-type labels to canonical bed
// categories. Labels are case-sensitive; anything not listed falls back to
// the general department.
var careTypeToBedCategory = map[entities.CareType]entities.BedCategory{
	entities.CareTypeICU:       entities.BedCategoryICU,
	entities.CareTypeTrauma:    entities.BedCategoryTrauma,
	entities.CareTypeER:        entities.BedCategoryGeneral,
	entities.CareTypeGeneral:   entities.BedCategoryGeneral,
	entities.CareTypePediatric: entities.BedCategoryPediatric,
}

// CareCategoryFor resolves a care-type label to its bed category.
// Unrecognized labels map to the general department.
func CareCategoryFor(careType entities.CareType) entities.BedCategory {
	if category, ok := careTypeToBedCategory[careType]; ok {
		return category
	}
	return entities.BedCategoryGeneral
}

// HasAvailableBeds reports whether the hospital can admit requiredCount
// patients of the given care type. It fails closed: a hospital without a
// usable bed map or the resolved department scores false, never panics.
func HasAvailableBeds(hospital *entities.Hospital, careType entities.CareType, requiredCount int) bool {
	department, ok := hospital.Department(CareCategoryFor(careType))
	if !ok {
		return false
	}
	return department.Available >= requiredCount
}

// AvailableBedsByType returns the free bed count for a care type, or 0 when
// the hospital record is malformed.
func AvailableBedsByType(hospital *entities.Hospital, careType entities.CareType) int {
	department, ok := hospital.Department(CareCategoryFor(careType))
	if !ok {
		return 0
	}
	return department.Available
}

// OccupancyLevel classifies a department occupancy rate
type OccupancyLevel string

const (
	OccupancyLow      OccupancyLevel = "low"
	OccupancyModerate OccupancyLevel = "moderate"
	OccupancyHigh     OccupancyLevel = "high"
	OccupancyCritical OccupancyLevel = "critical"
)

// OccupancyLevelFor returns the occupancy level for a rate percentage
func OccupancyLevelFor(occupancyRate int) OccupancyLevel {
	switch {
	case occupancyRate < 30:
		return OccupancyLow
	case occupancyRate < 60:
		return OccupancyModerate
	case occupancyRate < 85:
		return OccupancyHigh
	default:
		return OccupancyCritical
	}
}

// SuitabilityScore computes a coarse suitability score for listing nearby
// hospitals, rewarding spare beds and penalizing distance, ER load, and
// degraded status. Distinct from the dispatch scoring model, which also
// weighs oxygen supply and traffic.
func SuitabilityScore(hospital *entities.Hospital, requiredBeds int, careType entities.CareType, distanceKm float64) float64 {
	score := 100.0

	// Bed availability (40 points)
	availableBeds := AvailableBedsByType(hospital, careType)
	bedScore := 40.0
	if requiredBeds > 0 {
		bedScore = math.Min(40, float64(availableBeds)/float64(requiredBeds)*40)
	}
	score += bedScore

	// Distance penalty (up to -30 points)
	if distanceKm > 0 {
		score -= math.Min(30, distanceKm/10*30)
	}

	// ER load penalty (up to -20 points)
	score -= float64(hospital.ERLoad) / 100 * 20

	switch hospital.Status {
	case entities.HospitalStatusStable:
		score += 15
	case entities.HospitalStatusHighLoad:
		score -= 10
	case entities.HospitalStatusCritical:
		score -= 25
	}

	return math.Max(0, score)
}
