package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

func optimizerUnderTest() *RouteOptimizerService {
	return NewRouteOptimizerService(NewHospitalScorer())
}

func criticalAccident(patients int) *entities.Accident {
	return &entities.Accident{
		ID:           "acc-1",
		Severity:     entities.SeverityCritical,
		CareType:     entities.CareTypeICU,
		PatientCount: patients,
		Coordinates:  entities.Coordinates{Latitude: 6.5244, Longitude: 3.3792},
	}
}

func TestOptimize_SingleCandidate(t *testing.T) {
	svc := optimizerUnderTest()
	h := scoringHospital()

	result := svc.Optimize([]*entities.Hospital{h}, criticalAccident(3), 50)
	require.NotNil(t, result)

	assert.Equal(t, h.ID, result.RecommendedHospital.ID)
	// score 130 / 200 ceiling
	assert.Equal(t, 65, result.Confidence)
	// 15 minutes at a 1.5x multiplier, rounded
	assert.Equal(t, 23, result.EstimatedArrival)
	// 12 ICU beds minus ceil(3 * 1.2) = 4
	assert.Equal(t, 8, result.EstimatedBedAvailability)
	// arrival is past the 10 minute window
	assert.Equal(t, 0, result.TimeToGoldenWindow)
}

func TestOptimize_PrefersStrongerCandidate(t *testing.T) {
	svc := optimizerUnderTest()

	strong := scoringHospital()
	strong.ID = "strong"
	strong.TravelTime = 5
	strong.ERLoad = 20
	strong.OxygenSupply = 95
	strong.Beds[entities.BedCategoryICU] = entities.NewBedDepartment("ICU", 50, 40)

	weak := scoringHospital()
	weak.ID = "weak"
	weak.TravelTime = 40
	weak.ERLoad = 95
	weak.OxygenSupply = 30
	weak.Beds = map[entities.BedCategory]entities.BedDepartment{
		entities.BedCategoryICU: entities.NewBedDepartment("ICU", 50, 2),
	}

	result := svc.Optimize([]*entities.Hospital{weak, strong}, criticalAccident(1), 20)
	require.NotNil(t, result)
	assert.Equal(t, "strong", result.RecommendedHospital.ID)
}

func TestOptimize_GoldenWindowRemainder(t *testing.T) {
	svc := optimizerUnderTest()

	h := scoringHospital()
	h.TravelTime = 4

	result := svc.Optimize([]*entities.Hospital{h}, criticalAccident(1), 0)
	require.NotNil(t, result)
	assert.Equal(t, 4, result.EstimatedArrival)
	assert.Equal(t, 6, result.TimeToGoldenWindow)
}

func TestOptimize_BedProjectionFloorsAtZero(t *testing.T) {
	svc := optimizerUnderTest()

	h := scoringHospital()
	h.Beds[entities.BedCategoryICU] = entities.NewBedDepartment("ICU", 10, 2)

	result := svc.Optimize([]*entities.Hospital{h}, criticalAccident(5), 0)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.EstimatedBedAvailability)
}

func TestOptimize_EmptyCandidatesReturnsNil(t *testing.T) {
	svc := optimizerUnderTest()
	assert.Nil(t, svc.Optimize(nil, criticalAccident(1), 50))
	assert.Nil(t, svc.Optimize([]*entities.Hospital{}, criticalAccident(1), 50))
}

func TestOptimize_Deterministic(t *testing.T) {
	svc := optimizerUnderTest()

	candidates := []*entities.Hospital{scoringHospital(), scoringHospital(), scoringHospital()}
	candidates[1].ID = "h2"
	candidates[1].ERLoad = 40
	candidates[2].ID = "h3"
	candidates[2].TravelTime = 8

	first := svc.Optimize(candidates, criticalAccident(2), 35)
	for i := 0; i < 10; i++ {
		again := svc.Optimize(candidates, criticalAccident(2), 35)
		assert.Equal(t, first, again)
	}
}

func TestRank_SortsDescending(t *testing.T) {
	svc := optimizerUnderTest()

	low := scoringHospital()
	low.ID = "low"
	low.ERLoad = 100
	low.OxygenSupply = 10

	high := scoringHospital()
	high.ID = "high"
	high.ERLoad = 10
	high.OxygenSupply = 100

	ranked := svc.Rank([]*entities.Hospital{low, high}, 0)
	require.Len(t, ranked, 2)
	assert.Equal(t, "high", ranked[0].Hospital.ID)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
}

func TestRank_StableOnTies(t *testing.T) {
	svc := optimizerUnderTest()

	a := scoringHospital()
	a.ID = "a"
	b := scoringHospital()
	b.ID = "b"

	ranked := svc.Rank([]*entities.Hospital{a, b}, 50)
	require.Len(t, ranked, 2)
	// Identical inputs tie; input order is preserved
	assert.Equal(t, "a", ranked[0].Hospital.ID)
	assert.Equal(t, "b", ranked[1].Hospital.ID)
}
