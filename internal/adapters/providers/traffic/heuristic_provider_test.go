package traffic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

func annotated(distanceKm float64) *entities.Hospital {
	return &entities.Hospital{DistanceKm: distanceKm}
}

func TestHeuristic_AverageDistanceToDensity(t *testing.T) {
	p := NewHeuristicProvider()

	// avg 5 km of a 10 km scale is 50%
	density, err := p.EstimateDensity(context.Background(), entities.Coordinates{}, []*entities.Hospital{
		annotated(4), annotated(6),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, density)

	density, err = p.EstimateDensity(context.Background(), entities.Coordinates{}, []*entities.Hospital{
		annotated(2.5),
	})
	require.NoError(t, err)
	assert.Equal(t, 25, density)
}

func TestHeuristic_ClampsAtFullCongestion(t *testing.T) {
	p := NewHeuristicProvider()

	density, err := p.EstimateDensity(context.Background(), entities.Coordinates{}, []*entities.Hospital{
		annotated(45), annotated(35),
	})
	require.NoError(t, err)
	assert.Equal(t, 100, density)
}

func TestHeuristic_EmptyCandidates(t *testing.T) {
	p := NewHeuristicProvider()

	density, err := p.EstimateDensity(context.Background(), entities.Coordinates{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, density)
}

func TestHeuristic_ComputesMissingDistances(t *testing.T) {
	p := NewHeuristicProvider()

	origin := entities.Coordinates{Latitude: 6.5244, Longitude: 3.3792}
	unannotated := &entities.Hospital{
		Coordinates: entities.Coordinates{Latitude: 6.60, Longitude: 3.35},
	}

	density, err := p.EstimateDensity(context.Background(), origin, []*entities.Hospital{unannotated})
	require.NoError(t, err)
	assert.Greater(t, density, 0)
}

func TestHeuristic_AssumesDistanceWhenOriginUnknown(t *testing.T) {
	p := NewHeuristicProvider()

	// Same point as the origin resolves to the assumed 5 km fallback
	density, err := p.EstimateDensity(context.Background(), entities.Coordinates{}, []*entities.Hospital{
		{},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, density)
}

func TestStaticProvider_FixedDensity(t *testing.T) {
	p := NewStaticProvider(35)
	density, err := p.EstimateDensity(context.Background(), entities.Coordinates{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 35, density)

	// Out-of-range construction clamps
	p = NewStaticProvider(180)
	density, _ = p.EstimateDensity(context.Background(), entities.Coordinates{}, nil)
	assert.Equal(t, 100, density)

	p = NewStaticProvider(-5)
	density, _ = p.EstimateDensity(context.Background(), entities.Coordinates{}, nil)
	assert.Equal(t, 0, density)
}
