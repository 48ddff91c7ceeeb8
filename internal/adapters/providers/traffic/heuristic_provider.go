package traffic

import (
	"context"
	"math"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/providers"
	"github.com/medroute/emergency-routing/pkg/geo"
)

// Candidates without a distance annotation count as this many kilometers
const assumedDistanceKm = 5.0

// HeuristicProvider derives traffic density from the average distance of the
// candidate hospitals: farther candidates imply a longer, more congested run.
type HeuristicProvider struct{}

// NewHeuristicProvider creates a new heuristic traffic provider
func NewHeuristicProvider() providers.TrafficProvider {
	return &HeuristicProvider{}
}

// EstimateDensity returns min(100, round(avgDistanceKm/10*100))
func (p *HeuristicProvider) EstimateDensity(ctx context.Context, origin entities.Coordinates, hospitals []*entities.Hospital) (int, error) {
	if len(hospitals) == 0 {
		return 0, nil
	}

	sum := 0.0
	for _, hospital := range hospitals {
		distance := hospital.DistanceKm
		if distance <= 0 {
			distance = geo.Distance(
				origin.Latitude, origin.Longitude,
				hospital.Coordinates.Latitude, hospital.Coordinates.Longitude,
			)
		}
		if distance <= 0 {
			distance = assumedDistanceKm
		}
		sum += distance
	}
	avg := sum / float64(len(hospitals))

	density := int(math.Round(avg / 10 * 100))
	if density > 100 {
		density = 100
	}
	return density, nil
}
