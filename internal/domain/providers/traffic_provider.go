package providers

import (
	"context"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

// TrafficProvider estimates current traffic density as a percentage (0-100)
// for a dispatch from origin to the given candidate hospitals. Real traffic
// data integration is out of scope; implementations are heuristic or fixed.
type TrafficProvider interface {
	EstimateDensity(ctx context.Context, origin entities.Coordinates, hospitals []*entities.Hospital) (int, error)
}
