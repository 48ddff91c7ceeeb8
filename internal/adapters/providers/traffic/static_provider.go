package traffic

import (
	"context"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/providers"
)

// StaticProvider returns a fixed traffic density, for tests and deployments
// where operators pin the estimate.
type StaticProvider struct {
	density int
}

// NewStaticProvider creates a traffic provider with a fixed density (0-100)
func NewStaticProvider(density int) providers.TrafficProvider {
	if density < 0 {
		density = 0
	}
	if density > 100 {
		density = 100
	}
	return &StaticProvider{density: density}
}

// EstimateDensity returns the configured density
func (p *StaticProvider) EstimateDensity(ctx context.Context, origin entities.Coordinates, hospitals []*entities.Hospital) (int, error) {
	return p.density, nil
}
