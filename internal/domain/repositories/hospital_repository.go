package repositories

import (
	"context"

	"github.com/medroute/emergency-routing/internal/domain/entities"
)

// HospitalRepository defines the interface for hospital registry operations
type HospitalRepository interface {
	// Create registers a new hospital
	Create(ctx context.Context, hospital *entities.Hospital) error

	// GetByID retrieves a hospital by ID
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// Update updates a hospital and its bed departments
	Update(ctx context.Context, hospital *entities.Hospital) error

	// Upsert creates the hospital if it does not exist, updates it otherwise
	Upsert(ctx context.Context, hospital *entities.Hospital) error

	// Delete removes a hospital from the registry
	Delete(ctx context.Context, id string) error

	// List retrieves hospitals with filters
	List(ctx context.Context, filter HospitalFilter) ([]*entities.Hospital, error)
}

// HospitalFilter defines filters for listing hospitals
type HospitalFilter struct {
	Status entities.HospitalStatus
	Limit  int
	Offset int
}
