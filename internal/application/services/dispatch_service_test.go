package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

type fakeHospitalRepo struct {
	hospitals []*entities.Hospital
	updated   []*entities.Hospital
	listErr   error
}

func (r *fakeHospitalRepo) Create(ctx context.Context, h *entities.Hospital) error { return nil }

func (r *fakeHospitalRepo) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	for _, h := range r.hospitals {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, apperrors.NewNotFoundError("hospital not found")
}

func (r *fakeHospitalRepo) Update(ctx context.Context, h *entities.Hospital) error {
	r.updated = append(r.updated, h)
	return nil
}

func (r *fakeHospitalRepo) Upsert(ctx context.Context, h *entities.Hospital) error { return nil }

func (r *fakeHospitalRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeHospitalRepo) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.hospitals, nil
}

type fixedTrafficProvider struct {
	density int
	err     error
}

func (p *fixedTrafficProvider) EstimateDensity(ctx context.Context, origin entities.Coordinates, hospitals []*entities.Hospital) (int, error) {
	return p.density, p.err
}

// Ikeja area; ~11 km from Lagos Island
func dispatchHospital(id string, lat, lng float64, icuAvailable int) *entities.Hospital {
	return &entities.Hospital{
		ID:          id,
		Name:        id,
		Coordinates: entities.Coordinates{Latitude: lat, Longitude: lng},
		Beds: map[entities.BedCategory]entities.BedDepartment{
			entities.BedCategoryICU: entities.NewBedDepartment("ICU", 20, icuAvailable),
		},
		ERLoad:       50,
		OxygenSupply: 80,
		Status:       entities.HospitalStatusStable,
	}
}

func TestDispatch_FiltersByRadiusAndBeds(t *testing.T) {
	nearWithBeds := dispatchHospital("near", 6.60, 3.35, 10)
	nearNoBeds := dispatchHospital("full", 6.58, 3.36, 0)
	// ~1 degree of latitude away, well outside a 50 km radius
	farAway := dispatchHospital("far", 7.60, 3.38, 10)

	repo := &fakeHospitalRepo{hospitals: []*entities.Hospital{farAway, nearNoBeds, nearWithBeds}}
	svc := NewDispatchService(repo, &fixedTrafficProvider{density: 40}, optimizerUnderTest(), 50)

	result, err := svc.Dispatch(context.Background(), criticalAccident(2))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "near", result.RecommendedHospital.ID)
}

func TestDispatch_NoCandidatesIsUnavailable(t *testing.T) {
	farAway := dispatchHospital("far", 9.0, 7.5, 10)
	repo := &fakeHospitalRepo{hospitals: []*entities.Hospital{farAway}}
	svc := NewDispatchService(repo, &fixedTrafficProvider{density: 40}, optimizerUnderTest(), 50)

	result, err := svc.Dispatch(context.Background(), criticalAccident(1))
	assert.Nil(t, result)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeUnavailable, appErr.Type)
}

func TestDispatch_RejectsNonPositivePatientCount(t *testing.T) {
	svc := NewDispatchService(&fakeHospitalRepo{}, &fixedTrafficProvider{}, optimizerUnderTest(), 50)

	_, err := svc.Dispatch(context.Background(), criticalAccident(0))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestDispatch_DoesNotMutateRegistryRecords(t *testing.T) {
	h := dispatchHospital("near", 6.60, 3.35, 10)
	repo := &fakeHospitalRepo{hospitals: []*entities.Hospital{h}}
	svc := NewDispatchService(repo, &fixedTrafficProvider{density: 40}, optimizerUnderTest(), 50)

	result, err := svc.Dispatch(context.Background(), criticalAccident(1))
	require.NoError(t, err)

	assert.Zero(t, h.DistanceKm)
	assert.Zero(t, h.TravelTime)
	assert.NotZero(t, result.RecommendedHospital.TravelTime)
}

func TestDispatch_AnnotatesTravelTimeFromDistance(t *testing.T) {
	h := dispatchHospital("near", 6.60, 3.35, 10)
	repo := &fakeHospitalRepo{hospitals: []*entities.Hospital{h}}
	svc := NewDispatchService(repo, &fixedTrafficProvider{density: 0}, optimizerUnderTest(), 50)

	result, err := svc.Dispatch(context.Background(), criticalAccident(1))
	require.NoError(t, err)

	recommended := result.RecommendedHospital
	assert.Greater(t, recommended.DistanceKm, 0.0)
	// Arrival at 1.0x multiplier equals the annotated travel time
	assert.Equal(t, recommended.TravelTime, result.EstimatedArrival)
}

func TestNearbyHospitals_OrderedBySuitability(t *testing.T) {
	strong := dispatchHospital("strong", 6.53, 3.38, 15)
	weak := dispatchHospital("weak", 6.60, 3.35, 1)
	weak.ERLoad = 95
	weak.Status = entities.HospitalStatusCritical
	outside := dispatchHospital("outside", 9.0, 7.5, 20)

	repo := &fakeHospitalRepo{hospitals: []*entities.Hospital{weak, outside, strong}}
	svc := NewDispatchService(repo, &fixedTrafficProvider{density: 40}, optimizerUnderTest(), 50)

	origin := entities.Coordinates{Latitude: 6.5244, Longitude: 3.3792}
	nearby, err := svc.NearbyHospitals(context.Background(), origin, entities.CareTypeICU, 2)
	require.NoError(t, err)

	require.Len(t, nearby, 2)
	assert.Equal(t, "strong", nearby[0].ID)
	assert.Equal(t, "weak", nearby[1].ID)
	assert.Greater(t, nearby[0].DistanceKm, 0.0)
	assert.Greater(t, nearby[0].TravelTime, 0)
}
