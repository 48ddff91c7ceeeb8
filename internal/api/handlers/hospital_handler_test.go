package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medroute/emergency-routing/internal/application/services"
	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

type memoryHospitalRepo struct {
	hospitals map[string]*entities.Hospital
}

func newMemoryHospitalRepo(hospitals ...*entities.Hospital) *memoryHospitalRepo {
	repo := &memoryHospitalRepo{hospitals: make(map[string]*entities.Hospital)}
	for _, h := range hospitals {
		repo.hospitals[h.ID] = h
	}
	return repo
}

func (r *memoryHospitalRepo) Create(ctx context.Context, h *entities.Hospital) error {
	if _, exists := r.hospitals[h.ID]; exists {
		return apperrors.NewConflictError("hospital already exists")
	}
	r.hospitals[h.ID] = h
	return nil
}

func (r *memoryHospitalRepo) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	h, ok := r.hospitals[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("hospital not found")
	}
	return h, nil
}

func (r *memoryHospitalRepo) Update(ctx context.Context, h *entities.Hospital) error {
	if _, ok := r.hospitals[h.ID]; !ok {
		return apperrors.NewNotFoundError("hospital not found")
	}
	r.hospitals[h.ID] = h
	return nil
}

func (r *memoryHospitalRepo) Upsert(ctx context.Context, h *entities.Hospital) error {
	r.hospitals[h.ID] = h
	return nil
}

func (r *memoryHospitalRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.hospitals[id]; !ok {
		return apperrors.NewNotFoundError("hospital not found")
	}
	delete(r.hospitals, id)
	return nil
}

func (r *memoryHospitalRepo) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	out := make([]*entities.Hospital, 0, len(r.hospitals))
	for _, h := range r.hospitals {
		if filter.Status != "" && h.Status != filter.Status {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func hospitalHandlerFixture(hospitals ...*entities.Hospital) (*memoryHospitalRepo, *HospitalHandler) {
	repo := newMemoryHospitalRepo(hospitals...)
	return repo, NewHospitalHandler(repo, services.NewBedManagementService(repo, nil))
}

func registeredHospital() *entities.Hospital {
	return &entities.Hospital{
		ID:     "h1",
		Name:   "Lagos General",
		Status: entities.HospitalStatusStable,
		Beds: map[entities.BedCategory]entities.BedDepartment{
			entities.BedCategoryICU: entities.NewBedDepartment("ICU", 20, 8),
		},
	}
}

func TestRegisterHospital_CreatesWithDerivedBeds(t *testing.T) {
	repo, handler := hospitalHandlerFixture()

	body := `{
		"name": "Ikeja Medical Centre",
		"location": "Ikeja",
		"coordinates": {"latitude": 6.60, "longitude": 3.35},
		"beds": {"icu": {"name": "ICU", "total": 10, "available": 4}},
		"oxygen_supply": 90,
		"er_load": 35
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/hospitals", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.RegisterHospital(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var created entities.Hospital
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entities.HospitalStatusStable, created.Status)

	icu := created.Beds[entities.BedCategoryICU]
	assert.Equal(t, 6, icu.Occupied)
	assert.Equal(t, 60, icu.OccupancyRate)

	_, err := repo.GetByID(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestRegisterHospital_Validation(t *testing.T) {
	_, handler := hospitalHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/api/hospitals", strings.NewReader(`{"name": ""}`))
	rec := httptest.NewRecorder()
	handler.RegisterHospital(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/hospitals",
		strings.NewReader(`{"name": "X", "beds": {"surgery": {"total": 5}}}`))
	rec = httptest.NewRecorder()
	handler.RegisterHospital(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHospital_NotFound(t *testing.T) {
	_, handler := hospitalHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	handler.GetHospital(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHospital_ReturnsRecord(t *testing.T) {
	_, handler := hospitalHandlerFixture(registeredHospital())

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/h1", nil)
	req.SetPathValue("id", "h1")
	rec := httptest.NewRecorder()
	handler.GetHospital(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.Hospital
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Lagos General", got.Name)
}

func TestUpdateBeds_AppliesThroughService(t *testing.T) {
	repo, handler := hospitalHandlerFixture(registeredHospital())

	req := httptest.NewRequest(http.MethodPut, "/api/hospitals/h1/beds",
		strings.NewReader(`{"category": "icu", "available": 2}`))
	req.SetPathValue("id", "h1")
	rec := httptest.NewRecorder()
	handler.UpdateBeds(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	hospital, err := repo.GetByID(context.Background(), "h1")
	require.NoError(t, err)
	icu := hospital.Beds[entities.BedCategoryICU]
	assert.Equal(t, 2, icu.Available)
	assert.Equal(t, 18, icu.Occupied)
}

func TestUpdateBeds_ConflictAndValidationStatuses(t *testing.T) {
	_, handler := hospitalHandlerFixture(registeredHospital())

	// Over the department total
	req := httptest.NewRequest(http.MethodPut, "/api/hospitals/h1/beds",
		strings.NewReader(`{"category": "icu", "available": 50}`))
	req.SetPathValue("id", "h1")
	rec := httptest.NewRecorder()
	handler.UpdateBeds(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown category
	req = httptest.NewRequest(http.MethodPut, "/api/hospitals/h1/beds",
		strings.NewReader(`{"category": "surgery", "available": 1}`))
	req.SetPathValue("id", "h1")
	rec = httptest.NewRecorder()
	handler.UpdateBeds(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteHospital(t *testing.T) {
	repo, handler := hospitalHandlerFixture(registeredHospital())

	req := httptest.NewRequest(http.MethodDelete, "/api/hospitals/h1", nil)
	req.SetPathValue("id", "h1")
	rec := httptest.NewRecorder()
	handler.DeleteHospital(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err := repo.GetByID(context.Background(), "h1")
	assert.Error(t, err)
}

func TestListHospitals_FiltersByStatus(t *testing.T) {
	stable := registeredHospital()
	critical := registeredHospital()
	critical.ID = "h2"
	critical.Status = entities.HospitalStatusCritical

	_, handler := hospitalHandlerFixture(stable, critical)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals?status=critical", nil)
	rec := httptest.NewRecorder()
	handler.ListHospitals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hospitals []*entities.Hospital `json:"hospitals"`
		Count     int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "h2", body.Hospitals[0].ID)
}
