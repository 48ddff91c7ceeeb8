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

	"github.com/medroute/emergency-routing/internal/domain/entities"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

type stubDispatcher struct {
	result       *entities.OptimizationResult
	nearby       []*entities.Hospital
	err          error
	lastAccident *entities.Accident
}

func (d *stubDispatcher) Dispatch(ctx context.Context, accident *entities.Accident) (*entities.OptimizationResult, error) {
	d.lastAccident = accident
	return d.result, d.err
}

func (d *stubDispatcher) NearbyHospitals(ctx context.Context, origin entities.Coordinates, careType entities.CareType, requiredBeds int) ([]*entities.Hospital, error) {
	return d.nearby, d.err
}

func dispatchBody() string {
	return `{
		"location": "Third Mainland Bridge",
		"severity": "critical",
		"care_type": "ICU",
		"patient_count": 3,
		"coordinates": {"latitude": 6.5244, "longitude": 3.3792}
	}`
}

func TestDispatch_ReturnsRecommendation(t *testing.T) {
	dispatcher := &stubDispatcher{
		result: &entities.OptimizationResult{
			RecommendedHospital: &entities.Hospital{ID: "h1", Name: "Lagos General"},
			Confidence:          65,
			EstimatedArrival:    23,
			TimeToGoldenWindow:  0,
		},
	}
	handler := NewDispatchHandler(dispatcher, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/dispatch", strings.NewReader(dispatchBody()))
	rec := httptest.NewRecorder()
	handler.Dispatch(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result entities.OptimizationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, "h1", result.RecommendedHospital.ID)
	assert.Equal(t, 65, result.Confidence)

	require.NotNil(t, dispatcher.lastAccident)
	assert.True(t, strings.HasPrefix(dispatcher.lastAccident.ID, "acc-"))
	assert.Equal(t, entities.SeverityCritical, dispatcher.lastAccident.Severity)
	assert.Equal(t, 3, dispatcher.lastAccident.PatientCount)
}

func TestDispatch_RejectsMalformedBody(t *testing.T) {
	handler := NewDispatchHandler(&stubDispatcher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/dispatch", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	handler.Dispatch(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDispatch_ValidatesSeverityAndPatientCount(t *testing.T) {
	handler := NewDispatchHandler(&stubDispatcher{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/dispatch",
		strings.NewReader(`{"severity": "catastrophic", "patient_count": 1}`))
	rec := httptest.NewRecorder()
	handler.Dispatch(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/dispatch",
		strings.NewReader(`{"severity": "critical", "patient_count": 0}`))
	rec = httptest.NewRecorder()
	handler.Dispatch(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDispatch_NoHospitalsMapsTo404(t *testing.T) {
	dispatcher := &stubDispatcher{err: apperrors.NewUnavailableError("no hospitals available within dispatch radius")}
	handler := NewDispatchHandler(dispatcher, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/dispatch", strings.NewReader(dispatchBody()))
	rec := httptest.NewRecorder()
	handler.Dispatch(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body["error"], "no hospitals")
}

func TestNearbyHospitals_RequiresCoordinates(t *testing.T) {
	handler := NewDispatchHandler(&stubDispatcher{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby", nil)
	rec := httptest.NewRecorder()
	handler.NearbyHospitals(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNearbyHospitals_ReturnsList(t *testing.T) {
	dispatcher := &stubDispatcher{nearby: []*entities.Hospital{
		{ID: "h1"}, {ID: "h2"},
	}}
	handler := NewDispatchHandler(dispatcher, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/hospitals/nearby?lat=6.52&lng=3.38&care_type=ICU&beds=2", nil)
	rec := httptest.NewRecorder()
	handler.NearbyHospitals(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Hospitals []*entities.Hospital `json:"hospitals"`
		Count     int                  `json:"count"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Hospitals, 2)
	assert.Equal(t, "h1", body.Hospitals[0].ID)
}
