package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/infrastructure/observability"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

// Dispatcher runs routing decisions and nearby-hospital queries
type Dispatcher interface {
	Dispatch(ctx context.Context, accident *entities.Accident) (*entities.OptimizationResult, error)
	NearbyHospitals(ctx context.Context, origin entities.Coordinates, careType entities.CareType, requiredBeds int) ([]*entities.Hospital, error)
}

// DispatchHandler handles accident dispatch HTTP requests
type DispatchHandler struct {
	dispatcher Dispatcher
	metrics    *observability.Metrics
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(dispatcher Dispatcher, metrics *observability.Metrics) *DispatchHandler {
	return &DispatchHandler{
		dispatcher: dispatcher,
		metrics:    metrics,
	}
}

// dispatchRequest is the accident payload for a routing decision
type dispatchRequest struct {
	Location     string               `json:"location"`
	Severity     entities.Severity    `json:"severity"`
	CareType     entities.CareType    `json:"care_type"`
	PatientCount int                  `json:"patient_count"`
	Coordinates  entities.Coordinates `json:"coordinates"`
}

// Dispatch handles POST /api/dispatch
func (h *DispatchHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !req.Severity.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown severity")
		return
	}
	if req.PatientCount < 1 {
		respondWithError(w, http.StatusBadRequest, "patient count must be at least 1")
		return
	}

	accident := &entities.Accident{
		ID:           "acc-" + uuid.New().String(),
		Location:     req.Location,
		Severity:     req.Severity,
		CareType:     req.CareType,
		PatientCount: req.PatientCount,
		Coordinates:  req.Coordinates,
	}

	result, err := h.dispatcher.Dispatch(r.Context(), accident)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeUnavailable {
			observability.RecordDispatch(r.Context(), h.metrics, "no_hospitals")
		} else {
			observability.RecordDispatch(r.Context(), h.metrics, "error")
		}
		respondWithAppError(w, err)
		return
	}

	observability.RecordDispatch(r.Context(), h.metrics, "recommended")
	respondWithJSON(w, http.StatusOK, result)
}

// NearbyHospitals handles GET /api/hospitals/nearby
func (h *DispatchHandler) NearbyHospitals(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondWithError(w, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	careType := entities.CareType(r.URL.Query().Get("care_type"))
	if careType == "" {
		careType = entities.CareTypeER
	}
	requiredBeds := parseIntParam(r, "beds", 1)

	origin := entities.Coordinates{Latitude: lat, Longitude: lng}
	hospitals, err := h.dispatcher.NearbyHospitals(r.Context(), origin, careType, requiredBeds)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}
