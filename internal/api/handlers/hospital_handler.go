package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medroute/emergency-routing/internal/application/services"
	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	apperrors "github.com/medroute/emergency-routing/pkg/errors"
)

// HospitalHandler handles hospital registry HTTP requests
type HospitalHandler struct {
	hospitalRepo repositories.HospitalRepository
	bedService   *services.BedManagementService
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(hospitalRepo repositories.HospitalRepository, bedService *services.BedManagementService) *HospitalHandler {
	return &HospitalHandler{
		hospitalRepo: hospitalRepo,
		bedService:   bedService,
	}
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	hospital, err := h.hospitalRepo.GetByID(r.Context(), hospitalID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	filter := repositories.HospitalFilter{
		Status: entities.HospitalStatus(r.URL.Query().Get("status")),
		Limit:  parseIntParam(r, "limit", 50),
		Offset: parseIntParam(r, "offset", 0),
	}

	hospitals, err := h.hospitalRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// registerHospitalRequest is the payload for hospital registration
type registerHospitalRequest struct {
	Name         string                                         `json:"name"`
	Location     string                                         `json:"location"`
	Address      string                                         `json:"address"`
	Coordinates  entities.Coordinates                           `json:"coordinates"`
	Phone        string                                         `json:"phone"`
	Beds         map[entities.BedCategory]registerBedDepartment `json:"beds"`
	OxygenSupply int                                            `json:"oxygen_supply"`
	ERLoad       int                                            `json:"er_load"`
	Status       entities.HospitalStatus                        `json:"status"`
}

type registerBedDepartment struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
}

// RegisterHospital handles POST /api/hospitals
func (h *HospitalHandler) RegisterHospital(w http.ResponseWriter, r *http.Request) {
	var req registerHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Name == "" {
		respondWithError(w, http.StatusBadRequest, "hospital name is required")
		return
	}
	if req.Status == "" {
		req.Status = entities.HospitalStatusStable
	}
	if !req.Status.Valid() {
		respondWithError(w, http.StatusBadRequest, "unknown hospital status")
		return
	}

	beds := make(map[entities.BedCategory]entities.BedDepartment, len(req.Beds))
	for category, department := range req.Beds {
		if !category.Valid() {
			respondWithError(w, http.StatusBadRequest, "unknown bed category: "+string(category))
			return
		}
		beds[category] = entities.NewBedDepartment(department.Name, department.Total, department.Available)
	}

	now := time.Now()
	hospital := &entities.Hospital{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Location:     req.Location,
		Address:      req.Address,
		Coordinates:  req.Coordinates,
		Phone:        req.Phone,
		Beds:         beds,
		OxygenSupply: req.OxygenSupply,
		ERLoad:       req.ERLoad,
		Status:       req.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.hospitalRepo.Create(r.Context(), hospital); err != nil {
		respondWithAppError(w, err)
		return
	}

	log.Info().Str("hospital_id", hospital.ID).Str("name", hospital.Name).Msg("hospital registered")
	respondWithJSON(w, http.StatusCreated, hospital)
}

// UpdateHospital handles PUT /api/hospitals/{id}
func (h *HospitalHandler) UpdateHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	var req registerHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hospital, err := h.hospitalRepo.GetByID(r.Context(), hospitalID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	hospital.Name = req.Name
	hospital.Location = req.Location
	hospital.Address = req.Address
	hospital.Coordinates = req.Coordinates
	hospital.Phone = req.Phone
	hospital.OxygenSupply = req.OxygenSupply
	hospital.ERLoad = req.ERLoad
	if req.Status != "" {
		if !req.Status.Valid() {
			respondWithError(w, http.StatusBadRequest, "unknown hospital status")
			return
		}
		hospital.Status = req.Status
	}
	if req.Beds != nil {
		beds := make(map[entities.BedCategory]entities.BedDepartment, len(req.Beds))
		for category, department := range req.Beds {
			if !category.Valid() {
				respondWithError(w, http.StatusBadRequest, "unknown bed category: "+string(category))
				return
			}
			beds[category] = entities.NewBedDepartment(department.Name, department.Total, department.Available)
		}
		hospital.Beds = beds
	}

	if err := h.hospitalRepo.Update(r.Context(), hospital); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

// DeleteHospital handles DELETE /api/hospitals/{id}
func (h *HospitalHandler) DeleteHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	if err := h.hospitalRepo.Delete(r.Context(), hospitalID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// updateBedsRequest is the payload for bed count updates
type updateBedsRequest struct {
	Category  entities.BedCategory `json:"category"`
	Available int                  `json:"available"`
}

// UpdateBeds handles PUT /api/hospitals/{id}/beds
func (h *HospitalHandler) UpdateBeds(w http.ResponseWriter, r *http.Request) {
	hospitalID := r.PathValue("id")
	if hospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	var req updateBedsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hospital, err := h.bedService.UpdateBeds(r.Context(), hospitalID, req.Category, req.Available)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}

func parseIntParam(r *http.Request, name string, defaultValue int) int {
	if value := r.URL.Query().Get(name); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// respondWithError writes a JSON error response
func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// respondWithAppError maps an application error to an HTTP status
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
