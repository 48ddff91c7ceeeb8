package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medroute/emergency-routing/internal/application/services"
	"github.com/medroute/emergency-routing/internal/domain/entities"
)

// ReservationHandler handles bed reservation HTTP requests
type ReservationHandler struct {
	reservations *services.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservations *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		reservations: reservations,
	}
}

// reservationRequest is the payload for booking a bed
type reservationRequest struct {
	HospitalID       string            `json:"hospital_id"`
	PatientName      string            `json:"patient_name"`
	PatientPhone     string            `json:"patient_phone"`
	CareType         entities.CareType `json:"care_type"`
	BedCount         int               `json:"bed_count"`
	EstimatedArrival int               `json:"estimated_arrival"`
	Confidence       int               `json:"confidence"`
	Notes            string            `json:"notes"`
}

// CreateReservation handles POST /api/reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HospitalID == "" {
		respondWithError(w, http.StatusBadRequest, "hospital_id is required")
		return
	}

	reservation := &entities.BedReservation{
		HospitalID:       req.HospitalID,
		PatientName:      req.PatientName,
		PatientPhone:     req.PatientPhone,
		CareType:         req.CareType,
		BedCount:         req.BedCount,
		EstimatedArrival: req.EstimatedArrival,
		Confidence:       req.Confidence,
		Notes:            req.Notes,
	}

	if err := h.reservations.Reserve(r.Context(), reservation); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, reservation)
}

// GetReservation handles GET /api/reservations/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := r.PathValue("id")
	if reservationID == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	reservation, err := h.reservations.GetByID(r.Context(), reservationID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, reservation)
}

// CancelReservation handles DELETE /api/reservations/{id}
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	reservationID := r.PathValue("id")
	if reservationID == "" {
		respondWithError(w, http.StatusBadRequest, "reservation ID is required")
		return
	}

	if err := h.reservations.Cancel(r.Context(), reservationID); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
