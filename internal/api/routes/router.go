package routes

import (
	"net/http"

	"github.com/medroute/emergency-routing/internal/api/handlers"
	"github.com/medroute/emergency-routing/internal/api/middleware"
	"github.com/medroute/emergency-routing/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler    *handlers.HospitalHandler
	dispatchHandler    *handlers.DispatchHandler
	reservationHandler *handlers.ReservationHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	dispatchHandler *handlers.DispatchHandler,
	reservationHandler *handlers.ReservationHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                http.NewServeMux(),
		hospitalHandler:    hospitalHandler,
		dispatchHandler:    dispatchHandler,
		reservationHandler: reservationHandler,
		metrics:            metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hospital registry endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("POST /api/hospitals", r.hospitalHandler.RegisterHospital)
	r.mux.HandleFunc("GET /api/hospitals/nearby", r.dispatchHandler.NearbyHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)
	r.mux.HandleFunc("PUT /api/hospitals/{id}", r.hospitalHandler.UpdateHospital)
	r.mux.HandleFunc("DELETE /api/hospitals/{id}", r.hospitalHandler.DeleteHospital)
	r.mux.HandleFunc("PUT /api/hospitals/{id}/beds", r.hospitalHandler.UpdateBeds)

	// Dispatch endpoint
	r.mux.HandleFunc("POST /api/dispatch", r.dispatchHandler.Dispatch)

	// Reservation endpoints
	r.mux.HandleFunc("POST /api/reservations", r.reservationHandler.CreateReservation)
	r.mux.HandleFunc("GET /api/reservations/{id}", r.reservationHandler.GetReservation)
	r.mux.HandleFunc("DELETE /api/reservations/{id}", r.reservationHandler.CancelReservation)

	// Middleware chain, outermost first
	var handler http.Handler = r.mux
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
