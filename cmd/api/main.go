package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medroute/emergency-routing/internal/adapters/cache"
	"github.com/medroute/emergency-routing/internal/adapters/database"
	"github.com/medroute/emergency-routing/internal/adapters/events"
	"github.com/medroute/emergency-routing/internal/adapters/providers/traffic"
	"github.com/medroute/emergency-routing/internal/api/handlers"
	"github.com/medroute/emergency-routing/internal/api/routes"
	"github.com/medroute/emergency-routing/internal/application/services"
	"github.com/medroute/emergency-routing/internal/domain/providers"
	"github.com/medroute/emergency-routing/internal/domain/repositories"
	"github.com/medroute/emergency-routing/internal/infrastructure/clients/postgres"
	redisclient "github.com/medroute/emergency-routing/internal/infrastructure/clients/redis"
	"github.com/medroute/emergency-routing/internal/infrastructure/observability"
	"github.com/medroute/emergency-routing/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry is optional; the service runs without an endpoint
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	var hospitalRepo repositories.HospitalRepository = database.NewHospitalAdapter(pgClient)
	reservationRepo := database.NewReservationAdapter(pgClient)

	// Redis is optional; without it the service runs uncached and unannounced
	var eventBus providers.EventBus
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache and events")
	} else {
		defer redisClient.Close()
		hospitalRepo = database.NewCachedHospitalAdapter(hospitalRepo, cache.NewRedisAdapter(redisClient))
		eventBus = events.NewRedisEventBus(redisClient)
		defer eventBus.Close()
		log.Info().Msg("Redis client initialized")
	}

	var trafficProvider providers.TrafficProvider
	switch cfg.Traffic.Provider {
	case "static":
		trafficProvider = traffic.NewStaticProvider(cfg.Traffic.StaticDensity)
	default:
		trafficProvider = traffic.NewHeuristicProvider()
	}

	scorer := services.NewHospitalScorer()
	optimizer := services.NewRouteOptimizerService(scorer)
	dispatchService := services.NewDispatchService(hospitalRepo, trafficProvider, optimizer, cfg.Dispatch.RadiusKm)
	bedService := services.NewBedManagementService(hospitalRepo, eventBus)
	reservationService := services.NewReservationService(reservationRepo, hospitalRepo, bedService)

	if eventBus != nil {
		go auditHospitalEvents(ctx, eventBus)
	}

	hospitalHandler := handlers.NewHospitalHandler(hospitalRepo, bedService)
	dispatchHandler := handlers.NewDispatchHandler(dispatchService, metrics)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	router := routes.NewRouter(hospitalHandler, dispatchHandler, reservationHandler, metrics)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
}

// auditHospitalEvents logs registry change events published by any instance
func auditHospitalEvents(ctx context.Context, bus providers.EventBus) {
	eventCh, err := bus.Subscribe(ctx, services.HospitalEventsChannel)
	if err != nil {
		log.Warn().Err(err).Msg("failed to subscribe to hospital events")
		return
	}
	for event := range eventCh {
		log.Info().
			Str("event_id", event.ID).
			Str("type", string(event.Type)).
			Str("hospital_id", event.HospitalID).
			Msg("hospital registry event")
	}
}
