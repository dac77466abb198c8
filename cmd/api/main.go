package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/wardwatch/statuspanel/internal/adapters/credentials"
	"github.com/wardwatch/statuspanel/internal/adapters/events"
	"github.com/wardwatch/statuspanel/internal/adapters/memory"
	"github.com/wardwatch/statuspanel/internal/adapters/sessions"
	"github.com/wardwatch/statuspanel/internal/api/handlers"
	"github.com/wardwatch/statuspanel/internal/api/middleware"
	"github.com/wardwatch/statuspanel/internal/api/routes"
	"github.com/wardwatch/statuspanel/internal/application/services"
	"github.com/wardwatch/statuspanel/internal/domain/repositories"
	"github.com/wardwatch/statuspanel/internal/infrastructure/observability"
	"github.com/wardwatch/statuspanel/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger("ward-status-panel", cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Entity stores, seeded with the fixed sample rows
	sectorStore := memory.NewSectorStore()
	physicianStore := memory.NewPhysicianStore()
	patientStore := memory.NewPatientStore()
	if err := memory.Seed(ctx, sectorStore, physicianStore, patientStore); err != nil {
		log.Fatal().Err(err).Msg("failed to seed panel state")
	}

	// Session store: Redis when reachable, in-memory otherwise
	var sessionStore repositories.SessionRepository
	redisClient := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisStore, err := sessions.NewRedisStore(ctx, redisClient, cfg.Session.TTL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory sessions")
		_ = redisClient.Close()
		memStore := sessions.NewMemoryStore(cfg.Session.TTL)
		defer memStore.Close()
		sessionStore = memStore
	} else {
		defer redisClient.Close()
		sessionStore = redisStore
		log.Info().Msg("Redis session store initialized")
	}

	// Session gate over the flat-file credential store
	userStore := credentials.NewFileStore(cfg.Auth.UsersFile)
	authService := services.NewAuthService(userStore, sessionStore, cfg.Session.TTL)
	if err := authService.Bootstrap(ctx, cfg.Auth.BootstrapUser, cfg.Auth.BootstrapPass); err != nil {
		log.Warn().Err(err).Msg("failed to bootstrap admin account")
	}

	// Broadcast hub and command surface
	hub := events.NewPanelHub(metrics)
	defer hub.Close()
	panelService := services.NewPanelService(sectorStore, physicianStore, patientStore, hub)

	// HTTP surface
	authMiddleware := middleware.NewAuthMiddleware(authService, cfg.Session.CookieName)
	router := routes.NewRouter(
		handlers.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.TTL),
		handlers.NewSectorHandler(panelService),
		handlers.NewPhysicianHandler(panelService),
		handlers.NewPatientHandler(panelService),
		handlers.NewVideoHandler(panelService),
		handlers.NewSSEHandler(panelService),
		authMiddleware,
		metrics,
		cfg.Static.Dir,
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		serveErr <- server.ListenAndServe()
	}()

	// Graceful shutdown on SIGINT/SIGTERM or a serve failure; getting
	// here by return lets the deferred closes run
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Info().Msg("shutting down")
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
			return
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
