package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"github.com/blockedby/hiretrack/internal/config"
	"github.com/blockedby/hiretrack/internal/database"
	"github.com/blockedby/hiretrack/internal/logger"
	"github.com/blockedby/hiretrack/internal/migrator"
	"github.com/blockedby/hiretrack/internal/publisher"
	"github.com/blockedby/hiretrack/internal/repository"
	"github.com/blockedby/hiretrack/internal/service"
	"github.com/blockedby/hiretrack/internal/storage"
	"github.com/blockedby/hiretrack/internal/web"
	"github.com/blockedby/hiretrack/internal/web/handlers"
	"github.com/blockedby/hiretrack/migrations"
)

func main() {
	// 1. Load config
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// 2. Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()
	log.Info().Msg("starting hiretrack server")

	// 3. Setup context with graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")
		cancel()
	}()

	// 4. Connect to database and run migrations
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m, err := migrator.NewWithFS(migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrator")
	}
	if err := m.Up(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// 5. Connect to NATS (optional)
	var pub service.EventPublisher
	if cfg.NatsURL != "" {
		nc, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to nats, event publishing disabled")
		} else {
			defer nc.Close()
			pub = publisher.NewNATSPublisher(nc)
		}
	}

	// 6. Initialize blob storage
	blobs, err := storage.NewLocalStore(cfg.CVUploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize blob storage")
	}

	// 7. Initialize repositories
	jobRolesRepo := repository.NewJobRolesRepository(db.Pool, log)
	applicationsRepo := repository.NewApplicationsRepository(db.Pool, log)

	// 8. Initialize services
	jobRoleService := service.NewJobRoleService(jobRolesRepo, applicationsRepo, pub, log)
	applicationService := service.NewApplicationService(
		applicationsRepo, jobRolesRepo, blobs, pub, cfg.Upload, time.Now, log)

	// 9. Initialize handlers and server
	jobRolesHandler := handlers.NewJobRolesHandler(jobRoleService)
	applicationsHandler := handlers.NewApplicationsHandler(applicationService)

	server := web.NewServer(&web.Config{
		Port:             cfg.HTTPPort,
		SubmitRatePerSec: cfg.SubmitRatePerSec,
		SubmitBurst:      cfg.SubmitBurst,
	}, jobRolesHandler, applicationsHandler)

	// 10. Start server
	log.Info().Int("port", cfg.HTTPPort).Msg("starting http server")
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("server stopped")
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
