package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"

	"github.com/blockedby/hiretrack/internal/config"
	"github.com/blockedby/hiretrack/internal/logger"
	"github.com/blockedby/hiretrack/internal/migrator"
	"github.com/blockedby/hiretrack/migrations"
)

func main() {
	versionOnly := flag.Bool("version", false, "print current migration version and exit")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()

	m, err := migrator.NewWithFS(migrations.FS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrator")
	}

	ctx := context.Background()

	if *versionOnly {
		version, dirty, err := m.Version(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get migration version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("migration status")
		return
	}

	if err := m.Up(ctx, cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("migrations applied")
}
