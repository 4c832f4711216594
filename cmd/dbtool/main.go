package main

import (
	"context"
	"database/sql"
	"log"
	"parcel-robot-sim/internal/adapters/repositories"
	"parcel-robot-sim/internal/config"
	"parcel-robot-sim/internal/platform/db"
	"parcel-robot-sim/internal/platform/obs"
	"strings"

	"go.uber.org/zap"
)

func main() {
	envLoaded := config.LoadEnv()
	settings := config.FromEnv()

	logger, err := obs.NewLogger(settings.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if !envLoaded {
		logger.Info("no .env file found (using environment variables)")
	}

	if settings.DBDriver == db.DriverPostgres && strings.TrimSpace(settings.DatabaseURL) == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	dialect, err := repositories.DialectFor(settings.DBDriver)
	if err != nil {
		logger.Fatal("select dialect", zap.Error(err))
	}

	conn, err := db.Open(settings.DBDriver, settings.DSN())
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), logger, conn, dialect, settings.SeedPath); err != nil {
		logger.Fatal("init and seed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, logger *zap.Logger, conn *sql.DB, d repositories.Dialect, seedPath string) error {
	logger.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn, d); err != nil {
		return err
	}
	logger.Info("schema ready")

	logger.Info("seeding roads", zap.String("path", seedPath))
	if err := repositories.SeedRoadsFromJSON(ctx, conn, d, seedPath); err != nil {
		return err
	}
	logger.Info("seeding complete")

	return nil
}
