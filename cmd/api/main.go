package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"crossval/adapters/api"
	"crossval/adapters/postgres"
	"crossval/internal"
	"crossval/internal/config"
	errs "crossval/internal/errors"
	"crossval/internal/testkit"
	"crossval/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration [%s]: %v", errs.GetCode(err), err)
	}

	logger := internal.NewDefaultLogger()
	reports := buildReportRepository(cfg, logger)

	server := api.NewServer(reports, logger)
	addr := ":" + cfg.Server.Port
	logger.Info("crossval API listening on %s", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func buildReportRepository(cfg *config.Config, logger *internal.Logger) ports.ReportRepository {
	if !cfg.Database.Enabled {
		logger.Warn("DATABASE_URL not set, reports are kept in memory only")
		return testkit.NewInMemoryReportRepository()
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to postgres, falling back to in-memory reports: %v", err)
		return testkit.NewInMemoryReportRepository()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		logger.Error("failed to ensure schema, falling back to in-memory reports: %v", err)
		return testkit.NewInMemoryReportRepository()
	}

	logger.Info("reports persisted to postgres")
	return postgres.NewReportRepository(db)
}
