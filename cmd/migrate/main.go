package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/noah-isme/ttms-admin-api/pkg/config"
	"github.com/noah-isme/ttms-admin-api/pkg/database"
	"github.com/noah-isme/ttms-admin-api/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	if err := database.Migrate(db, *down); err != nil {
		logr.Fatal("migration failed", zap.Error(err))
	}
	logr.Info("migrations applied", zap.Bool("down", *down))
}
