package main

import (
	"context"
	"log"
	"os"
	"time"

	"talentflow/internal/config"
	"talentflow/internal/database/migration"
	dbpostgres "talentflow/internal/database/postgres"
	"talentflow/internal/database/seeder"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	start := time.Now()
	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	runner := seeder.Runner{Seeders: seeder.Defaults(logger), Logger: logger}
	if err := runner.Run(ctx, db); err != nil {
		logger.Fatalf("seed failed: %v", err)
	}

	logger.Printf("seed complete in %s", time.Since(start))
}
