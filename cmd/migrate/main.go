package main

import (
	"context"
	"log"
	"os"
	"time"

	"hrdash/adapters/postgres"
	"hrdash/internal"
	"hrdash/internal/migration"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	table := os.Getenv("DATABASE_TABLE")
	if len(os.Args) > 1 {
		databaseURL = os.Args[1]
	}
	if len(os.Args) > 2 {
		table = os.Args[2]
	}
	if table == "" {
		table = "employees"
	}
	if databaseURL == "" {
		log.Fatal("Usage: migrate [database_url] [table]  (or set DATABASE_URL)")
	}

	logger := internal.NewDefaultLogger()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Open(ctx, databaseURL)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	var runner migration.Migrator = migration.NewRunner(table, logger)
	if err := runner.Run(ctx, db); err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Migration %s complete for table %s", runner.Version(), table)
}
