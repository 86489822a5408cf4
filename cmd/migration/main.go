package main

import (
	"os"

	"healthdash/cmd/migration/initialize"
	"healthdash/cmd/migration/seed"
	"healthdash/config"
	"healthdash/internal/database"
	"healthdash/internal/logger"
)

func main() {
	log := logger.New("migration").Function("main")

	config, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(config)
	if err != nil {
		log.Er("failed to connect to database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	if err := initialize.InitializeTables(db.SQL, config, logger.New("migration")); err != nil {
		log.Er("failed to initialize tables", err)
		os.Exit(1)
	}

	if config.Environment == "development" {
		if err := seed.Seed(db.SQL, config, logger.New("migration")); err != nil {
			log.Er("failed to seed development data", err)
			os.Exit(1)
		}
	}

	log.Info("migration complete")
}
