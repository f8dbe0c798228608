package main

import (
	"os"

	"github.com/cluedeck/trivia-backend/config"
	"github.com/cluedeck/trivia-backend/services"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"github.com/joho/godotenv"
)

// Standalone migrate + seed, for deploys that run schema changes before
// rolling the server.
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found, reading environment variables")
	}

	db := config.SetupDatabase() // connects + migrates
	if err := services.SeedDeck(db, os.Getenv("DECK_FILE")); err != nil {
		logger.Fatalf("deck seeding failed: %v", err)
	}
	logger.Infof("migration and seeding completed")
}
