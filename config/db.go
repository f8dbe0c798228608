package config

import (
	"os"

	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// SetupDatabase connects to postgres and runs migrations.
func SetupDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatalf("DATABASE_URL is required in .env or environment")
	}

	// TranslateError lets handlers detect unique violations via
	// gorm.ErrDuplicatedKey instead of matching driver error strings.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Card{},
		&models.Message{},
	); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	DB = db
	logger.Infof("database connected and migrated")
	return db
}
