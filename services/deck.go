package services

import (
	"encoding/json"
	"os"

	"github.com/cluedeck/trivia-backend/models"
	"github.com/cluedeck/trivia-backend/utils/logger"
	"gorm.io/gorm"
)

const DefaultDeckFile = "deck.json"

// SeedDeck loads starter cards from a JSON file into an empty card table.
// Does nothing when cards already exist or the file is absent, so restarts
// and fresh checkouts without a deck both behave.
func SeedDeck(db *gorm.DB, path string) error {
	if path == "" {
		path = DefaultDeckFile
	}

	var count int64
	if err := db.Model(&models.Card{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Infof("no deck file at %s, starting with an empty card table", path)
		return nil
	}
	if err != nil {
		return err
	}

	var cards []models.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return err
	}

	for i := range cards {
		cards[i].ID = 0
		if errs := cards[i].Validate(); len(errs) > 0 {
			logger.Warnf("skipping invalid seed card %q: %v", cards[i].Clue, errs)
			continue
		}
		if err := db.Create(&cards[i]).Error; err != nil {
			return err
		}
	}

	logger.Infof("seeded %d cards from %s", len(cards), path)
	return nil
}
