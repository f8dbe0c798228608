package models

import (
	"time"

	"gorm.io/datatypes"
)

// Game statuses. A game starts as playing and moves to completed exactly
// once, when its deck runs out of eligible cards. There is no way back.
const (
	StatusPlaying   = "playing"
	StatusCompleted = "completed"
)

type Game struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	UserID      uint                        `gorm:"not null;index" json:"userId"`
	User        *User                       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status      string                      `gorm:"not null;default:playing" json:"status"`
	Score       int                         `gorm:"not null;default:0" json:"score"`
	Interactive bool                        `gorm:"not null;default:false" json:"interactive"`
	Categories  datatypes.JSONSlice[string] `json:"categories"`
	UsedCards   datatypes.JSONSlice[int64]  `json:"usedCards"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// HasUsed reports whether cardID was already played in this game.
func (g *Game) HasUsed(cardID int64) bool {
	for _, used := range g.UsedCards {
		if used == cardID {
			return true
		}
	}
	return false
}

// Validate returns one message per failed field, empty when the game is valid.
func (g *Game) Validate() []string {
	var errs []string
	if g.UserID == 0 {
		errs = append(errs, "A userId is required")
	}
	if g.Status != StatusPlaying && g.Status != StatusCompleted {
		errs = append(errs, `Status must be either "playing" or "completed"`)
	}
	if len(g.Categories) == 0 {
		errs = append(errs, "Please provide at least one category")
	}
	for _, cat := range g.Categories {
		if !ValidCategory(cat) {
			errs = append(errs, "Category must be one of: kinky, party, popCulture, family, custom")
			break
		}
	}
	return errs
}
