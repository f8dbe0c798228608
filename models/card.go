package models

import "time"

// Card categories are a fixed set. Games filter their deck by these values,
// so validation always checks against this list rather than trusting input.
const (
	CategoryKinky      = "kinky"
	CategoryParty      = "party"
	CategoryPopCulture = "popCulture"
	CategoryFamily     = "family"
	CategoryCustom     = "custom"
)

// Categories is the canonical category set.
var Categories = []string{
	CategoryKinky,
	CategoryParty,
	CategoryPopCulture,
	CategoryFamily,
	CategoryCustom,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Card struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Clue       string    `gorm:"not null" json:"clue"`
	Answer     string    `gorm:"not null" json:"answer"`
	Hint       string    `gorm:"not null" json:"hint"`
	Definition string    `gorm:"not null" json:"definition"`
	Category   string    `gorm:"not null;index" json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Validate returns one message per failed field, empty when the card is valid.
func (c *Card) Validate() []string {
	var errs []string
	if c.Clue == "" {
		errs = append(errs, "Please provide a clue")
	}
	if c.Answer == "" {
		errs = append(errs, "Please provide an answer")
	}
	if c.Hint == "" {
		errs = append(errs, "Please provide a hint")
	}
	if c.Definition == "" {
		errs = append(errs, "Please provide a definition")
	}
	if c.Category == "" {
		errs = append(errs, "Please provide a category")
	} else if !ValidCategory(c.Category) {
		errs = append(errs, "Category must be one of: kinky, party, popCulture, family, custom")
	}
	return errs
}
