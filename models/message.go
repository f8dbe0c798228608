package models

import "time"

// Message types for user feedback.
const (
	MessageTypeHelp       = "help"
	MessageTypeBug        = "bug"
	MessageTypeSuggestion = "suggestion"
	MessageTypeFeedback   = "feedback"
	MessageTypeOther      = "other"
)

// MessageTypes is the canonical type set.
var MessageTypes = []string{
	MessageTypeHelp,
	MessageTypeBug,
	MessageTypeSuggestion,
	MessageTypeFeedback,
	MessageTypeOther,
}

// ValidMessageType reports whether t is one of the known message types.
func ValidMessageType(t string) bool {
	for _, known := range MessageTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Subject   string    `json:"subject"`
	Body      string    `gorm:"column:message;not null" json:"message"`
	Type      string    `gorm:"not null;index" json:"type"`
	Rating    *int      `json:"rating"`
	UserID    *uint     `json:"userId"`
	User      *User     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns one message per failed field, empty when valid.
func (m *Message) Validate() []string {
	var errs []string
	if m.Body == "" {
		errs = append(errs, "Please provide a message")
	}
	if m.Type == "" {
		errs = append(errs, "A type is required")
	} else if !ValidMessageType(m.Type) {
		errs = append(errs, "Type must be one of: help, bug, suggestion, feedback, other")
	}
	if m.Rating != nil && (*m.Rating < 1 || *m.Rating > 5) {
		errs = append(errs, "Rating must be between 1 and 5")
	}
	return errs
}
