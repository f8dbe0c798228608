package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageValidate(t *testing.T) {
	msg := Message{Body: "The random draw repeats hints", Type: MessageTypeBug}
	assert.Empty(t, msg.Validate())

	// Subject and rating are optional; rating must stay in 1..5 when set.
	five := 5
	msg.Rating = &five
	assert.Empty(t, msg.Validate())

	zero := 0
	msg.Rating = &zero
	assert.Contains(t, msg.Validate(), "Rating must be between 1 and 5")

	six := 6
	msg.Rating = &six
	assert.Contains(t, msg.Validate(), "Rating must be between 1 and 5")

	msg = Message{Type: "rant"}
	errs := msg.Validate()
	assert.Contains(t, errs, "Please provide a message")
	assert.Contains(t, errs, "Type must be one of: help, bug, suggestion, feedback, other")

	msg = Message{Body: "hello"}
	assert.Contains(t, msg.Validate(), "A type is required")
}
