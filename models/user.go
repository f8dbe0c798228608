package models

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// Password policy: at least MinPasswordLen characters, at least one digit and
// one symbol from PasswordSymbols. Kept as explicit constants so the policy
// is visible in one place instead of buried in a validator.
const (
	MinPasswordLen  = 8
	PasswordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type User struct {
	ID            uint                       `gorm:"primaryKey" json:"id"`
	FirstName     string                     `gorm:"not null" json:"firstName"`
	LastName      string                     `gorm:"not null" json:"lastName"`
	Email         string                     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string                     `gorm:"not null" json:"-"` // bcrypt hash
	Admin         bool                       `gorm:"not null;default:false" json:"admin"`
	ExcludedCards datatypes.JSONSlice[int64] `json:"excludedCards"`
	FavoriteCards datatypes.JSONSlice[int64] `json:"favoriteCards"`
	Games         []Game                     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Messages      []Message                  `json:"-"`
	CreatedAt     time.Time                  `json:"createdAt"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

// ValidPassword reports whether plain meets the password policy.
func ValidPassword(plain string) bool {
	if len(plain) < MinPasswordLen {
		return false
	}
	return strings.ContainsAny(plain, "0123456789") &&
		strings.ContainsAny(plain, PasswordSymbols)
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// SetPassword hashes plain with bcrypt and stores the hash. Callers must
// validate the plaintext against the policy first.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

// NormalizeEmail lowercases the address; lookups are case-insensitive.
func (u *User) NormalizeEmail() {
	u.Email = strings.ToLower(u.Email)
}

// Validate returns one message per failed field, empty when the user is
// valid. The plaintext password is checked separately since only its hash
// is kept on the struct.
func (u *User) Validate() []string {
	var errs []string
	if u.FirstName == "" {
		errs = append(errs, "Please provide a first name")
	}
	if u.LastName == "" {
		errs = append(errs, "Please provide a last name")
	}
	if u.Email == "" {
		errs = append(errs, "An email is required")
	} else if !ValidEmail(u.Email) {
		errs = append(errs, "Please provide a valid email address")
	}
	return errs
}
