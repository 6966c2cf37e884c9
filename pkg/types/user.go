package types

import (
	"strings"
	"time"
)

// User tiers. The tier gates how many projects an account may own.
const (
	TierFree    = "free"
	TierPro     = "pro"
	TierPremium = "premium"
)

// validTiers is the set of recognized tier values.
var validTiers = map[string]bool{
	TierFree:    true,
	TierPro:     true,
	TierPremium: true,
}

// ValidTier reports whether tier is a recognized tier value.
func ValidTier(tier string) bool {
	return validTiers[tier]
}

// DefaultCredits is the credit balance granted to new accounts.
const DefaultCredits = 100

// User represents an account. The user id is the principal identifier
// used for every ownership comparison.
type User struct {
	UserID           string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"`
	Tier             string    `json:"tier"`
	CreditsRemaining int       `json:"credits_remaining"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ProjectLimit returns the maximum number of projects this user's tier
// allows, or -1 for unlimited.
func (u *User) ProjectLimit() int {
	if u.Tier == TierFree {
		return 1
	}
	return -1
}

// Validate checks the fields required before persisting a new user.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrInvalidName
	}
	if !strings.Contains(u.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}
