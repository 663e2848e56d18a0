// Package entity defines the core business entities for the domain layer.
package entity

import "strings"

// VerificationStatusVerified is the only verification label counted as verified.
const VerificationStatusVerified = "verified"

// User represents a platform customer document.
type User struct {
	ID                 string
	Name               string
	Email              string
	VerificationStatus *string
}

// IsVerified reports whether the user's verification label is "verified",
// ignoring case and surrounding whitespace. A missing label is unverified.
func (u User) IsVerified() bool {
	if u.VerificationStatus == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*u.VerificationStatus), VerificationStatusVerified)
}

// DisplayName returns the best human-readable label for the user.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return strings.TrimSpace(u.Email)
}
