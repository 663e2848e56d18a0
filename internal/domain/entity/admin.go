// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Admin represents an administrator account. The ID doubles as the user id.
type Admin struct {
	ID            string
	Email         string
	Name          string
	PasswordHash  string
	EmailVerified bool
}

// Identity is the authenticated principal currently driving the dashboard.
// The zero value means nobody is signed in.
type Identity struct {
	UserID    string
	Email     string
	Name      string
	Verified  bool
	Admin     bool
	ExpiresAt time.Time
}

// IsAuthenticated reports whether the identity represents a signed-in user.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

// IsVerifiedAdmin reports whether the identity may see admin-only summaries.
func (i Identity) IsVerifiedAdmin() bool {
	return i.IsAuthenticated() && i.Admin && i.Verified
}
