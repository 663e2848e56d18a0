// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Chat represents a support conversation between a customer and the admins.
type Chat struct {
	ID            string
	UserID        string
	LastMessage   string
	LastMessageAt *time.Time
	UnreadByAdmin int
}
