// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserVerificationSummary counts users by verification state.
// VerifiedCount + UnverifiedCount always equals TotalUsers.
type UserVerificationSummary struct {
	TotalUsers      int `json:"total_users"`
	VerifiedCount   int `json:"verified_count"`
	UnverifiedCount int `json:"unverified_count"`
}

// OrderStatusSummary counts orders per recognized status.
// Orders with an unrecognized status count toward Total only.
type OrderStatusSummary struct {
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// EarningsBucket is one calendar month of the earnings series.
type EarningsBucket struct {
	Year       int             `json:"year"`
	Month      time.Month      `json:"month"`
	MonthLabel string          `json:"month_label"`
	Total      decimal.Decimal `json:"total"`
}

// EarningsSeries is the trailing window of monthly earnings, oldest first.
type EarningsSeries []EarningsBucket

// IsEmpty reports whether every bucket total is zero.
func (s EarningsSeries) IsEmpty() bool {
	for _, b := range s {
		if !b.Total.IsZero() {
			return false
		}
	}
	return true
}

// ChatInboxEntry is one conversation in the admin inbox.
type ChatInboxEntry struct {
	ChatID          string     `json:"chat_id"`
	CounterpartID   string     `json:"counterpart_id"`
	CounterpartName string     `json:"counterpart_name"`
	LastMessage     string     `json:"last_message"`
	LastMessageAt   *time.Time `json:"last_message_at,omitempty"`
	UnreadCount     int        `json:"unread_count"`
}

// ChatInboxSummary summarizes the support chats visible to administrators.
type ChatInboxSummary struct {
	TotalChats     int              `json:"total_chats"`
	UnreadChats    int              `json:"unread_chats"`
	UnreadMessages int              `json:"unread_messages"`
	Entries        []ChatInboxEntry `json:"entries"`
}
