// Package entity defines the core business entities for the domain layer.
package entity

// Document store collections read by the dashboard.
const (
	CollectionUsers  = "users"
	CollectionOrders = "orders"
	CollectionChats  = "chats"
	CollectionAdmins = "admins"
)
