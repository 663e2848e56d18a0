// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
	"github.com/technest/admin-dashboard/internal/domain/valueobject"
)

// Document field names consumed by the reducers.
const (
	fieldStatus             = "status"
	fieldPaymentMethod      = "paymentMethod"
	fieldCreatedAt          = "createdAt"
	fieldGrandTotal         = "grandTotal"
	fieldName               = "name"
	fieldEmail              = "email"
	fieldVerificationStatus = "verificationStatus"
	fieldUserID             = "userId"
	fieldLastMessage        = "lastMessage"
	fieldLastMessageAt      = "lastMessageAt"
	fieldUnreadByAdmin      = "unreadByAdmin"
)

// DecodeOrder converts an order document. Missing or mistyped fields fall
// back to their zero value.
func DecodeOrder(doc adapter.Document) entity.Order {
	f := valueobject.Fields(doc.Data)
	return entity.Order{
		ID:            doc.ID,
		Status:        f.String(fieldStatus),
		PaymentMethod: f.String(fieldPaymentMethod),
		CreatedAt:     f.Time(fieldCreatedAt),
		GrandTotal:    f.Decimal(fieldGrandTotal),
	}
}

// DecodeUser converts a user document.
func DecodeUser(doc adapter.Document) entity.User {
	f := valueobject.Fields(doc.Data)
	return entity.User{
		ID:                 doc.ID,
		Name:               f.String(fieldName),
		Email:              f.String(fieldEmail),
		VerificationStatus: f.OptionalString(fieldVerificationStatus),
	}
}

// DecodeChat converts a chat document.
func DecodeChat(doc adapter.Document) entity.Chat {
	f := valueobject.Fields(doc.Data)
	return entity.Chat{
		ID:            doc.ID,
		UserID:        f.String(fieldUserID),
		LastMessage:   f.String(fieldLastMessage),
		LastMessageAt: f.Time(fieldLastMessageAt),
		UnreadByAdmin: f.Int(fieldUnreadByAdmin),
	}
}

func decodeOrders(docs []adapter.Document) []entity.Order {
	orders := make([]entity.Order, len(docs))
	for i, doc := range docs {
		orders[i] = DecodeOrder(doc)
	}
	return orders
}

func decodeUsers(docs []adapter.Document) []entity.User {
	users := make([]entity.User, len(docs))
	for i, doc := range docs {
		users[i] = DecodeUser(doc)
	}
	return users
}

func decodeChats(docs []adapter.Document) []entity.Chat {
	chats := make([]entity.Chat, len(docs))
	for i, doc := range docs {
		chats[i] = DecodeChat(doc)
	}
	return chats
}
