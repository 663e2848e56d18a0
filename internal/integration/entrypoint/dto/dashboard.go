package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/technest/admin-dashboard/internal/application/usecase/dashboard"
	"github.com/technest/admin-dashboard/internal/domain/entity"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)

	compactUnits = []struct {
		size   decimal.Decimal
		suffix string
	}{
		{size: thousand, suffix: "K"},
		{size: million, suffix: "M"},
		{size: billion, suffix: "B"},
	}
)

// FocusRequest represents the request body for PUT /dashboard/focus.
type FocusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// DashboardResponse represents the full dashboard view-model.
type DashboardResponse struct {
	Refreshing bool                         `json:"refreshing"`
	Visible    bool                         `json:"visible"`
	Users      SummaryResponse[UsersData]   `json:"users"`
	Orders     SummaryResponse[OrdersData]  `json:"orders"`
	Earnings   SummaryResponse[[]MonthData] `json:"earnings"`
	Chats      SummaryResponse[ChatsData]   `json:"chats"`
}

// SummaryResponse is the tri-state envelope of one summary. Data is omitted
// while loading unless a cached value is shown.
type SummaryResponse[T any] struct {
	Status    string     `json:"status"`
	Data      *T         `json:"data,omitempty"`
	Cached    bool       `json:"cached,omitempty"`
	Error     string     `json:"error,omitempty"`
	ErrorCode string     `json:"error_code,omitempty"`
	Sequence  uint64     `json:"sequence"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UsersData represents the user verification summary.
type UsersData struct {
	Total      int `json:"total"`
	Verified   int `json:"verified"`
	Unverified int `json:"unverified"`
}

// OrdersData represents the order status summary.
type OrdersData struct {
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Shipped   int `json:"shipped"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}

// MonthData represents one month of the earnings series.
type MonthData struct {
	Month   string  `json:"month"`
	Label   string  `json:"label"`
	Total   float64 `json:"total"`
	Display string  `json:"display"`
}

// ChatsData represents the admin chat inbox.
type ChatsData struct {
	Total          int         `json:"total"`
	Unread         int         `json:"unread"`
	UnreadMessages int         `json:"unread_messages"`
	Entries        []ChatEntry `json:"entries"`
}

// ChatEntry represents one conversation in the inbox.
type ChatEntry struct {
	ChatID        string     `json:"chat_id"`
	UserID        string     `json:"user_id"`
	UserName      string     `json:"user_name"`
	LastMessage   string     `json:"last_message"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	Unread        int        `json:"unread"`
}

// ToDashboardResponse converts a dashboard view to a DashboardResponse DTO.
func ToDashboardResponse(view dashboard.View) DashboardResponse {
	return DashboardResponse{
		Refreshing: view.Refreshing,
		Visible:    view.Visible,
		Users:      toSummaryResponse(view.Users, toUsersData),
		Orders:     toSummaryResponse(view.Orders, toOrdersData),
		Earnings:   toSummaryResponse(view.Earnings, toEarningsData),
		Chats:      toSummaryResponse(view.Chats, toChatsData),
	}
}

func toSummaryResponse[T, D any](state dashboard.State[T], convert func(T) D) SummaryResponse[D] {
	resp := SummaryResponse[D]{
		Status:   string(state.Status),
		Cached:   state.Cached,
		Sequence: state.Sequence,
	}
	if !state.UpdatedAt.IsZero() {
		updatedAt := state.UpdatedAt.UTC()
		resp.UpdatedAt = &updatedAt
	}
	if state.Status != dashboard.StatusLoading || state.Cached {
		data := convert(state.Value)
		resp.Data = &data
	}
	if state.Err != nil {
		resp.Error = state.Err.Error()
		resp.ErrorCode = dashboard.ErrorCode(state.Err)
	}
	return resp
}

func toUsersData(s entity.UserVerificationSummary) UsersData {
	return UsersData{
		Total:      s.TotalUsers,
		Verified:   s.VerifiedCount,
		Unverified: s.UnverifiedCount,
	}
}

func toOrdersData(s entity.OrderStatusSummary) OrdersData {
	return OrdersData{
		Pending:   s.Pending,
		Active:    s.Active,
		Shipped:   s.Shipped,
		Delivered: s.Delivered,
		Cancelled: s.Cancelled,
		Total:     s.Total,
	}
}

func toEarningsData(series entity.EarningsSeries) []MonthData {
	months := make([]MonthData, len(series))
	for i, b := range series {
		total, _ := b.Total.Float64()
		months[i] = MonthData{
			Month:   time.Date(b.Year, b.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Label:   b.MonthLabel,
			Total:   total,
			Display: CompactAmount(b.Total),
		}
	}
	return months
}

func toChatsData(s entity.ChatInboxSummary) ChatsData {
	entries := make([]ChatEntry, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = ChatEntry{
			ChatID:        e.ChatID,
			UserID:        e.CounterpartID,
			UserName:      e.CounterpartName,
			LastMessage:   e.LastMessage,
			LastMessageAt: e.LastMessageAt,
			Unread:        e.UnreadCount,
		}
	}
	return ChatsData{
		Total:          s.TotalChats,
		Unread:         s.UnreadChats,
		UnreadMessages: s.UnreadMessages,
		Entries:        entries,
	}
}

// CompactAmount formats an amount for chart labels: 950, 12K, 3.4M, 1.2B.
// Scaled values keep one decimal, trailing zeros are dropped. A value that
// rounds up to the next unit is shown in that unit (999950 is 1M).
func CompactAmount(amount decimal.Decimal) string {
	scaled, suffix := amount.Round(0), ""
	for _, unit := range compactUnits {
		if scaled.Abs().LessThan(thousand) {
			break
		}
		scaled, suffix = amount.Div(unit.size).Round(1), unit.suffix
	}
	return scaled.String() + suffix
}
