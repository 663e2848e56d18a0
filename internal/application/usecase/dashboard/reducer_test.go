package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
)

func strPtr(s string) *string {
	return &s
}

func userDocs(statuses ...*string) []adapter.Document {
	docs := make([]adapter.Document, len(statuses))
	for i, s := range statuses {
		data := map[string]any{"name": "user"}
		if s != nil {
			data["verificationStatus"] = *s
		}
		docs[i] = adapter.Document{Collection: entity.CollectionUsers, ID: string(rune('a' + i)), Data: data}
	}
	return docs
}

func orderDocs(statuses ...string) []adapter.Document {
	docs := make([]adapter.Document, len(statuses))
	for i, s := range statuses {
		docs[i] = adapter.Document{
			Collection: entity.CollectionOrders,
			ID:         string(rune('a' + i)),
			Data:       map[string]any{"status": s, "grandTotal": 10},
		}
	}
	return docs
}

func TestReduceUserVerification(t *testing.T) {
	t.Run("mixed labels", func(t *testing.T) {
		users := decodeUsers(userDocs(strPtr("Verified"), strPtr("verified "), nil, strPtr("Pending")))

		got := ReduceUserVerification(users)

		want := entity.UserVerificationSummary{TotalUsers: 4, VerifiedCount: 2, UnverifiedCount: 2}
		if got != want {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("empty set", func(t *testing.T) {
		got := ReduceUserVerification(nil)
		if got != (entity.UserVerificationSummary{}) {
			t.Errorf("expected zero summary, got %+v", got)
		}
	})

	t.Run("mistyped label counts as unverified", func(t *testing.T) {
		users := decodeUsers([]adapter.Document{
			{ID: "u1", Data: map[string]any{"verificationStatus": true}},
			{ID: "u2", Data: map[string]any{"verificationStatus": 42}},
		})

		got := ReduceUserVerification(users)

		if got.VerifiedCount != 0 || got.UnverifiedCount != 2 || got.TotalUsers != 2 {
			t.Errorf("expected 0 verified of 2, got %+v", got)
		}
	})
}

func TestReduceUserVerification_CountsAlwaysAddUp(t *testing.T) {
	labels := []*string{nil, strPtr(""), strPtr("verified"), strPtr("VERIFIED"), strPtr(" pending"), strPtr("rejected"), strPtr("Verified\t")}

	// Every prefix of every rotation of the label list.
	for rot := range labels {
		rotated := append(append([]*string{}, labels[rot:]...), labels[:rot]...)
		for n := 0; n <= len(rotated); n++ {
			got := ReduceUserVerification(decodeUsers(userDocs(rotated[:n]...)))
			if got.VerifiedCount+got.UnverifiedCount != got.TotalUsers {
				t.Fatalf("rotation %d, n=%d: %d + %d != %d", rot, n, got.VerifiedCount, got.UnverifiedCount, got.TotalUsers)
			}
			if got.TotalUsers != n {
				t.Fatalf("rotation %d: expected total %d, got %d", rot, n, got.TotalUsers)
			}
		}
	}
}

func TestReduceOrderStatus(t *testing.T) {
	orders := decodeOrders(orderDocs("pending", "Active", "SHIPPED", "delivered", "cancelled", "bogus"))

	got := ReduceOrderStatus(orders)

	want := entity.OrderStatusSummary{Pending: 1, Active: 1, Shipped: 1, Delivered: 1, Cancelled: 1, Total: 6}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestReduceOrderStatus_MissingStatus(t *testing.T) {
	orders := decodeOrders([]adapter.Document{
		{ID: "o1", Data: map[string]any{}},
		{ID: "o2", Data: map[string]any{"status": nil}},
		{ID: "o3", Data: map[string]any{"status": 7}},
		{ID: "o4", Data: map[string]any{"status": "delivered"}},
	})

	got := ReduceOrderStatus(orders)

	if got.Total != 4 {
		t.Errorf("expected total 4, got %d", got.Total)
	}
	if got.Delivered != 1 {
		t.Errorf("expected 1 delivered, got %d", got.Delivered)
	}
	named := got.Pending + got.Active + got.Shipped + got.Delivered + got.Cancelled
	if named != 1 {
		t.Errorf("expected only the delivered order in a named bucket, got %d", named)
	}
}

func TestReducers_IgnoreCaseAndWhitespace(t *testing.T) {
	variants := []func(string) string{
		func(s string) string { return s },
		strings.ToUpper,
		func(s string) string { return "  " + s + "\t" },
		func(s string) string { return strings.ToUpper(s[:1]) + s[1:] + " " },
	}
	statuses := []string{"pending", "active", "shipped", "delivered", "cancelled", "bogus"}

	base := ReduceOrderStatus(decodeOrders(orderDocs(statuses...)))
	baseUsers := ReduceUserVerification(decodeUsers(userDocs(strPtr("verified"), strPtr("pending"))))

	for i, variant := range variants {
		changed := make([]string, len(statuses))
		for j, s := range statuses {
			changed[j] = variant(s)
		}
		if got := ReduceOrderStatus(decodeOrders(orderDocs(changed...))); got != base {
			t.Errorf("variant %d: expected %+v, got %+v", i, base, got)
		}

		users := decodeUsers(userDocs(strPtr(variant("verified")), strPtr(variant("pending"))))
		if got := ReduceUserVerification(users); got != baseUsers {
			t.Errorf("variant %d: expected %+v, got %+v", i, baseUsers, got)
		}
	}
}

func TestReducers_AreDeterministic(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
	docs := []adapter.Document{
		{ID: "o1", Data: map[string]any{"status": "Delivered", "grandTotal": "100.10", "createdAt": now.Format(time.RFC3339)}},
		{ID: "o2", Data: map[string]any{"status": "pending", "grandTotal": 50, "createdAt": now.AddDate(0, -2, 0).Format(time.RFC3339)}},
		{ID: "o3", Data: map[string]any{"status": "delivered", "grandTotal": 12.5, "createdAt": now.AddDate(0, -3, 0).UnixMilli()}},
	}
	snap := adapter.Snapshot{Collection: entity.CollectionOrders, Documents: docs}

	firstOrders := ReduceOrderStatus(decodeOrders(snap.Documents))
	secondOrders := ReduceOrderStatus(decodeOrders(snap.Documents))
	if firstOrders != secondOrders {
		t.Errorf("order summary changed on redelivery: %+v vs %+v", firstOrders, secondOrders)
	}

	cfg := DefaultEarningsConfig()
	first := AggregateEarnings(decodeOrders(snap.Documents), now, cfg)
	second := AggregateEarnings(decodeOrders(snap.Documents), now, cfg)
	if len(first) != len(second) {
		t.Fatalf("series length changed on redelivery: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Year != second[i].Year || first[i].Month != second[i].Month || !first[i].Total.Equal(second[i].Total) {
			t.Errorf("bucket %d changed on redelivery: %+v vs %+v", i, first[i], second[i])
		}
	}
}
