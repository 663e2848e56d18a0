package feed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
)

func TestMatches(t *testing.T) {
	created := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	doc := adapter.Document{ID: "o1", Data: map[string]any{
		"status":     "Delivered ",
		"grandTotal": json.Number("150.25"),
		"createdAt":  created.Format(time.RFC3339),
		"paid":       true,
		"note":       nil,
	}}

	tests := []struct {
		name    string
		filters []adapter.Filter
		want    bool
	}{
		{name: "no filters", want: true},
		{
			name:    "status equal ignores case and whitespace",
			filters: []adapter.Filter{{Field: "status", Op: adapter.FilterEqual, Value: "delivered"}},
			want:    true,
		},
		{
			name:    "status mismatch",
			filters: []adapter.Filter{{Field: "status", Op: adapter.FilterEqual, Value: "pending"}},
			want:    false,
		},
		{
			name: "created inside range",
			filters: []adapter.Filter{
				{Field: "createdAt", Op: adapter.FilterGreaterOrEqual, Value: created},
				{Field: "createdAt", Op: adapter.FilterLessThan, Value: created.AddDate(0, 1, 0)},
			},
			want: true,
		},
		{
			name:    "created before lower bound",
			filters: []adapter.Filter{{Field: "createdAt", Op: adapter.FilterGreaterOrEqual, Value: created.Add(time.Second)}},
			want:    false,
		},
		{
			name:    "numeric comparison",
			filters: []adapter.Filter{{Field: "grandTotal", Op: adapter.FilterGreaterOrEqual, Value: 150}},
			want:    true,
		},
		{
			name:    "numeric upper bound is exclusive",
			filters: []adapter.Filter{{Field: "grandTotal", Op: adapter.FilterLessThan, Value: 150.25}},
			want:    false,
		},
		{
			name:    "bool equality",
			filters: []adapter.Filter{{Field: "paid", Op: adapter.FilterEqual, Value: true}},
			want:    true,
		},
		{
			name:    "bool ordering is unsupported",
			filters: []adapter.Filter{{Field: "paid", Op: adapter.FilterGreaterOrEqual, Value: true}},
			want:    false,
		},
		{
			name:    "missing field never matches",
			filters: []adapter.Filter{{Field: "paymentMethod", Op: adapter.FilterEqual, Value: "card"}},
			want:    false,
		},
		{
			name:    "null field never matches",
			filters: []adapter.Filter{{Field: "note", Op: adapter.FilterEqual, Value: "x"}},
			want:    false,
		},
		{
			name:    "type mismatch never matches",
			filters: []adapter.Filter{{Field: "status", Op: adapter.FilterGreaterOrEqual, Value: 1}},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matches(doc, tt.filters); got != tt.want {
				t.Errorf("matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
