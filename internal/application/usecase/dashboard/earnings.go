// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/entity"
	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

const (
	// DefaultEarningsWindow is the number of months shown in the earnings chart.
	DefaultEarningsWindow = 6
	// DefaultEarningsStatus is the order status whose totals count as earnings.
	DefaultEarningsStatus = "delivered"
)

// EarningsConfig configures the month-bucket aggregator.
type EarningsConfig struct {
	WindowMonths int
	TargetStatus string
}

// DefaultEarningsConfig returns the reference configuration: six months of delivered orders.
func DefaultEarningsConfig() EarningsConfig {
	return EarningsConfig{
		WindowMonths: DefaultEarningsWindow,
		TargetStatus: DefaultEarningsStatus,
	}
}

// Validate checks the configuration.
func (c EarningsConfig) Validate() error {
	if c.WindowMonths < 1 {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidWindow,
			"earnings window must be at least one month",
			domainerror.ErrInvalidWindow,
		)
	}
	if strings.TrimSpace(c.TargetStatus) == "" {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingTargetStatus,
			"earnings target status is required",
			domainerror.ErrMissingTargetStatus,
		)
	}
	return nil
}

// AggregateEarnings sums the grand totals of orders matching the target
// status into the trailing window of calendar months ending at now.
//
// Orders created outside the window, orders without a creation instant and
// non-positive amounts contribute nothing. The full bucket list is returned
// even when every total is zero.
func AggregateEarnings(orders []entity.Order, now time.Time, cfg EarningsConfig) entity.EarningsSeries {
	periods := GenerateTrailingMonths(now, cfg.WindowMonths)
	target := entity.NormalizeStatus(cfg.TargetStatus)

	totals := make(map[MonthKey]decimal.Decimal, len(periods))
	for _, p := range periods {
		totals[p.Key] = decimal.Zero
	}
	windowStart, windowEnd := WindowBounds(periods)

	for _, o := range orders {
		if o.NormalizedStatus() != target {
			continue
		}
		if !o.GrandTotal.IsPositive() || o.CreatedAt == nil {
			continue
		}
		created := *o.CreatedAt
		if created.Before(windowStart) || !created.Before(windowEnd) {
			continue
		}
		key := GetMonthKeyForDate(created, now.Location())
		totals[key] = totals[key].Add(o.GrandTotal)
	}

	series := make(entity.EarningsSeries, 0, len(periods))
	for _, p := range periods {
		series = append(series, entity.EarningsBucket{
			Year:       p.Key.Year,
			Month:      p.Key.Month,
			MonthLabel: p.PeriodLabel,
			Total:      totals[p.Key],
		})
	}
	return series
}

// EarningsQuery returns the feed query backing the earnings series. It
// over-fetches one month before the window so that a subscription opened near
// a month boundary still covers the displayed range.
func EarningsQuery(now time.Time, cfg EarningsConfig) adapter.Query {
	start, _ := WindowBounds(GenerateTrailingMonths(now, cfg.WindowMonths))
	return adapter.Query{
		Collection: entity.CollectionOrders,
		Filters: []adapter.Filter{
			{Field: fieldCreatedAt, Op: adapter.FilterGreaterOrEqual, Value: start.AddDate(0, -1, 0)},
		},
	}
}
