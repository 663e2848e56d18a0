// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"fmt"
	"time"
)

// monthAbbreviations maps months to English three-letter abbreviations.
var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// String formats the key as YYYY-MM.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// MonthPeriod holds information about a single calendar month bucket.
// PeriodEnd is exclusive: it is the first instant of the following month.
type MonthPeriod struct {
	Key         MonthKey
	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodLabel string
}

// Contains reports whether t falls inside the period.
func (p MonthPeriod) Contains(t time.Time) bool {
	return !t.Before(p.PeriodStart) && t.Before(p.PeriodEnd)
}

// GenerateMonthLabel returns the short label of a month (e.g. "Mar").
func GenerateMonthLabel(month time.Month) string {
	if label, ok := monthAbbreviations[month]; ok {
		return label
	}
	return month.String()
}

// GetMonthKeyForDate returns the month key of t in loc.
func GetMonthKeyForDate(t time.Time, loc *time.Location) MonthKey {
	local := t.In(loc)
	return MonthKey{Year: local.Year(), Month: local.Month()}
}

// GenerateTrailingMonths returns n consecutive month periods ending with the
// month containing now, oldest first. Periods are computed in now's location.
func GenerateTrailingMonths(now time.Time, n int) []MonthPeriod {
	if n <= 0 {
		return []MonthPeriod{}
	}

	loc := now.Location()
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	first := current.AddDate(0, -(n - 1), 0)

	periods := make([]MonthPeriod, 0, n)
	for i := 0; i < n; i++ {
		start := first.AddDate(0, i, 0)
		periods = append(periods, MonthPeriod{
			Key:         MonthKey{Year: start.Year(), Month: start.Month()},
			PeriodStart: start,
			PeriodEnd:   start.AddDate(0, 1, 0),
			PeriodLabel: GenerateMonthLabel(start.Month()),
		})
	}
	return periods
}

// WindowBounds returns the start of the first period and the exclusive end
// of the last one.
func WindowBounds(periods []MonthPeriod) (start, end time.Time) {
	if len(periods) == 0 {
		return time.Time{}, time.Time{}
	}
	return periods[0].PeriodStart, periods[len(periods)-1].PeriodEnd
}
