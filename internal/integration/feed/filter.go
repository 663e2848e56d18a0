package feed

import (
	"strings"
	"time"

	"github.com/technest/admin-dashboard/internal/application/adapter"
	"github.com/technest/admin-dashboard/internal/domain/valueobject"
)

// matches reports whether the document satisfies every filter. A document
// missing a filtered field never matches.
func matches(doc adapter.Document, filters []adapter.Filter) bool {
	for _, f := range filters {
		value, ok := doc.Data[f.Field]
		if !ok || value == nil {
			return false
		}
		if !compare(value, f.Op, f.Value) {
			return false
		}
	}
	return true
}

// compare applies op to a document value and a filter operand. The operand's
// type decides how the document value is read: instants compare as time,
// numbers as decimals, strings case-insensitively.
func compare(value any, op adapter.FilterOp, operand any) bool {
	switch want := operand.(type) {
	case time.Time:
		got, ok := valueobject.AsTime(value)
		if !ok {
			return false
		}
		return ordered(got.Compare(want), op)
	case string:
		got, ok := value.(string)
		if !ok {
			return false
		}
		a := strings.ToLower(strings.TrimSpace(got))
		b := strings.ToLower(strings.TrimSpace(want))
		return ordered(strings.Compare(a, b), op)
	case bool:
		got, ok := value.(bool)
		return ok && op == adapter.FilterEqual && got == want
	default:
		limit, ok := valueobject.AsDecimal(operand)
		if !ok {
			return false
		}
		got, ok := valueobject.AsDecimal(value)
		if !ok {
			return false
		}
		return ordered(got.Cmp(limit), op)
	}
}

func ordered(cmp int, op adapter.FilterOp) bool {
	switch op {
	case adapter.FilterEqual:
		return cmp == 0
	case adapter.FilterGreaterOrEqual:
		return cmp >= 0
	case adapter.FilterLessThan:
		return cmp < 0
	default:
		return false
	}
}

func validOp(op adapter.FilterOp) bool {
	switch op {
	case adapter.FilterEqual, adapter.FilterGreaterOrEqual, adapter.FilterLessThan:
		return true
	default:
		return false
	}
}
