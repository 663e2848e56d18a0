package dashboard

import (
	"errors"

	domainerror "github.com/technest/admin-dashboard/internal/domain/error"
)

// ErrorCode returns the domain code carried by a summary failure, or "" when
// the failure has none.
func ErrorCode(err error) string {
	var feedErr *domainerror.FeedError
	if errors.As(err, &feedErr) {
		return string(feedErr.Code)
	}
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		return string(dashErr.Code)
	}
	return ""
}
