// Package dashboard contains the real-time aggregation view-model behind the admin dashboard.
package dashboard

import (
	"github.com/technest/admin-dashboard/internal/domain/entity"
)

// ReduceUserVerification counts verified and unverified users in one pass.
func ReduceUserVerification(users []entity.User) entity.UserVerificationSummary {
	summary := entity.UserVerificationSummary{TotalUsers: len(users)}
	for _, u := range users {
		if u.IsVerified() {
			summary.VerifiedCount++
		} else {
			summary.UnverifiedCount++
		}
	}
	return summary
}

// ReduceOrderStatus counts orders per recognized status in one pass.
// Unrecognized and missing statuses only count toward Total; there is
// deliberately no "other" bucket.
func ReduceOrderStatus(orders []entity.Order) entity.OrderStatusSummary {
	summary := entity.OrderStatusSummary{Total: len(orders)}
	for _, o := range orders {
		switch o.NormalizedStatus() {
		case entity.OrderStatusPending:
			summary.Pending++
		case entity.OrderStatusActive:
			summary.Active++
		case entity.OrderStatusShipped:
			summary.Shipped++
		case entity.OrderStatusDelivered:
			summary.Delivered++
		case entity.OrderStatusCancelled:
			summary.Cancelled++
		}
	}
	return summary
}
