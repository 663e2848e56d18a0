// Package error defines domain-specific errors for the admin dashboard.
package error

import "errors"

// Change feed domain errors.
var (
	// ErrFeedUnavailable is returned when the document store cannot be reached.
	ErrFeedUnavailable = errors.New("change feed unavailable")

	// ErrFeedPermissionDenied is returned when the store rejects the query.
	ErrFeedPermissionDenied = errors.New("change feed permission denied")

	// ErrUnknownCollection is returned when a query targets a collection the feed does not serve.
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrSubscriptionClosed is returned when an operation targets a closed subscription.
	ErrSubscriptionClosed = errors.New("subscription closed")
)

// FeedErrorCode defines error codes for change feed errors.
// Format: FEED-XXYYYY where XX is category and YYYY is specific error.
type FeedErrorCode string

const (
	// Transport errors (01XXXX)
	ErrCodeFeedUnavailable FeedErrorCode = "FEED-010001"
	ErrCodeFeedLoadFailed  FeedErrorCode = "FEED-010002"
	ErrCodeNotifierFailed  FeedErrorCode = "FEED-010003"

	// Permission errors (02XXXX)
	ErrCodeFeedPermissionDenied FeedErrorCode = "FEED-020001"

	// Internal errors (99XXXX)
	ErrCodeFeedInternalError FeedErrorCode = "FEED-990001"
)

// FeedError represents a change feed failure with code and message.
type FeedError struct {
	Code    FeedErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FeedError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FeedError) Unwrap() error {
	return e.Err
}

// NewFeedError creates a new FeedError with the given code and message.
func NewFeedError(code FeedErrorCode, message string, err error) *FeedError {
	return &FeedError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
