// Package error defines domain-specific errors for the admin dashboard.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrInvalidWindow is returned when the earnings window is smaller than one month.
	ErrInvalidWindow = errors.New("earnings window must be at least one month")

	// ErrMissingTargetStatus is returned when the earnings status filter is empty.
	ErrMissingTargetStatus = errors.New("earnings target status is required")

	// ErrInvalidFocusPayload is returned when a focus request cannot be parsed.
	ErrInvalidFocusPayload = errors.New("invalid focus payload")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidWindow       DashboardErrorCode = "DSH-010001"
	ErrCodeMissingTargetStatus DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidFocusPayload DashboardErrorCode = "DSH-010003"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
