package monarch

import (
	"errors"

	"github.com/eshaffer321/monarch-insights-go/internal/types"
)

// Sentinel errors surfaced by the client. These are the same values the
// transport layer returns, so errors.Is works across package boundaries.
var (
	ErrNotAuthenticated = types.ErrNotAuthenticated
	ErrMFARequired      = types.ErrMFARequired
	ErrLoginFailed      = types.ErrLoginFailed
	ErrSessionExpired   = types.ErrSessionExpired
	ErrRateLimited      = types.ErrRateLimited
	ErrTimeout          = types.ErrTimeout
	ErrNotFound         = types.ErrNotFound
	ErrServerError      = types.ErrServerError
)

// Error represents an API error
type Error = types.Error

// GraphQLError represents a GraphQL error
type GraphQLError = types.GraphQLError

// GraphQLErrors represents multiple GraphQL errors
type GraphQLErrors = types.GraphQLErrors

// IsAuthError checks if error is authentication related
func IsAuthError(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrMFARequired) ||
		errors.Is(err, ErrLoginFailed) ||
		errors.Is(err, ErrSessionExpired)
}

// IsRetryable checks if error is retryable
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrServerError) {
		return true
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}

	return false
}
