package domain

import (
	"fmt"
)

// AuthError indicates a missing, placeholder, or rejected API credential.
// It is never retried and short-circuits dependent calls.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "invalid API key"
	}
	return "invalid API key: " + e.Reason
}

// LocationNotFoundError indicates a place-name lookup that matched nothing.
type LocationNotFoundError struct {
	Query string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("location not found: %q", e.Query)
}

// NoResultsError indicates a geocoding query that returned zero suggestions.
type NoResultsError struct {
	Query string
}

func (e *NoResultsError) Error() string {
	return fmt.Sprintf("no places found matching %q", e.Query)
}

// RateLimitError indicates the provider rejected the call with HTTP 429.
// No automatic backoff is attempted.
type RateLimitError struct{}

func (e *RateLimitError) Error() string {
	return "rate limited by provider, try again later"
}

// NetworkError wraps a transport-level failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError indicates a provider call exceeded the per-request timeout.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	if e.Err == nil {
		return "request timed out"
	}
	return "request timed out: " + e.Err.Error()
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// ProviderError is a generic non-2xx provider response that does not map
// to a more specific error kind.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider error: status %d", e.Status)
	}
	return fmt.Sprintf("provider error: status %d: %s", e.Status, e.Message)
}
