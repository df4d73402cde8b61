package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a provider failure. Callers use the classification
// to decide between credential rotation, provider rotation, and aborting.
type ErrorKind int

const (
	// ErrorRateLimited marks 429-class responses. Retried with rotation
	// and backoff.
	ErrorRateLimited ErrorKind = iota + 1

	// ErrorAuth marks invalid or rejected credentials. Never retried on
	// the same provider.
	ErrorAuth

	// ErrorTransient marks network failures and 5xx responses. Retried
	// without rotation.
	ErrorTransient

	// ErrorMalformed marks responses the normalizer could not bound to a
	// JSON object.
	ErrorMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorRateLimited:
		return "rate_limited"
	case ErrorAuth:
		return "auth"
	case ErrorTransient:
		return "transient"
	case ErrorMalformed:
		return "malformed"
	}
	return "unknown"
}

// Error is a classified provider failure.
type Error struct {
	Kind     ErrorKind
	Provider Kind
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (%d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrUnconfigured is returned when a provider has no credentials at all.
var ErrUnconfigured = errors.New("provider not configured")

// classifyStatus maps a non-success HTTP status to a classified error.
func classifyStatus(provider Kind, status int, body string) error {
	kind := ErrorTransient
	switch {
	case status == http.StatusTooManyRequests:
		kind = ErrorRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ErrorAuth
	case status >= 500:
		kind = ErrorTransient
	default:
		// 4xx other than auth/rate-limit: the request itself is bad.
		return &Error{
			Kind:     ErrorMalformed,
			Provider: provider,
			Status:   status,
			Err:      fmt.Errorf("unexpected API response: %s", truncateBody(body)),
		}
	}
	return &Error{
		Kind:     kind,
		Provider: provider,
		Status:   status,
		Err:      fmt.Errorf("API error: %s", truncateBody(body)),
	}
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind ErrorKind) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Kind == kind
}

// IsRateLimited reports whether err is a 429-class failure.
func IsRateLimited(err error) bool { return IsKind(err, ErrorRateLimited) }

// IsAuth reports whether err is a credential failure.
func IsAuth(err error) bool { return IsKind(err, ErrorAuth) }

// IsTransient reports whether err is a network/5xx failure.
func IsTransient(err error) bool { return IsKind(err, ErrorTransient) }

func truncateBody(body string) string {
	const max = 300
	if len(body) > max {
		return body[:max] + "..."
	}
	return body
}
