package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired is returned when a 401 could not be recovered by a
// token refresh. Views treat it as a forced redirect to the entry route.
var ErrSessionExpired = errors.New("session expired")

// StatusError carries a structured failure from the server: the HTTP
// status, the server-provided message, and optional per-field validation
// errors. A 2xx response with success=false produces a StatusError too.
type StatusError struct {
	Code    int
	Message string
	Fields  map[string]string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned status %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("server returned status %d", e.Code)
}

// IsAuthError reports whether err means the session is missing or the
// caller lacks permission (401/403 or an unrecoverable refresh).
func IsAuthError(err error) bool {
	if errors.Is(err, ErrSessionExpired) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden
	}
	return false
}

// IsRateLimited reports whether err is a transient 429.
func IsRateLimited(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == http.StatusTooManyRequests
}

// FieldErrors extracts per-field validation messages, or nil.
func FieldErrors(err error) map[string]string {
	var se *StatusError
	if errors.As(err, &se) && len(se.Fields) > 0 {
		return se.Fields
	}
	return nil
}

// ServerMessage returns the server-provided message when err carries one,
// otherwise the fallback. Used by views so server wording wins.
func ServerMessage(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return fallback
}

func (e envelope) asError(code int) error {
	if e.Success {
		return nil
	}
	return &StatusError{Code: code, Message: e.Message, Fields: e.Errors}
}
