package hotel

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed API call for the view layer.
type ErrorKind int

const (
	// KindService covers transport failures and non-success responses that
	// don't fit a more specific kind.
	KindService ErrorKind = iota
	// KindAuthentication means the login credentials were rejected.
	KindAuthentication
	// KindAuthorization means the session token was missing or rejected on a
	// protected call.
	KindAuthorization
	// KindValidation means the service rejected the request payload.
	KindValidation
)

// Error is a failed call against the remote hotel service. Message carries
// the backend's human-readable text when one was provided; callers surface it
// verbatim and fall back to their own wording when it is empty.
type Error struct {
	Kind    ErrorKind
	Status  int    // HTTP status, 0 on transport failure
	Code    string // backend error code, e.g. "INVALID_INPUT"
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("hotel service returned status %d", e.Status)
	}
	return "hotel service request failed"
}

func kindOf(err error) (ErrorKind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

func IsAuthentication(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindAuthentication
}

func IsAuthorization(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindAuthorization
}

func IsValidation(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindValidation
}

// UserMessage returns the backend's message for err when one exists,
// otherwise the given fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
