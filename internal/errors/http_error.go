package errors

import "fmt"

// HTTPError is a non-success backend response carrying the JSON message
// body, when one was present. The message is surfaced verbatim to the user.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.Code)
	}
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// UserMessage returns the server-provided reason from err when it is an
// HTTPError with a message body, fallback otherwise. Transport errors never
// leak internals to the user.
func UserMessage(err error, fallback string) string {
	if he, ok := err.(*HTTPError); ok && he.Message != "" {
		return he.Message
	}
	return fallback
}
