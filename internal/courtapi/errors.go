package courtapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is returned by every Client call that fails, whatever the cause:
// transport failure, non-2xx status, or an unreadable payload.
type Error struct {
	// Op names the failed operation.
	Op string
	// Status is the HTTP status code, zero when no response was received.
	Status int
	// Message is a human-readable description, possibly empty.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	default:
		return e.Op + ": request failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MessageOf extracts the human-readable message carried by err.
// It returns an empty string when err carries none.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return strings.TrimSpace(apiErr.Message)
	}
	return strings.TrimSpace(err.Error())
}

// backendMessage pulls a message out of an error body such as
// {"message": "..."} or {"error": "..."}.
func backendMessage(data []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	var text string
	if err := json.Unmarshal(body.Error, &text); err == nil {
		return strings.TrimSpace(text)
	}
	return ""
}
