package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// BackendError is a failed call to the gym backend: transport failures carry
// Status 0, HTTP failures the response status.
type BackendError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *BackendError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend %s %s: %s", e.Method, e.Path, e.Message)
	}
	return fmt.Sprintf("backend %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *BackendError) Unwrap() error { return e.Err }

// IsBackendError reports whether err carries a BackendError and returns it.
func IsBackendError(err error) (*BackendError, bool) {
	var be *BackendError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// errorMessage pulls a human message out of an error body. The backend answers
// with {"message": ...} or {"error": ...}; message may also be a list.
func errorMessage(body []byte) string {
	var payload struct {
		Message json.RawMessage `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if len(payload.Message) > 0 {
			var s string
			if json.Unmarshal(payload.Message, &s) == nil && s != "" {
				return s
			}
			var list []string
			if json.Unmarshal(payload.Message, &list) == nil && len(list) > 0 {
				return strings.Join(list, "; ")
			}
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
