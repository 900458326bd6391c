package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNoRows is returned when a single-row query matches nothing, or a
// write touches no rows.
var ErrNoRows = errors.New("no rows returned")

// ErrMultipleRows is returned when a single-row query matches more than
// one row. The store guarantees id uniqueness, so this signals a
// violated invariant rather than a routine miss.
var ErrMultipleRows = errors.New("multiple rows returned")

// Error is a failure reported by the remote service.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("store: %s (status %d)", e.Message, e.Status)
}

// newError builds an Error from a non-2xx response body. The service
// reports failures as JSON with a message field; anything else falls
// back to the raw body or the status text.
func newError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		ErrText string `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Msg != "":
			msg = payload.Msg
		case payload.ErrText != "":
			msg = payload.ErrText
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Status: status, Message: msg}
}
