package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoSession is returned before any request is sent when the session has
// no bearer token. Callers send the user to the login surface.
var ErrNoSession = errors.New("api: no session token")

var (
	ErrBodyTooLarge = errors.New("response body too large")
	ErrInvalidJSON  = errors.New("response body is not JSON")
)

// Error is a transport failure or a non-2xx answer from the fines API.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("api: %v", e.Err)
	case e.Message != "":
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the server supplied message carried by err, or fallback.
func Message(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && strings.TrimSpace(ae.Message) != "" {
		return ae.Message
	}
	return fallback
}

func messageFrom(body []byte) string {
	var v struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return ""
	}
	if s, ok := v.Message.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
