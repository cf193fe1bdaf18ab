package core

import (
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is returned by local (form) validation. It never reaches the network layer.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	msgs := make([]string, 0, len(err.Fields))
	for _, fld := range err.Fields {
		msgs = append(msgs, fld.Field+": "+fld.Error)
	}
	return strings.Join(msgs, "; ")
}

// Field returns the message reported for fld, if any.
func (err ValidationError) Field(fld string) (string, bool) {
	for _, fErr := range err.Fields {
		if fErr.Field == fld {
			return fErr.Error, true
		}
	}
	return "", false
}

// PolicyError is a domain rule refusal decided client-side (eg. deleting a classroom with students).
type PolicyError struct {
	Title   string
	Message string
}

func NewPolicyError(title, msg string) error {
	return &PolicyError{Title: title, Message: msg}
}

func (err PolicyError) Error() string {
	return err.Message
}

// UserMessager is implemented by errors that carry a message fit to be shown as is.
type UserMessager interface {
	UserMessage() string
}

// Notify converts err into the one-line message shown to the user.
// fallback is used when err carries nothing presentable; GenericErrorMsg when fallback is empty.
func Notify(err error, fallback ...string) string {
	if err == nil {
		return ""
	}
	msg := GenericErrorMsg
	if len(fallback) > 0 && fallback[0] != "" {
		msg = fallback[0]
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	var pErr *PolicyError
	if errors.As(err, &pErr) {
		return pErr.Message
	}
	var uMsg UserMessager
	if errors.As(err, &uMsg) {
		if m := uMsg.UserMessage(); m != "" {
			return m
		}
	}
	return msg
}

// shutdown is an error asking the running server to stop gracefully.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
