package session

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/jogaaurora/aurora/core"
)

// LoginError is the structured result of a failed login. Callers render Message.
type LoginError struct {
	Status  int
	Message string
	Err     error
}

func (e *LoginError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *LoginError) Unwrap() error { return e.Err }

func (e *LoginError) UserMessage() string { return e.Message }

// statusCoder is implemented by HTTP response errors.
type statusCoder interface {
	StatusCode() int
}

func newLoginError(err error) *LoginError {
	lErr := &LoginError{Err: err}

	var vErr *core.ValidationError
	var sc statusCoder
	switch {
	case errors.As(err, &vErr):
		lErr.Message = vErr.Error()
	case errors.As(err, &sc) && sc.StatusCode() == http.StatusUnauthorized:
		lErr.Status = http.StatusUnauthorized
		lErr.Message = core.UnauthorizedMsg
	default:
		if sc != nil {
			lErr.Status = sc.StatusCode()
		}
		lErr.Message = core.Notify(err, core.LoginErrorMsg)
	}
	return lErr
}
