package classroom

import (
	"strings"

	"github.com/pkg/errors"
)

// Status is an attendance status label, as shown to users.
type Status string

// StatusCode is the backend representation of a Status.
type StatusCode string

const (
	Present Status = "Presente"
	Late    Status = "Atrasado"
	Absent  Status = "Ausente"

	CodePresent StatusCode = "P"
	CodeLate    StatusCode = "L"
	CodeAbsent  StatusCode = "A"
)

var Statuses = []Status{Present, Late, Absent}

var ErrUnknownStatus = errors.New("unknown attendance status")

// ToBackendStatus maps a label to its code.
func ToBackendStatus(s Status) (StatusCode, error) {
	switch s {
	case Present:
		return CodePresent, nil
	case Late:
		return CodeLate, nil
	case Absent:
		return CodeAbsent, nil
	}
	return "", errors.Wrapf(ErrUnknownStatus, "%q", s)
}

// ToFrontendStatus maps a code to its label. Unknown codes read as Present.
func ToFrontendStatus(code StatusCode) Status {
	switch code {
	case CodeLate:
		return Late
	case CodeAbsent:
		return Absent
	default:
		return Present
	}
}

// ParseStatus accepts either a label or a code, case insensitively.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	switch StatusCode(strings.ToUpper(s)) {
	case CodePresent, CodeLate, CodeAbsent:
		return ToFrontendStatus(StatusCode(strings.ToUpper(s))), nil
	}
	return "", errors.Wrapf(ErrUnknownStatus, "%q", s)
}
