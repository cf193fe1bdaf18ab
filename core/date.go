package core

import (
	"bytes"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// DateLayout is the backend date format (yyyy-MM-dd).
const DateLayout = "2006-01-02"

var nullJSON = []byte("null")

// Date is a calendar date exchanged as "yyyy-MM-dd".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock part of t, keeping its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "yyyy-MM-dd" string. Datetime strings are truncated to their date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errors.Wrapf(err, "parsing date %q", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Locale renders d the way pt-BR readers expect (dd/MM/yyyy).
func (d Date) Locale() string {
	if d.IsZero() {
		return "-"
	}
	return d.Format("02/01/2006")
}

func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return nullJSON, nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, nullJSON) || bytes.Equal(data, []byte(`""`)) {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FormatDate renders t as "yyyy-MM-dd", or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
