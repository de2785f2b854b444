// ABOUTME: Calendar-date parsing and normalization for progress aggregation.
// ABOUTME: Dates compare by day only; time-of-day and zone are discarded.
package progress

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/hoplit/internal/models"
)

var (
	// ErrInvalidInput is returned for inputs a function cannot work with.
	ErrInvalidInput = errors.New("invalid input")
	// ErrParse is wrapped by every ParseError.
	ErrParse = errors.New("parse error")
)

// ParseError reports a log date that is not a YYYY-MM-DD calendar date.
type ParseError struct {
	Input string
	LogID string
	Err   error
}

func (e *ParseError) Error() string {
	if e.LogID != "" {
		return fmt.Sprintf("log %s: malformed date %q: %v", e.LogID, e.Input, e.Err)
	}
	return fmt.Sprintf("malformed date %q: %v", e.Input, e.Err)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseDate parses an ISO calendar date, dropping anything from 'T' on.
// The result is midnight UTC of that date.
func ParseDate(s string) (time.Time, error) {
	day, _, _ := strings.Cut(strings.TrimSpace(s), "T")
	t, err := time.Parse(models.DateLayout, day)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

// DateOf returns the calendar date of t, read in t's own location, as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}
