// Package schedule holds the wall-clock arithmetic for recurring availability:
// time-of-day parsing, 12-hour slot labels and half-open interval overlap.
// All times are time-zone naive "15:04:05" strings; after normalization they
// compare correctly as plain strings.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

const (
	ClockLayout = "15:04:05"
	LabelLayout = "3:04 PM"

	labelSep = " - "
)

// ParseClock accepts "15:04:05" or "15:04" and returns the canonical
// zero-padded "15:04:05" form.
func ParseClock(s string) (string, error) {
	const op = "schedule.ParseClock"

	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		t, err = time.Parse("15:04", s)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	return t.Format(ClockLayout), nil
}

// Format12 renders a canonical clock as "3:04 PM".
func Format12(clock string) (string, error) {
	const op = "schedule.Format12"

	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return t.Format(LabelLayout), nil
}

// Label builds the bookable slot label, e.g. "10:00 AM - 12:00 PM".
func Label(start, end string) (string, error) {
	const op = "schedule.Label"

	s, err := Format12(start)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	e, err := Format12(end)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return s + labelSep + e, nil
}

// ParseLabel splits "H:MM AM/PM - H:MM AM/PM" back into canonical 24-hour
// start and end clocks.
func ParseLabel(label string) (start, end string, err error) {
	const op = "schedule.ParseLabel"

	parts := strings.Split(label, labelSep)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%s: malformed label %q", op, label)
	}

	st, err := time.Parse(LabelLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	et, err := time.Parse(LabelLayout, strings.TrimSpace(parts[1]))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return st.Format(ClockLayout), et.Format(ClockLayout), nil
}

// AddHours advances a canonical clock by whole hours. Overnight wraparound is
// not supported: a result past midnight is an error.
func AddHours(clock string, hours int) (string, error) {
	const op = "schedule.AddHours"

	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	h := t.Hour() + hours
	if h > 24 || (h == 24 && (t.Minute() != 0 || t.Second() != 0)) {
		return "", fmt.Errorf("%s: %02d:%02d runs past midnight", op, t.Hour(), t.Minute())
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, t.Minute(), t.Second()), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// TruncateToDate drops the time-of-day component in the given location.
func TruncateToDate(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
