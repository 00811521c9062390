// Package datetime holds the date and clock formats shared by the booking flow.
//
// Calendar dates travel as bare YYYY-MM-DD strings. They are always materialised at
// local noon so that rendering them in any UTC offset between -12 and +14 keeps the
// same calendar day.
package datetime

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout         = "2006-01-02"
	ClockLayout        = "15:04"
	WireDateTimeLayout = "2006-01-02T15:04:05"
	DisplayLayout      = "Monday, 02 Jan 2006 15:04"
)

const neutralHour = 12

// ParseDate parses a YYYY-MM-DD value in the local time zone.
func ParseDate(raw string) (time.Time, error) {
	return ParseDateIn(raw, time.Local)
}

// ParseDateIn parses a YYYY-MM-DD value and anchors it at noon in loc. Only the first
// ten characters are significant, so full timestamps are accepted as well.
func ParseDateIn(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	prefix := DatePrefix(strings.TrimSpace(raw))
	parsed, err := time.Parse(DateLayout, prefix)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), neutralHour, 0, 0, 0, loc), nil
}

// FormatDate renders the calendar day of t in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DatePrefix returns the significant YYYY-MM-DD part of a stored date.
func DatePrefix(raw string) string {
	if len(raw) > len(DateLayout) {
		return raw[:len(DateLayout)]
	}
	return raw
}

// FormatClock renders t as a zero padded HH:MM string.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatWireDateTime renders t as a naive local date-time with seconds precision.
func FormatWireDateTime(t time.Time) string {
	return t.Format(WireDateTimeLayout)
}

// FormatDisplay renders t for notifications.
func FormatDisplay(t time.Time) string {
	return t.Format(DisplayLayout)
}

// ParseWireDateTime accepts the wire layout as well as RFC 3339 input.
func ParseWireDateTime(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(WireDateTimeLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", raw, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date-time %q", raw)
	}
	return t.In(loc), nil
}

// NormalizeClock turns H:MM, HH:MM and HH:MM:SS into a zero padded HH:MM string.
// String comparison of normalised values orders them by time of day.
func NormalizeClock(raw string) (string, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	hour, err := clockPart(parts[0], 23)
	if err != nil {
		return "", fmt.Errorf("invalid hour in %q", raw)
	}
	if len(parts[1]) != 2 {
		return "", fmt.Errorf("invalid minutes in %q", raw)
	}
	minute, err := clockPart(parts[1], 59)
	if err != nil {
		return "", fmt.Errorf("invalid minutes in %q", raw)
	}
	if len(parts) == 3 {
		if len(parts[2]) != 2 {
			return "", fmt.Errorf("invalid seconds in %q", raw)
		}
		if _, err := clockPart(parts[2], 59); err != nil {
			return "", fmt.Errorf("invalid seconds in %q", raw)
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// ClockMinutes converts a normalised HH:MM string to minutes since midnight.
func ClockMinutes(clock string) (int, error) {
	normalized, err := NormalizeClock(clock)
	if err != nil {
		return 0, err
	}
	hour, _ := strconv.Atoi(normalized[:2])
	minute, _ := strconv.Atoi(normalized[3:])
	return hour*60 + minute, nil
}

// MinutesClock is the inverse of ClockMinutes.
func MinutesClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func clockPart(raw string, max int) (int, error) {
	if raw == "" || len(raw) > 2 {
		return 0, fmt.Errorf("out of range")
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, fmt.Errorf("not a number")
		}
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > max {
		return 0, fmt.Errorf("out of range")
	}
	return v, nil
}
