package timeutil

import (
	"errors"
	"fmt"
	"regexp"
)

// MinutesPerDay is the number of minutes addressable within one clinic day.
const MinutesPerDay = 24 * 60

var timeRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var ErrInvalidTime = errors.New("invalid time format, expected HH:mm")

// ToMinutes converts an "HH:mm" string to its minute offset within the day.
func ToMinutes(t string) (int, error) {
	if !timeRegex.MatchString(t) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(t, "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}

	return hours*60 + minutes, nil
}

// FromMinutes formats a minute offset as a zero-padded "HH:mm" string.
// The offset must stay within a single day.
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutes shifts an "HH:mm" time forward, rolling minutes into the hour.
func AddMinutes(t string, delta int) (string, error) {
	m, err := ToMinutes(t)
	if err != nil {
		return "", err
	}
	return FromMinutes(m + delta), nil
}

// Overlaps reports whether the half-open ranges [s1,e1) and [s2,e2)
// intersect. Touching endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && s2 < e1
}
