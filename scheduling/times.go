package scheduling

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ParseClock validates a time-of-day string and normalizes it to zero-padded
// "HH:MM", the canonical form stored in slot rows. Zero-padded values compare
// correctly as strings, which every range query relies on.
func ParseClock(s string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(clockLayout), nil
		}
	}
	return "", fmt.Errorf("hora inválida %q: se espera HH:MM", s)
}

// TimeSteps walks from start (inclusive) to end (exclusive) in steps of
// intervalMinutes, returning each step as "HH:MM".
func TimeSteps(start, end string, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("el intervalo debe ser mayor a 0")
	}
	from, err := time.Parse(clockLayout, start)
	if err != nil {
		return nil, fmt.Errorf("hora inválida %q: se espera HH:MM", start)
	}
	to, err := time.Parse(clockLayout, end)
	if err != nil {
		return nil, fmt.Errorf("hora inválida %q: se espera HH:MM", end)
	}

	var steps []string
	for cur := from; cur.Before(to); cur = cur.Add(time.Duration(intervalMinutes) * time.Minute) {
		steps = append(steps, cur.Format(clockLayout))
	}
	return steps, nil
}
