// Package period provides helpers for the calendar-month period key
// that scopes budgets and expenses ("2026-08").
package period

import (
	"fmt"
	"time"
)

// Layout is the period key time layout.
const Layout = "2006-01"

// KeyFor returns the period key for the month containing t.
func KeyFor(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Current returns the period key for the current month.
func Current() string {
	return KeyFor(time.Now())
}

// Parse validates a period key and returns the first instant of that month.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(Layout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid period key %q: %w", key, err)
	}
	return t, nil
}
