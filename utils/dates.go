// utils/dates.go
package utils

import (
	"fmt"
	"time"
)

const DayLayout = "2006-01-02"

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// DayString formats a timestamp as the calendar-day key stored on ledger
// rows ("2006-01-02", salon-local).
func DayString(t time.Time) string {
	return t.Format(DayLayout)
}

func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(end.Sub(start).Hours() / 24)
}

// TimeAgo renders an event timestamp relative to now: "just now" under a
// minute, minutes under an hour, hours under a day, then the plain date.
// Both timestamps come from the server, so the label is deterministic.
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
