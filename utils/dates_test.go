package utils

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now, "just now"},
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-time.Minute), "1m ago"},
		{now.Add(-59 * time.Minute), "59m ago"},
		{now.Add(-time.Hour), "1h ago"},
		{now.Add(-23 * time.Hour), "23h ago"},
		{now.Add(-24 * time.Hour), "Aug 9, 2026"},
		{now.AddDate(0, -2, 0), "Jun 10, 2026"},
	}
	for _, tc := range cases {
		if got := TimeAgo(tc.at, now); got != tc.want {
			t.Fatalf("TimeAgo(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestDayHelpers(t *testing.T) {
	at := time.Date(2026, 8, 10, 18, 45, 12, 0, time.UTC)
	if got := DayString(at); got != "2026-08-10" {
		t.Fatalf("DayString = %q", got)
	}
	if got := BeginningOfDay(at); !got.Equal(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("BeginningOfDay = %v", got)
	}
	if got := EndOfDay(at); !got.Equal(time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("EndOfDay = %v", got)
	}
	if got := DaysBetween(at, at.AddDate(0, 0, 3)); got != 3 {
		t.Fatalf("DaysBetween = %d", got)
	}
}

func TestNormalizeClientName(t *testing.T) {
	cases := map[string]string{
		"Alice":        "alice",
		"  Dana  Lee ": "dana lee",
		"ALICE":        "alice",
		"":             "",
	}
	for in, want := range cases {
		if got := NormalizeClientName(in); got != want {
			t.Fatalf("NormalizeClientName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+15551234567", "0171 2345678", "(030) 123-4567"}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Fatalf("expected %q to validate", p)
		}
	}
	invalid := []string{"", "abc", "12"}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Fatalf("expected %q to be rejected", p)
		}
	}
}
