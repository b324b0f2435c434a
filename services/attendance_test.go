package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"salonops-backend/store"
)

func newAttendanceFixture() (*AttendanceService, *store.MemoryAttendance, uuid.UUID) {
	records := store.NewMemoryAttendance()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewAttendanceService(records, log), records, uuid.New()
}

func TestClockInAndOut(t *testing.T) {
	svc, _, salonID := newAttendanceFixture()
	staffID := uuid.New()
	in := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	rec, err := svc.ClockIn(staffID, "Maria", salonID, in)
	if err != nil {
		t.Fatalf("ClockIn failed: %v", err)
	}
	if !rec.Open() {
		t.Fatal("expected an open record")
	}
	if rec.Date != "2026-08-10" {
		t.Fatalf("date = %q", rec.Date)
	}

	duration, err := svc.ClockOut(rec.ID, in.Add(7*time.Hour+30*time.Minute))
	if err != nil {
		t.Fatalf("ClockOut failed: %v", err)
	}
	if duration != 7.5 {
		t.Fatalf("duration = %v, want 7.5", duration)
	}
}

func TestClockInWhileOpen(t *testing.T) {
	svc, _, salonID := newAttendanceFixture()
	staffID := uuid.New()
	now := time.Now()

	if _, err := svc.ClockIn(staffID, "Maria", salonID, now); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ClockIn(staffID, "Maria", salonID, now.Add(time.Minute)); !errors.Is(err, ErrAlreadyClockedIn) {
		t.Fatalf("expected ErrAlreadyClockedIn, got %v", err)
	}

	// A different staff member is unaffected.
	if _, err := svc.ClockIn(uuid.New(), "Nina", salonID, now); err != nil {
		t.Fatalf("second staff clock-in failed: %v", err)
	}
}

func TestClockOutMisuse(t *testing.T) {
	svc, _, salonID := newAttendanceFixture()
	now := time.Now()

	if _, err := svc.ClockOut(uuid.New(), now); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	rec, err := svc.ClockIn(uuid.New(), "Maria", salonID, now)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ClockOut(rec.ID, now.Add(time.Hour)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ClockOut(rec.ID, now.Add(2*time.Hour)); !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}
}

// Clock skew can put the clock-out before the clock-in. The close still
// happens and the duration clamps to zero instead of going negative.
func TestClockOutSkewClampsToZero(t *testing.T) {
	svc, records, salonID := newAttendanceFixture()
	in := time.Now()

	rec, err := svc.ClockIn(uuid.New(), "Maria", salonID, in)
	if err != nil {
		t.Fatal(err)
	}
	duration, err := svc.ClockOut(rec.ID, in.Add(-10*time.Minute))
	if err != nil {
		t.Fatalf("skewed ClockOut must not fail: %v", err)
	}
	if duration != 0 {
		t.Fatalf("duration = %v, want 0", duration)
	}

	closed, err := records.GetByID(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if closed.Open() || closed.Duration != 0 {
		t.Fatalf("expected a closed zero-duration record, got %+v", closed)
	}
}

func TestClockDurationTruncatesToMinutes(t *testing.T) {
	in := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		out  time.Time
		want float64
	}{
		{in.Add(90 * time.Minute), 1.5},
		{in.Add(59 * time.Second), 0},                     // under a minute truncates away
		{in.Add(1*time.Hour + 59*time.Second), 1},         // seconds never round up
		{in.Add(8*time.Hour + 1*time.Minute), 8 + 1.0/60}, // whole-minute resolution
		{in.Add(-2 * time.Hour), 0},
	}
	for _, tc := range cases {
		if got := ClockDuration(in, tc.out); got != tc.want {
			t.Fatalf("ClockDuration(..., %v) = %v, want %v", tc.out, got, tc.want)
		}
	}
}

func TestCurrentlyClockedIn(t *testing.T) {
	svc, _, salonID := newAttendanceFixture()
	now := time.Now()

	a, b := uuid.New(), uuid.New()
	recA, err := svc.ClockIn(a, "Anna", salonID, now)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ClockIn(b, "Bella", salonID, now.Add(time.Minute)); err != nil {
		t.Fatal(err)
	}

	ids, err := svc.CurrentlyClockedIn(salonID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 clocked in, got %d", len(ids))
	}

	if _, err := svc.ClockOut(recA.ID, now.Add(2*time.Hour)); err != nil {
		t.Fatal(err)
	}
	ids, err = svc.CurrentlyClockedIn(salonID)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != b {
		t.Fatalf("expected only Bella clocked in, got %v", ids)
	}

	// Other salons never bleed in.
	ids, err = svc.CurrentlyClockedIn(uuid.New())
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty set for foreign salon, got %v", ids)
	}
}

// At most one open record per staff+salon at any queried instant, across
// a full clock-in/out cycle.
func TestSingleOpenInvariant(t *testing.T) {
	svc, records, salonID := newAttendanceFixture()
	staffID := uuid.New()
	now := time.Now()

	for day := 0; day < 5; day++ {
		at := now.AddDate(0, 0, day)
		rec, err := svc.ClockIn(staffID, "Maria", salonID, at)
		if err != nil {
			t.Fatalf("day %d: %v", day, err)
		}
		open, err := records.FindOpen(salonID, staffID)
		if err != nil {
			t.Fatal(err)
		}
		if len(open) != 1 {
			t.Fatalf("day %d: %d open records", day, len(open))
		}
		if _, err := svc.ClockOut(rec.ID, at.Add(8*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}
}
