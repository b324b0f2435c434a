package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"salonops-backend/models"
	"salonops-backend/store"
)

func newReconcilerFixture(t *testing.T) (*Reconciler, *store.MemoryAttendance, uuid.UUID) {
	t.Helper()
	attendance := store.NewMemoryAttendance()
	salons := store.NewMemorySalons()
	salonID := uuid.New()
	if err := salons.Create(&models.Salon{ID: salonID, Name: "Main"}); err != nil {
		t.Fatal(err)
	}
	return NewReconciler(attendance, salons, quietLogger()), attendance, salonID
}

func TestReconcilerClosesStaleRecords(t *testing.T) {
	rec, attendance, salonID := newReconcilerFixture(t)
	now := time.Date(2026, 8, 12, 0, 5, 0, 0, time.UTC)
	staffID := uuid.New()

	// Forgotten clock-out from two days ago, 9:00 in.
	in := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	stale := &models.AttendanceRecord{
		SalonID: salonID, StaffID: staffID, StaffName: "Maria",
		ClockIn: in, Date: "2026-08-10", CreatedAt: in,
	}
	if err := attendance.Create(stale); err != nil {
		t.Fatal(err)
	}

	if closed := rec.Run(now); closed != 1 {
		t.Fatalf("closed = %d, want 1", closed)
	}

	got, err := attendance.GetByID(stale.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Open() {
		t.Fatal("stale record still open")
	}
	// Closed at the end of its own day: 15 hours from 9:00 to midnight.
	if got.Duration != 15 {
		t.Fatalf("duration = %v, want 15", got.Duration)
	}

	// A second run finds nothing to do.
	if closed := rec.Run(now); closed != 0 {
		t.Fatalf("second run closed %d records", closed)
	}
}

func TestReconcilerCollapsesDuplicateOpens(t *testing.T) {
	rec, attendance, salonID := newReconcilerFixture(t)
	now := time.Date(2026, 8, 10, 23, 0, 0, 0, time.UTC)
	staffID := uuid.New()

	// A double-submission race slipped a second open record through.
	first := &models.AttendanceRecord{
		SalonID: salonID, StaffID: staffID, StaffName: "Maria",
		ClockIn: now.Add(-4 * time.Hour), Date: "2026-08-10", CreatedAt: now.Add(-4 * time.Hour),
	}
	dup := &models.AttendanceRecord{
		SalonID: salonID, StaffID: staffID, StaffName: "Maria",
		ClockIn: now.Add(-4*time.Hour + 2*time.Second), Date: "2026-08-10", CreatedAt: now.Add(-4*time.Hour + 2*time.Second),
	}
	if err := attendance.Create(first); err != nil {
		t.Fatal(err)
	}
	if err := attendance.Create(dup); err != nil {
		t.Fatal(err)
	}

	if closed := rec.Run(now); closed != 1 {
		t.Fatalf("closed = %d, want 1", closed)
	}

	open, err := attendance.FindOpen(salonID, staffID)
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 1 || open[0].ID != first.ID {
		t.Fatalf("expected only the first record to survive, got %+v", open)
	}

	closedDup, err := attendance.GetByID(dup.ID)
	if err != nil {
		t.Fatal(err)
	}
	if closedDup.Open() || closedDup.Duration != 0 {
		t.Fatalf("duplicate should be closed with zero duration: %+v", closedDup)
	}
}

func TestReconcilerLeavesTodayAlone(t *testing.T) {
	rec, attendance, salonID := newReconcilerFixture(t)
	now := time.Date(2026, 8, 10, 18, 0, 0, 0, time.UTC)

	working := &models.AttendanceRecord{
		SalonID: salonID, StaffID: uuid.New(), StaffName: "Maria",
		ClockIn: now.Add(-2 * time.Hour), Date: "2026-08-10", CreatedAt: now.Add(-2 * time.Hour),
	}
	if err := attendance.Create(working); err != nil {
		t.Fatal(err)
	}

	if closed := rec.Run(now); closed != 0 {
		t.Fatalf("closed = %d, want 0", closed)
	}
	got, err := attendance.GetByID(working.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Open() {
		t.Fatal("an active shift must survive reconciliation")
	}
}
