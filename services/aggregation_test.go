package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"salonops-backend/models"
	"salonops-backend/store"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func entry(salonID uuid.UUID, staff, service, client string, price float64, at time.Time) models.WorkLogEntry {
	return models.WorkLogEntry{
		ID:           uuid.New(),
		SalonID:      salonID,
		StaffID:      uuid.New(),
		StaffName:    staff,
		ServiceID:    uuid.New(),
		ServiceName:  service,
		ServicePrice: price,
		Client:       client,
		Date:         at.Format("2006-01-02"),
		CreatedAt:    at,
	}
}

func TestBuildFeedMergesAndOrders(t *testing.T) {
	salonID := uuid.New()
	now := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	out := now.Add(-30 * time.Minute)

	snap := Snapshot{
		SalonID: salonID,
		Attendance: []models.AttendanceRecord{
			{StaffID: uuid.New(), StaffName: "Maria", ClockIn: now.Add(-2 * time.Hour), ClockOut: &out},
		},
		WorkLogs: []models.WorkLogEntry{
			entry(salonID, "Maria", "Haircut", "Alice", 65, now.Add(-10*time.Minute)),
		},
		Consultations: []models.Consultation{
			{Name: "Dana", DesiredService: "Color", CreatedAt: now.Add(-5 * time.Minute)},
		},
	}

	feed := BuildFeed(snap, now)
	if len(feed) != 4 {
		t.Fatalf("expected 4 events, got %d", len(feed))
	}
	wantTypes := []string{FeedTypeConsultation, FeedTypeWorkLog, FeedTypeClockOut, FeedTypeClockIn}
	for i, want := range wantTypes {
		if feed[i].Type != want {
			t.Fatalf("event %d type = %s, want %s", i, feed[i].Type, want)
		}
	}
	if feed[0].Message != "New consultation from Dana (Color)" {
		t.Fatalf("consultation message = %q", feed[0].Message)
	}
	if feed[1].Message != "Maria completed Haircut for Alice" {
		t.Fatalf("work message = %q", feed[1].Message)
	}
	if feed[0].TimeAgo != "5m ago" || feed[2].TimeAgo != "30m ago" || feed[3].TimeAgo != "2h ago" {
		t.Fatalf("unexpected time-ago labels: %q %q %q", feed[0].TimeAgo, feed[2].TimeAgo, feed[3].TimeAgo)
	}
}

func TestFilterFeedTypeAndCap(t *testing.T) {
	now := time.Now()
	var events []FeedEvent
	for i := 0; i < 30; i++ {
		typ := FeedTypeClockIn
		if i%2 == 0 {
			typ = FeedTypeWorkLog
		}
		events = append(events, FeedEvent{Type: typ, Timestamp: now.Add(-time.Duration(i) * time.Minute)})
	}

	all := FilterFeed(events, "", 0)
	if len(all) != DefaultFeedLimit {
		t.Fatalf("default cap: got %d, want %d", len(all), DefaultFeedLimit)
	}
	work := FilterFeed(events, FeedTypeWorkLog, 0)
	if len(work) != DefaultFeedLimit {
		t.Fatalf("filtered cap: got %d", len(work))
	}
	for _, ev := range work {
		if ev.Type != FeedTypeWorkLog {
			t.Fatalf("filter leaked type %s", ev.Type)
		}
	}
	if got := FilterFeed(events, FeedTypeClockOut, 5); len(got) != 0 {
		t.Fatalf("expected no clock-out events, got %d", len(got))
	}
}

// Staff logs a 65.00 Hair service; the day's rollup carries it with one
// service and 65.00 revenue for that staff.
func TestRollupRevenueSingleEntry(t *testing.T) {
	salonID := uuid.New()
	now := time.Now()

	rollup := RollupRevenue([]models.WorkLogEntry{
		entry(salonID, "Maria", "Haircut", "Alice", 65, now),
	})
	if rollup.Total != 65 || rollup.Services != 1 {
		t.Fatalf("total = %v services = %d", rollup.Total, rollup.Services)
	}
	if len(rollup.Leaderboard) != 1 {
		t.Fatalf("leaderboard rows = %d", len(rollup.Leaderboard))
	}
	row := rollup.Leaderboard[0]
	if row.StaffName != "Maria" || row.Services != 1 || row.Revenue != 65 {
		t.Fatalf("leaderboard row = %+v", row)
	}
}

func TestRollupRevenueOrdering(t *testing.T) {
	salonID := uuid.New()
	now := time.Now()

	rollup := RollupRevenue([]models.WorkLogEntry{
		entry(salonID, "Anna", "Haircut", "c1", 40, now),
		entry(salonID, "Bella", "Color", "c2", 120, now),
		entry(salonID, "Carla", "Trim", "c3", 40, now), // ties Anna; stays after her
		entry(salonID, "Bella", "Haircut", "c4", 40, now),
	})

	if rollup.Total != 240 {
		t.Fatalf("total = %v, want 240", rollup.Total)
	}
	names := []string{}
	for _, row := range rollup.Leaderboard {
		names = append(names, row.StaffName)
	}
	if !reflect.DeepEqual(names, []string{"Bella", "Anna", "Carla"}) {
		t.Fatalf("leaderboard order = %v", names)
	}

	// Haircut and Color tie on nothing: Haircut has count 2. Color and
	// Trim tie on count 1 and resolve by revenue.
	pop := []string{}
	for _, row := range rollup.Popularity {
		pop = append(pop, row.ServiceName)
	}
	if !reflect.DeepEqual(pop, []string{"Haircut", "Color", "Trim"}) {
		t.Fatalf("popularity order = %v", pop)
	}
}

func TestRollupRevenueUnknownStaff(t *testing.T) {
	salonID := uuid.New()
	e := entry(salonID, "", "Haircut", "Alice", 65, time.Now())

	rollup := RollupRevenue([]models.WorkLogEntry{e})
	if rollup.Leaderboard[0].StaffName != UnknownStaffLabel {
		t.Fatalf("expected %q fallback, got %q", UnknownStaffLabel, rollup.Leaderboard[0].StaffName)
	}
}

func TestRollupRevenueEmpty(t *testing.T) {
	rollup := RollupRevenue(nil)
	if rollup.Total != 0 || rollup.Services != 0 || len(rollup.Leaderboard) != 0 || len(rollup.Popularity) != 0 {
		t.Fatalf("empty input must produce a zero rollup: %+v", rollup)
	}
}

// Nested windows never double count: today's entries are exactly the
// today-subset of the week, which is a subset of the month.
func TestRevenueAdditivityAcrossNestedWindows(t *testing.T) {
	salonID := uuid.New()
	now := time.Date(2026, 8, 20, 15, 0, 0, 0, time.UTC)

	history := []models.WorkLogEntry{
		entry(salonID, "Anna", "Haircut", "c1", 65, now.Add(-time.Hour)),        // today
		entry(salonID, "Anna", "Haircut", "c2", 40, now.AddDate(0, 0, -3)),     // this week
		entry(salonID, "Anna", "Haircut", "c3", 100, now.AddDate(0, 0, -15)),   // this month only
		entry(salonID, "Anna", "Haircut", "c4", 1000, now.AddDate(0, -2, 0)),   // outside all
	}

	dayStart := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	weekStart := dayStart.AddDate(0, 0, -6)
	monthStart := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	today := RollupRevenue(WindowByTimestamp(history, dayStart, time.Time{}))
	week := RollupRevenue(WindowByTimestamp(history, weekStart, time.Time{}))
	month := RollupRevenue(WindowByTimestamp(history, monthStart, time.Time{}))

	if today.Total != 65 {
		t.Fatalf("today = %v", today.Total)
	}
	if week.Total != 105 {
		t.Fatalf("week = %v", week.Total)
	}
	if month.Total != 205 {
		t.Fatalf("month = %v", month.Total)
	}
}

func TestWindowByDayInclusive(t *testing.T) {
	salonID := uuid.New()
	base := time.Date(2026, 8, 10, 10, 0, 0, 0, time.UTC)
	var history []models.WorkLogEntry
	for day := 0; day < 5; day++ {
		history = append(history, entry(salonID, "Anna", "Haircut", "c", 10, base.AddDate(0, 0, day)))
	}

	got := WindowByDay(history, "2026-08-11", "2026-08-13")
	if len(got) != 3 {
		t.Fatalf("got %d entries, want 3", len(got))
	}
	if open := WindowByDay(history, "", ""); len(open) != 5 {
		t.Fatalf("open window lost entries: %d", len(open))
	}
}

func TestNewClientsFirstAppearanceInHistory(t *testing.T) {
	salonID := uuid.New()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	weekStart := now.AddDate(0, 0, -6)

	history := []models.WorkLogEntry{
		entry(salonID, "Anna", "Haircut", "Alice", 65, now.AddDate(0, -1, 0)), // Alice first seen last month
		entry(salonID, "Anna", "Haircut", "alice", 65, now.Add(-time.Hour)),   // same client, case differs
		entry(salonID, "Anna", "Haircut", "  Dana  Lee ", 40, now.Add(-2*time.Hour)),
		entry(salonID, "Anna", "Haircut", "Walk-in", 30, now.Add(-time.Hour)),
		entry(salonID, "Anna", "Haircut", "", 30, now.Add(-time.Hour)),
	}

	got := NewClients(history, weekStart, time.Time{})
	if !reflect.DeepEqual(got, []string{"  Dana  Lee "}) {
		t.Fatalf("new clients = %#v, want only Dana", got)
	}

	// Same snapshot, same answer.
	again := NewClients(history, weekStart, time.Time{})
	if !reflect.DeepEqual(got, again) {
		t.Fatalf("detection is not idempotent: %v vs %v", got, again)
	}
}

func TestNewClientsEmptyHistory(t *testing.T) {
	if got := NewClients(nil, time.Now().AddDate(0, 0, -7), time.Time{}); len(got) != 0 {
		t.Fatalf("expected no new clients on empty history, got %v", got)
	}
}

func TestActivityFromSnapshot(t *testing.T) {
	out := time.Now()
	staffA, staffB := uuid.New(), uuid.New()
	snap := Snapshot{
		Attendance: []models.AttendanceRecord{
			{StaffID: staffA, ClockIn: out.Add(-2 * time.Hour)},
			{StaffID: staffA, ClockIn: out.Add(-1 * time.Hour)}, // duplicate open, counted once
			{StaffID: staffB, ClockIn: out.Add(-3 * time.Hour), ClockOut: &out},
		},
		Staff: []models.Staff{{ID: staffA}, {ID: staffB}, {ID: uuid.New()}},
	}

	activity := ActivityFromSnapshot(snap)
	if activity.Active != 1 || activity.Total != 3 {
		t.Fatalf("activity = %+v, want 1 active of 3", activity)
	}
}

// failingAttendance simulates one unreadable ledger during aggregation.
type failingAttendance struct{ store.AttendanceStore }

func (failingAttendance) ListBySalon(uuid.UUID, time.Time, time.Time) ([]models.AttendanceRecord, error) {
	return nil, errors.New("backend unavailable")
}

func TestSnapshotPartialFailure(t *testing.T) {
	salonID := uuid.New()
	worklogs := store.NewMemoryWorkLogs()
	e := entry(salonID, "Maria", "Haircut", "Alice", 65, time.Now())
	if err := worklogs.Create(&e); err != nil {
		t.Fatal(err)
	}

	agg := NewAggregationService(
		failingAttendance{},
		worklogs,
		store.NewMemoryConsultations(),
		store.NewMemoryStaff(),
		quietLogger(),
	)

	snap := agg.LoadSnapshot(salonID)
	if !snap.Partial {
		t.Fatal("expected partial flag")
	}
	if !reflect.DeepEqual(snap.Failed, []string{LedgerAttendance}) {
		t.Fatalf("failed ledgers = %v", snap.Failed)
	}
	if len(snap.WorkLogs) != 1 {
		t.Fatal("healthy ledgers must still load")
	}

	// The dashboard still comes out, flagged, from what could be read.
	overview := ComputeOverview(snap, time.Now())
	if !overview.Partial {
		t.Fatal("overview must carry the partial flag")
	}
	if overview.Today.Total != 65 {
		t.Fatalf("overview lost readable data: %+v", overview.Today)
	}
}

func TestOverviewEmptySalon(t *testing.T) {
	agg := NewAggregationService(
		store.NewMemoryAttendance(),
		store.NewMemoryWorkLogs(),
		store.NewMemoryConsultations(),
		store.NewMemoryStaff(),
		quietLogger(),
	)

	overview := agg.Overview(uuid.New(), time.Now())
	if overview.Partial {
		t.Fatal("empty is not partial")
	}
	if len(overview.Feed) != 0 || overview.Month.Total != 0 || overview.StaffActivity.Active != 0 {
		t.Fatalf("empty salon must produce zero aggregates: %+v", overview)
	}
}
