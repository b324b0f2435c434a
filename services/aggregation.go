package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"salonops-backend/models"
	"salonops-backend/store"
	"salonops-backend/utils"
)

// UnknownStaffLabel renders ledger rows whose denormalized staff name is
// blank, typically rows that predate the name being recorded. Historical
// entries intentionally outlive the directory rows they reference.
const UnknownStaffLabel = "Unknown Staff"

// Feed event types.
const (
	FeedTypeClockIn      = "clock_in"
	FeedTypeClockOut     = "clock_out"
	FeedTypeWorkLog      = "work_log"
	FeedTypeConsultation = "consultation"
)

// DefaultFeedLimit caps the live feed.
const DefaultFeedLimit = 10

// Ledger names used in partial-failure reporting.
const (
	LedgerAttendance    = "attendance"
	LedgerWorkLogs      = "workLogs"
	LedgerConsultations = "consultations"
	LedgerStaff         = "staff"
)

// AggregationService derives dashboard numbers from snapshots of the three
// ledgers plus the staff directory. Nothing here is persisted or cached;
// every aggregate is recomputed from ledger contents on request, so there
// is no second source of truth to keep consistent.
type AggregationService struct {
	attendance    store.AttendanceStore
	worklogs      store.WorkLogStore
	consultations store.ConsultationStore
	staff         store.StaffStore
	log           *logrus.Logger
}

func NewAggregationService(attendance store.AttendanceStore, worklogs store.WorkLogStore, consultations store.ConsultationStore, staff store.StaffStore, log *logrus.Logger) *AggregationService {
	return &AggregationService{
		attendance:    attendance,
		worklogs:      worklogs,
		consultations: consultations,
		staff:         staff,
		log:           log,
	}
}

// Snapshot is one salon's ledgers as read at a point in time. The reads
// are independent and eventually consistent with concurrent writers; a
// snapshot is not an isolation point. A ledger whose fetch failed
// contributes an empty slice and its name in Failed.
type Snapshot struct {
	SalonID       uuid.UUID
	Attendance    []models.AttendanceRecord
	WorkLogs      []models.WorkLogEntry
	Consultations []models.Consultation
	Staff         []models.Staff

	Partial bool
	Failed  []string
}

// LoadSnapshot reads all four collections for a salon. A failed fetch is
// logged and flagged but never aborts the others; the dashboard degrades
// to whatever could be read.
func (s *AggregationService) LoadSnapshot(salonID uuid.UUID) Snapshot {
	snap := Snapshot{SalonID: salonID}

	var err error
	if snap.Attendance, err = s.attendance.ListBySalon(salonID, time.Time{}, time.Time{}); err != nil {
		snap.fail(LedgerAttendance)
		s.logFetchError(LedgerAttendance, salonID, err)
	}
	if snap.WorkLogs, err = s.worklogs.ListAll(salonID); err != nil {
		snap.fail(LedgerWorkLogs)
		s.logFetchError(LedgerWorkLogs, salonID, err)
	}
	if snap.Consultations, err = s.consultations.ListBySalon(salonID); err != nil {
		snap.fail(LedgerConsultations)
		s.logFetchError(LedgerConsultations, salonID, err)
	}
	if snap.Staff, err = s.staff.ListBySalon(salonID); err != nil {
		snap.fail(LedgerStaff)
		s.logFetchError(LedgerStaff, salonID, err)
	}
	return snap
}

func (snap *Snapshot) fail(ledger string) {
	snap.Partial = true
	snap.Failed = append(snap.Failed, ledger)
}

func (s *AggregationService) logFetchError(ledger string, salonID uuid.UUID, err error) {
	s.log.WithFields(logrus.Fields{
		"ledger":  ledger,
		"salonId": salonID,
	}).Warn("snapshot fetch failed: " + err.Error())
}

// FeedEvent is one row of the live activity feed.
type FeedEvent struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	TimeAgo   string    `json:"timeAgo"`
	Timestamp time.Time `json:"timestamp"`
}

func staffLabel(name string) string {
	if name == "" {
		return UnknownStaffLabel
	}
	return name
}

// BuildFeed merges clock events, work-log entries and consultation
// submissions into one list, newest first. The three streams are
// materialized, concatenated and sorted once; callers filter the result
// with FilterFeed rather than re-merging.
func BuildFeed(snap Snapshot, now time.Time) []FeedEvent {
	events := make([]FeedEvent, 0, len(snap.Attendance)*2+len(snap.WorkLogs)+len(snap.Consultations))

	for _, rec := range snap.Attendance {
		who := staffLabel(rec.StaffName)
		events = append(events, FeedEvent{
			Type:      FeedTypeClockIn,
			Message:   who + " clocked in",
			Timestamp: rec.ClockIn,
		})
		if rec.ClockOut != nil {
			events = append(events, FeedEvent{
				Type:      FeedTypeClockOut,
				Message:   who + " clocked out",
				Timestamp: *rec.ClockOut,
			})
		}
	}
	for _, e := range snap.WorkLogs {
		events = append(events, FeedEvent{
			Type:      FeedTypeWorkLog,
			Message:   fmt.Sprintf("%s completed %s for %s", staffLabel(e.StaffName), e.ServiceName, e.Client),
			Timestamp: e.CreatedAt,
		})
	}
	for _, c := range snap.Consultations {
		msg := "New consultation from " + c.Name
		if c.DesiredService != "" {
			msg += " (" + c.DesiredService + ")"
		}
		events = append(events, FeedEvent{
			Type:      FeedTypeConsultation,
			Message:   msg,
			Timestamp: c.CreatedAt,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	for i := range events {
		events[i].TimeAgo = utils.TimeAgo(events[i].Timestamp, now)
	}
	return events
}

// FilterFeed narrows an already-merged feed to one event type (empty
// string keeps all) and caps it. limit <= 0 applies DefaultFeedLimit.
func FilterFeed(events []FeedEvent, eventType string, limit int) []FeedEvent {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	out := make([]FeedEvent, 0, limit)
	for _, ev := range events {
		if eventType != "" && ev.Type != eventType {
			continue
		}
		out = append(out, ev)
		if len(out) == limit {
			break
		}
	}
	return out
}

// StaffRevenue is one leaderboard row.
type StaffRevenue struct {
	StaffName string  `json:"staffName"`
	Services  int     `json:"services"`
	Revenue   float64 `json:"revenue"`
}

// ServicePopularity is one most-requested-services row.
type ServicePopularity struct {
	ServiceName string  `json:"serviceName"`
	Count       int     `json:"count"`
	Revenue     float64 `json:"revenue"`
}

// RevenueRollup is the windowed revenue picture for a set of entries.
type RevenueRollup struct {
	Total       float64             `json:"total"`
	Services    int                 `json:"services"`
	Leaderboard []StaffRevenue      `json:"leaderboard"`
	Popularity  []ServicePopularity `json:"popularity"`
}

// RollupRevenue sums and groups a pre-windowed set of entries. Sums go
// through decimals so a day of 65.00s never drifts by a cent. Leaderboard
// sorts by revenue descending with ties kept in first-appearance order;
// popularity sorts by count descending with ties broken by revenue.
func RollupRevenue(entries []models.WorkLogEntry) RevenueRollup {
	total := decimal.Zero

	type staffAcc struct {
		name    string
		count   int
		revenue decimal.Decimal
	}
	type svcAcc struct {
		name    string
		count   int
		revenue decimal.Decimal
	}
	var staffOrder []string
	staffByName := make(map[string]*staffAcc)
	var svcOrder []string
	svcByName := make(map[string]*svcAcc)

	for _, e := range entries {
		price := decimal.NewFromFloat(e.ServicePrice)
		total = total.Add(price)

		sn := staffLabel(e.StaffName)
		sa, ok := staffByName[sn]
		if !ok {
			sa = &staffAcc{name: sn}
			staffByName[sn] = sa
			staffOrder = append(staffOrder, sn)
		}
		sa.count++
		sa.revenue = sa.revenue.Add(price)

		va, ok := svcByName[e.ServiceName]
		if !ok {
			va = &svcAcc{name: e.ServiceName}
			svcByName[e.ServiceName] = va
			svcOrder = append(svcOrder, e.ServiceName)
		}
		va.count++
		va.revenue = va.revenue.Add(price)
	}

	rollup := RevenueRollup{
		Total:       total.InexactFloat64(),
		Services:    len(entries),
		Leaderboard: make([]StaffRevenue, 0, len(staffOrder)),
		Popularity:  make([]ServicePopularity, 0, len(svcOrder)),
	}
	for _, name := range staffOrder {
		sa := staffByName[name]
		rollup.Leaderboard = append(rollup.Leaderboard, StaffRevenue{
			StaffName: sa.name,
			Services:  sa.count,
			Revenue:   sa.revenue.InexactFloat64(),
		})
	}
	sort.SliceStable(rollup.Leaderboard, func(i, j int) bool {
		return rollup.Leaderboard[i].Revenue > rollup.Leaderboard[j].Revenue
	})
	for _, name := range svcOrder {
		va := svcByName[name]
		rollup.Popularity = append(rollup.Popularity, ServicePopularity{
			ServiceName: va.name,
			Count:       va.count,
			Revenue:     va.revenue.InexactFloat64(),
		})
	}
	sort.SliceStable(rollup.Popularity, func(i, j int) bool {
		if rollup.Popularity[i].Count != rollup.Popularity[j].Count {
			return rollup.Popularity[i].Count > rollup.Popularity[j].Count
		}
		return rollup.Popularity[i].Revenue > rollup.Popularity[j].Revenue
	})
	return rollup
}

// WindowByTimestamp keeps entries whose creation time falls in the
// half-open window [from, to). Zero bounds are open.
func WindowByTimestamp(entries []models.WorkLogEntry, from, to time.Time) []models.WorkLogEntry {
	var out []models.WorkLogEntry
	for _, e := range entries {
		if !from.IsZero() && e.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !e.CreatedAt.Before(to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// WindowByDay keeps entries whose calendar-day key falls between fromDay
// and toDay inclusive; empty bounds are open. The day keys sort
// lexicographically.
func WindowByDay(entries []models.WorkLogEntry, fromDay, toDay string) []models.WorkLogEntry {
	var out []models.WorkLogEntry
	for _, e := range entries {
		if fromDay != "" && e.Date < fromDay {
			continue
		}
		if toDay != "" && e.Date > toDay {
			continue
		}
		out = append(out, e)
	}
	return out
}

// NewClients returns the clients whose first appearance in the salon's
// entire work history falls inside [from, to): first visit ever, not first
// visit this window. That takes a scan of the full history, an accepted
// cost at this data scale; the function is the seam to replace with a
// first-seen index if ledgers outgrow it. Names are matched
// case-insensitively with whitespace collapsed, deduplicated, and
// returned in order of first appearance. Walk-ins carry no identity and
// are skipped.
func NewClients(history []models.WorkLogEntry, from, to time.Time) []string {
	type first struct {
		at      time.Time
		display string
	}
	firstSeen := make(map[string]first)
	var order []string
	for _, e := range history {
		key := utils.NormalizeClientName(e.Client)
		if key == "" || key == utils.NormalizeClientName(WalkInClient) {
			continue
		}
		f, ok := firstSeen[key]
		if !ok || e.CreatedAt.Before(f.at) {
			if !ok {
				order = append(order, key)
			}
			firstSeen[key] = first{at: e.CreatedAt, display: e.Client}
		}
	}

	var out []string
	for _, key := range order {
		f := firstSeen[key]
		if !from.IsZero() && f.at.Before(from) {
			continue
		}
		if !to.IsZero() && !f.at.Before(to) {
			continue
		}
		out = append(out, f.display)
	}
	return out
}

// StaffActivity pairs the clocked-in headcount with the directory total.
type StaffActivity struct {
	Active int `json:"active"`
	Total  int `json:"total"`
}

// ActivityFromSnapshot counts distinct staff with an open clock record.
func ActivityFromSnapshot(snap Snapshot) StaffActivity {
	seen := make(map[uuid.UUID]bool)
	for _, rec := range snap.Attendance {
		if rec.Open() {
			seen[rec.StaffID] = true
		}
	}
	return StaffActivity{Active: len(seen), Total: len(snap.Staff)}
}

// Overview is the owner dashboard payload.
type Overview struct {
	Feed []FeedEvent `json:"feed"`

	Today RevenueRollup `json:"today"`
	Week  RevenueRollup `json:"week"`
	Month RevenueRollup `json:"month"`

	NewClientsThisWeek []string      `json:"newClientsThisWeek"`
	StaffActivity      StaffActivity `json:"staffActivity"`

	Partial       bool     `json:"partial"`
	FailedLedgers []string `json:"failedLedgers,omitempty"`
}

// ComputeOverview assembles the full dashboard from a loaded snapshot.
// Empty ledgers produce empty rollups and an empty feed, never an error.
func ComputeOverview(snap Snapshot, now time.Time) Overview {
	dayStart := utils.BeginningOfDay(now)
	weekStart := dayStart.AddDate(0, 0, -6)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return Overview{
		Feed:               FilterFeed(BuildFeed(snap, now), "", DefaultFeedLimit),
		Today:              RollupRevenue(WindowByTimestamp(snap.WorkLogs, dayStart, time.Time{})),
		Week:               RollupRevenue(WindowByTimestamp(snap.WorkLogs, weekStart, time.Time{})),
		Month:              RollupRevenue(WindowByTimestamp(snap.WorkLogs, monthStart, time.Time{})),
		NewClientsThisWeek: NewClients(snap.WorkLogs, weekStart, time.Time{}),
		StaffActivity:      ActivityFromSnapshot(snap),
		Partial:            snap.Partial,
		FailedLedgers:      snap.Failed,
	}
}

// Overview loads a fresh snapshot and computes the dashboard for it.
func (s *AggregationService) Overview(salonID uuid.UUID, now time.Time) Overview {
	return ComputeOverview(s.LoadSnapshot(salonID), now)
}

// Feed loads a fresh snapshot and returns the filtered live feed.
func (s *AggregationService) Feed(salonID uuid.UUID, now time.Time, eventType string, limit int) ([]FeedEvent, bool) {
	snap := s.LoadSnapshot(salonID)
	return FilterFeed(BuildFeed(snap, now), eventType, limit), snap.Partial
}
