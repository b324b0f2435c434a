package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"salonops-backend/models"
	"salonops-backend/store"
	"salonops-backend/utils"
)

// AttendanceService owns the clock ledger. Clock-in checks for an open
// record before writing; the store has no cross-record transaction, so a
// concurrent double submission can still slip one duplicate through. The
// reconciler collapses those, and FindOpen keeps the invariant observable.
type AttendanceService struct {
	records store.AttendanceStore
	log     *logrus.Logger
}

func NewAttendanceService(records store.AttendanceStore, log *logrus.Logger) *AttendanceService {
	return &AttendanceService{records: records, log: log}
}

func (s *AttendanceService) ClockIn(staffID uuid.UUID, staffName string, salonID uuid.UUID, now time.Time) (*models.AttendanceRecord, error) {
	open, err := s.records.FindOpen(salonID, staffID)
	if err != nil {
		return nil, err
	}
	if len(open) > 0 {
		return nil, ErrAlreadyClockedIn
	}

	rec := &models.AttendanceRecord{
		SalonID:   salonID,
		StaffID:   staffID,
		StaffName: staffName,
		ClockIn:   now,
		Date:      utils.DayString(now),
		CreatedAt: now,
	}
	if err := s.records.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ClockOut closes a record and returns the shift duration in hours. The
// close is conditional on the record still being open, so two racing
// clock-out submissions produce exactly one close.
func (s *AttendanceService) ClockOut(recordID uuid.UUID, now time.Time) (float64, error) {
	rec, err := s.records.GetByID(recordID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if rec.ClockOut != nil {
		return 0, ErrAlreadyClosed
	}

	duration := ClockDuration(rec.ClockIn, now)
	ok, err := s.records.CloseIfOpen(recordID, now, duration)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrAlreadyClosed
	}
	return duration, nil
}

// ClockDuration is the worked time in hours at whole-minute resolution.
// A clock-out that lands before the clock-in (client skew) clamps to zero
// instead of failing; skew must never block closing a shift.
func ClockDuration(in, out time.Time) float64 {
	minutes := int(out.Sub(in).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return float64(minutes) / 60
}

// CurrentlyClockedIn returns the distinct staff ids with an open record,
// ordered by clock-in time. Reads are eventually consistent; a staff
// member may briefly look clocked-in on one reader and out on another.
func (s *AttendanceService) CurrentlyClockedIn(salonID uuid.UUID) ([]uuid.UUID, error) {
	open, err := s.records.ListOpen(salonID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]bool, len(open))
	var ids []uuid.UUID
	for _, rec := range open {
		if !seen[rec.StaffID] {
			seen[rec.StaffID] = true
			ids = append(ids, rec.StaffID)
		}
	}
	return ids, nil
}

// OpenRecords returns the raw open records for a salon, for dashboards
// that show who is in and since when.
func (s *AttendanceService) OpenRecords(salonID uuid.UUID) ([]models.AttendanceRecord, error) {
	return s.records.ListOpen(salonID)
}

// OpenRecordFor returns a staff member's current open record, or nil.
func (s *AttendanceService) OpenRecordFor(salonID, staffID uuid.UUID) (*models.AttendanceRecord, error) {
	open, err := s.records.FindOpen(salonID, staffID)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, nil
	}
	rec := open[0]
	return &rec, nil
}

// History returns a salon's attendance records with clock-in inside the
// half-open window [from, to).
func (s *AttendanceService) History(salonID uuid.UUID, from, to time.Time) ([]models.AttendanceRecord, error) {
	return s.records.ListBySalon(salonID, from, to)
}
