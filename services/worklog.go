package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"salonops-backend/models"
	"salonops-backend/store"
	"salonops-backend/utils"
)

// WalkInClient labels work logged without a client name.
const WalkInClient = "Walk-in"

// WorkLogService owns the completed-work ledger. Entries are append-only;
// service name, category and price are snapshotted from the catalog at
// write time so later edits or deletes never rewrite history.
type WorkLogService struct {
	entries  store.WorkLogStore
	services store.ServiceStore
}

func NewWorkLogService(entries store.WorkLogStore, services store.ServiceStore) *WorkLogService {
	return &WorkLogService{entries: entries, services: services}
}

func (s *WorkLogService) LogWork(staffID uuid.UUID, staffName string, salonID, serviceID uuid.UUID, price float64, client, notes string, now time.Time) (*models.WorkLogEntry, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	svc, err := s.services.GetByID(salonID, serviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidService
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrInvalidService
	}

	if client == "" {
		client = WalkInClient
	}

	entry := &models.WorkLogEntry{
		SalonID:         salonID,
		StaffID:         staffID,
		StaffName:       staffName,
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		ServiceCategory: svc.Category,
		ServicePrice:    price,
		Client:          client,
		Notes:           notes,
		Date:            utils.DayString(now),
		CreatedAt:       now,
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// QueryByStaff filters on creation time, half-open [from, to).
func (s *WorkLogService) QueryByStaff(staffID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error) {
	return s.entries.ListByStaff(staffID, from, to)
}

// QueryBySalon filters on creation time, half-open [from, to).
func (s *WorkLogService) QueryBySalon(salonID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error) {
	return s.entries.ListBySalon(salonID, from, to)
}

// QueryBySalonDays filters on the stored calendar-day key instead of the
// creation timestamp, inclusive on both ends. Day-keyed aggregates (daily
// revenue, "served today") use this; timestamp windows use QueryBySalon.
func (s *WorkLogService) QueryBySalonDays(salonID uuid.UUID, fromDay, toDay string) ([]models.WorkLogEntry, error) {
	all, err := s.entries.ListAll(salonID)
	if err != nil {
		return nil, err
	}
	var out []models.WorkLogEntry
	for _, e := range all {
		if (fromDay == "" || e.Date >= fromDay) && (toDay == "" || e.Date <= toDay) {
			out = append(out, e)
		}
	}
	return out, nil
}

// FullHistory returns every entry for a salon, oldest first.
func (s *WorkLogService) FullHistory(salonID uuid.UUID) ([]models.WorkLogEntry, error) {
	return s.entries.ListAll(salonID)
}
