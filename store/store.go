// Package store is the persistence boundary of the engine. Each collection
// gets a small interface: create with a generated id, read by id, equality
// queries, and a conditional update used as the compare-and-set primitive.
// Nothing here joins collections or spans them with a transaction; every
// write carries its own precondition.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"salonops-backend/models"
)

// ErrNotFound is returned by all by-id and by-code lookups when no record
// matches.
var ErrNotFound = errors.New("store: record not found")

// ConsultationUpdate carries the writable workflow fields of a consultation.
// Nil pointers are left untouched. Status is always written.
type ConsultationUpdate struct {
	Status string

	ClaimedBy   *string
	ClaimedByID *uuid.UUID
	ClaimedAt   *time.Time

	ServedBy        *string
	ServedByStaffID *uuid.UUID
	ServedAt        *time.Time
	DateServed      *string
}

type ConsultationStore interface {
	Create(c *models.Consultation) error
	GetByID(id uuid.UUID) (*models.Consultation, error)
	GetByAccessCode(code string) (*models.Consultation, error)
	// UpdateIfStatus applies the update only when the stored status still
	// equals expected, and reports whether the write applied. This is the
	// compare-and-set behind every claim/serve transition.
	UpdateIfStatus(id uuid.UUID, expected string, upd ConsultationUpdate) (bool, error)
	// ListByStatus returns a salon's consultations in one status,
	// newest first.
	ListByStatus(salonID uuid.UUID, status string) ([]models.Consultation, error)
	ListBySalon(salonID uuid.UUID) ([]models.Consultation, error)
	// ListServedByStaff filters on the served timestamp, half-open
	// [from, to). A zero bound is unbounded on that side.
	ListServedByStaff(staffID uuid.UUID, from, to time.Time) ([]models.Consultation, error)
}

type AttendanceStore interface {
	Create(rec *models.AttendanceRecord) error
	GetByID(id uuid.UUID) (*models.AttendanceRecord, error)
	// FindOpen returns the still-open records for one staff member in one
	// salon, oldest clock-in first. More than one element means a lost
	// double-submission race the reconciler has not collapsed yet.
	FindOpen(salonID, staffID uuid.UUID) ([]models.AttendanceRecord, error)
	ListOpen(salonID uuid.UUID) ([]models.AttendanceRecord, error)
	// CloseIfOpen sets clockOut and duration only when the record is still
	// open, and reports whether the write applied.
	CloseIfOpen(id uuid.UUID, clockOut time.Time, duration float64) (bool, error)
	// ListBySalon filters on clock-in time, half-open [from, to); zero
	// bounds are unbounded.
	ListBySalon(salonID uuid.UUID, from, to time.Time) ([]models.AttendanceRecord, error)
}

type WorkLogStore interface {
	Create(e *models.WorkLogEntry) error
	// ListByStaff and ListBySalon filter on creation time, half-open
	// [from, to); zero bounds are unbounded. Calendar-day filtering on the
	// Date field is done by callers on top of these.
	ListByStaff(staffID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error)
	ListBySalon(salonID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error)
	// ListAll returns the salon's full history, oldest first. New-client
	// detection needs all of history, not just a window.
	ListAll(salonID uuid.UUID) ([]models.WorkLogEntry, error)
}

type StaffStore interface {
	Create(s *models.Staff) error
	GetByID(id uuid.UUID) (*models.Staff, error)
	GetByLinkCode(code string) (*models.Staff, error)
	ListBySalon(salonID uuid.UUID) ([]models.Staff, error)
	Save(s *models.Staff) error
}

type ServiceStore interface {
	Create(s *models.Service) error
	GetByID(salonID, id uuid.UUID) (*models.Service, error)
	ListBySalon(salonID uuid.UUID) ([]models.Service, error)
}

type SalonStore interface {
	Create(s *models.Salon) error
	GetByID(id uuid.UUID) (*models.Salon, error)
	List() ([]models.Salon, error)
}

// inRange reports whether t falls in the half-open window [from, to).
// Zero bounds are open on that side.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
