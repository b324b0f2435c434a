package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"salonops-backend/models"
	"salonops-backend/store"
	"salonops-backend/utils"
)

// ConsultationService runs the intake lifecycle: new -> claimed -> served.
// There is no transaction coordinator anywhere in the system, so both
// transitions are compare-and-set writes: the update lands only if the
// status read immediately before the write still holds. A failed
// precondition is a normal outcome, not a fault.
type ConsultationService struct {
	consultations store.ConsultationStore
	staff         store.StaffStore
}

func NewConsultationService(consultations store.ConsultationStore, staff store.StaffStore) *ConsultationService {
	return &ConsultationService{consultations: consultations, staff: staff}
}

// SubmitInput carries the client-side intake form. Health and allergy
// notes are free text relayed to staff untouched; this system is a data
// relay, not a medical gatekeeper.
type SubmitInput struct {
	SalonID uuid.UUID

	Name           string
	Phone          string
	Email          string
	HealthNotes    string
	AllergyNotes   string
	DesiredService string

	ServiceConsent bool
	PhotoConsent   bool
	DataConsent    bool

	// StaffLinkCode is the optional routing hint embedded in a staff
	// member's personal intake link.
	StaffLinkCode string

	// Source defaults to online_form; owners entering a walk-in by hand
	// pass manual.
	Source string
}

func (s *ConsultationService) Submit(in SubmitInput, now time.Time) (*models.Consultation, error) {
	var bad []string
	if in.Name == "" {
		bad = append(bad, "name")
	}
	if in.Phone == "" || !utils.ValidatePhone(in.Phone) {
		bad = append(bad, "phone")
	}
	if !in.ServiceConsent {
		bad = append(bad, "serviceConsent")
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}

	cons := &models.Consultation{
		SalonID:        in.SalonID,
		Name:           in.Name,
		Phone:          in.Phone,
		Email:          in.Email,
		HealthNotes:    in.HealthNotes,
		AllergyNotes:   in.AllergyNotes,
		DesiredService: in.DesiredService,
		ServiceConsent: in.ServiceConsent,
		PhotoConsent:   in.PhotoConsent,
		DataConsent:    in.DataConsent,
		Status:         models.ConsultationStatusNew,
		AccessCode:     utils.GenerateAccessCode(),
		Source:         models.ConsultationSourceOnlineForm,
		CreatedAt:      now,
	}
	if in.Source == models.ConsultationSourceManual {
		cons.Source = models.ConsultationSourceManual
	}

	// A routing hint that does not resolve is dropped, not rejected; the
	// link may be stale or the staff member disabled since it was shared.
	if in.StaffLinkCode != "" {
		if st, err := s.staff.GetByLinkCode(in.StaffLinkCode); err == nil && st.IsActive && st.SalonID == in.SalonID {
			cons.AssignedStaffID = &st.ID
			cons.AssignedStaffName = st.Name
		}
	}

	if err := s.consultations.Create(cons); err != nil {
		return nil, err
	}
	return cons, nil
}

// Claim moves a consultation from new to claimed. Two staff can observe
// status new concurrently and both try; the conditional write lets exactly
// one through and the loser gets ErrInvalidTransition.
func (s *ConsultationService) Claim(id, staffID uuid.UUID, staffName string, now time.Time) (*models.Consultation, error) {
	cur, err := s.consultations.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if cur.Status != models.ConsultationStatusNew {
		return nil, ErrInvalidTransition
	}

	at := now
	upd := store.ConsultationUpdate{
		Status:      models.ConsultationStatusClaimed,
		ClaimedBy:   &staffName,
		ClaimedByID: &staffID,
		ClaimedAt:   &at,
	}
	ok, err := s.consultations.UpdateIfStatus(id, models.ConsultationStatusNew, upd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidTransition
	}
	return s.consultations.GetByID(id)
}

// Serve finalizes a consultation. Claiming first is a courtesy, not a
// precondition: serve is valid from new or claimed, never from served.
// The write is conditional on the exact status just read; losing to a
// concurrent claim gets one re-read and retry (the record is usually
// still serveable), losing to another serve is terminal. Claim history is
// never overwritten.
func (s *ConsultationService) Serve(id, staffID uuid.UUID, staffName string, now time.Time) (*models.Consultation, error) {
	for attempt := 0; attempt < 2; attempt++ {
		cur, err := s.consultations.GetByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if cur.Status == models.ConsultationStatusServed {
			return nil, ErrInvalidTransition
		}

		at := now
		day := utils.DayString(now)
		upd := store.ConsultationUpdate{
			Status:          models.ConsultationStatusServed,
			ServedBy:        &staffName,
			ServedByStaffID: &staffID,
			ServedAt:        &at,
			DateServed:      &day,
		}
		ok, err := s.consultations.UpdateIfStatus(id, cur.Status, upd)
		if err != nil {
			return nil, err
		}
		if ok {
			return s.consultations.GetByID(id)
		}
	}
	return nil, ErrInvalidTransition
}

// ListUnclaimed returns a salon's consultations still waiting to be
// picked up, newest first.
func (s *ConsultationService) ListUnclaimed(salonID uuid.UUID) ([]models.Consultation, error) {
	return s.consultations.ListByStatus(salonID, models.ConsultationStatusNew)
}

// ListServedByStaff filters on the served timestamp, half-open [from, to).
func (s *ConsultationService) ListServedByStaff(staffID uuid.UUID, from, to time.Time) ([]models.Consultation, error) {
	return s.consultations.ListServedByStaff(staffID, from, to)
}

// Lookup resolves a client's access code back to their consultation.
func (s *ConsultationService) Lookup(accessCode string) (*models.Consultation, error) {
	cons, err := s.consultations.GetByAccessCode(accessCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cons, nil
}
