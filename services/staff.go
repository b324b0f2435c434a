package services

import (
	"errors"

	"github.com/google/uuid"

	"salonops-backend/models"
	"salonops-backend/store"
	"salonops-backend/utils"
)

// StaffDirectory manages the staff roster. Every workflow route addresses
// staff by link code, so resolution lives here; records are soft-disabled
// rather than deleted because ledger rows keep pointing at them.
type StaffDirectory struct {
	staff store.StaffStore
}

func NewStaffDirectory(staff store.StaffStore) *StaffDirectory {
	return &StaffDirectory{staff: staff}
}

// Add creates a staff member with a freshly generated link code.
func (d *StaffDirectory) Add(salonID uuid.UUID, name, phone, email string) (*models.Staff, error) {
	st := &models.Staff{
		SalonID:  salonID,
		Name:     name,
		Phone:    phone,
		Email:    email,
		LinkCode: utils.GenerateLinkCode(),
		IsActive: true,
	}
	if err := d.staff.Create(st); err != nil {
		return nil, err
	}
	return st, nil
}

// ByLinkCode resolves an active staff member from their shareable code.
// Disabled staff resolve as not found; their links stop working the
// moment they are disabled.
func (d *StaffDirectory) ByLinkCode(code string) (*models.Staff, error) {
	st, err := d.staff.GetByLinkCode(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !st.IsActive {
		return nil, ErrNotFound
	}
	return st, nil
}

func (d *StaffDirectory) List(salonID uuid.UUID) ([]models.Staff, error) {
	return d.staff.ListBySalon(salonID)
}

// SetActive soft-enables or soft-disables a staff member.
func (d *StaffDirectory) SetActive(id uuid.UUID, active bool) (*models.Staff, error) {
	st, err := d.staff.GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	st.IsActive = active
	if err := d.staff.Save(st); err != nil {
		return nil, err
	}
	return st, nil
}
