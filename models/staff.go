package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Staff members are addressed by their LinkCode in every workflow route;
// there is no staff login. Records are soft-disabled, never hard-deleted,
// because ledger rows keep referencing them by id.
type Staff struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	Name     string `gorm:"not null" json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkCode string `gorm:"uniqueIndex;not null" json:"linkCode"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
