package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Salon struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	PrimaryColor   string    `gorm:"type:varchar(9);default:'#1a1a2e'" json:"primaryColor"`
	SecondaryColor string    `gorm:"type:varchar(9);default:'#c9a227'" json:"secondaryColor"`

	Staff         []Staff        `gorm:"foreignKey:SalonID" json:"-"`
	Services      []Service      `gorm:"foreignKey:SalonID" json:"-"`
	Consultations []Consultation `gorm:"foreignKey:SalonID" json:"-"`

	gorm.Model `json:"-"`
}

func (s *Salon) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
