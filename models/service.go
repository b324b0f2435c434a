package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	Name     string  `gorm:"not null" json:"name"`
	Category string  `gorm:"default:'General'" json:"category"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive bool    `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
