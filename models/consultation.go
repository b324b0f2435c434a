package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Consultation statuses. A consultation only ever moves forward:
// new -> claimed -> served. Served is terminal.
const (
	ConsultationStatusNew     = "new"
	ConsultationStatusClaimed = "claimed"
	ConsultationStatusServed  = "served"
)

// Consultation source tags.
const (
	ConsultationSourceOnlineForm = "online_form"
	ConsultationSourceManual     = "manual"
)

type Consultation struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`

	// Client-supplied intake fields. Health and allergy notes are relayed
	// verbatim to staff and never interpreted here.
	Name           string `gorm:"not null" json:"name"`
	Phone          string `gorm:"not null" json:"phone"`
	Email          string `json:"email"`
	HealthNotes    string `gorm:"type:text" json:"healthNotes"`
	AllergyNotes   string `gorm:"type:text" json:"allergyNotes"`
	DesiredService string `json:"desiredService"`
	ServiceConsent bool   `gorm:"not null" json:"serviceConsent"`
	PhotoConsent   bool   `gorm:"default:false" json:"photoConsent"`
	DataConsent    bool   `gorm:"default:false" json:"dataConsent"`

	// Optional pre-routing hint carried by the intake link.
	AssignedStaffID   *uuid.UUID `gorm:"type:uuid" json:"assignedStaffId"`
	AssignedStaffName string     `json:"assignedStaffName"`

	// Workflow fields, mutated only through the claim/serve transitions.
	Status          string     `gorm:"type:varchar(20);index;default:'new'" json:"status"`
	ClaimedBy       string     `json:"claimedBy"`
	ClaimedByID     *uuid.UUID `gorm:"type:uuid" json:"claimedById"`
	ClaimedAt       *time.Time `json:"claimedAt"`
	ServedBy        string     `json:"servedBy"`
	ServedByStaffID *uuid.UUID `gorm:"type:uuid;index" json:"servedByStaffId"`
	ServedAt        *time.Time `json:"servedAt"`
	DateServed      string     `gorm:"type:varchar(10);index" json:"dateServed"`

	// AccessCode is the opaque token a client uses to look their
	// consultation up again; it carries no authentication weight.
	AccessCode string `gorm:"uniqueIndex;not null" json:"accessCode"`
	Source     string `gorm:"type:varchar(20);default:'online_form'" json:"source"`

	CreatedAt time.Time `json:"createdAt"`
}

func (c *Consultation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
