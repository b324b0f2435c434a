package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkLogEntry records one completed service. Service name, category and
// price are snapshotted at write time so later catalog edits never rewrite
// history. Entries are append-only; there is no update or delete path.
type WorkLogEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	StaffID uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`

	StaffName       string    `gorm:"not null" json:"staffName"`
	ServiceID       uuid.UUID `gorm:"type:uuid;index;not null" json:"serviceId"`
	ServiceName     string    `gorm:"not null" json:"serviceName"`
	ServiceCategory string    `gorm:"default:'General'" json:"serviceCategory"`
	ServicePrice    float64   `gorm:"type:decimal(10,2);not null" json:"servicePrice"`

	// Client is free text; "Walk-in" when the client gave no name.
	Client string `gorm:"not null" json:"client"`
	Notes  string `gorm:"type:text" json:"notes"`

	// Date is the calendar day the work was logged, "2006-01-02".
	Date string `gorm:"type:varchar(10);index;not null" json:"date"`

	CreatedAt time.Time `json:"createdAt"`
}

func (w *WorkLogEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
