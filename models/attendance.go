package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceRecord is one clock-in/clock-out pair. StaffName is copied in
// at clock-in so the row stays readable after the staff record is disabled.
// Invariant: at most one record per staff+salon with ClockOut unset.
type AttendanceRecord struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SalonID uuid.UUID `gorm:"type:uuid;index;not null" json:"salonId"`
	StaffID uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`

	StaffName string     `gorm:"not null" json:"staffName"`
	ClockIn   time.Time  `gorm:"not null" json:"clockIn"`
	ClockOut  *time.Time `json:"clockOut"`

	// Date is the calendar day of ClockIn in the salon's location,
	// formatted "2006-01-02". Duration is hours, set once at clock-out.
	Date     string  `gorm:"type:varchar(10);index;not null" json:"date"`
	Duration float64 `gorm:"type:decimal(6,2);default:0.0" json:"duration"`

	CreatedAt time.Time `json:"createdAt"`
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// Open reports whether the record is still waiting for a clock-out.
func (a *AttendanceRecord) Open() bool {
	return a.ClockOut == nil
}
