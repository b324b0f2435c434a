package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"salonops-backend/models"
)

// Gorm-backed stores. The compare-and-set updates rely on the database
// applying `UPDATE ... WHERE id = ? AND <field> = ?` atomically and
// reporting rows affected; no transaction spans more than one row.

type GormConsultations struct{ db *gorm.DB }

func NewGormConsultations(db *gorm.DB) *GormConsultations { return &GormConsultations{db: db} }

func (s *GormConsultations) Create(c *models.Consultation) error {
	return s.db.Create(c).Error
}

func (s *GormConsultations) GetByID(id uuid.UUID) (*models.Consultation, error) {
	var c models.Consultation
	if err := s.db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *GormConsultations) GetByAccessCode(code string) (*models.Consultation, error) {
	var c models.Consultation
	if err := s.db.Where("access_code = ?", code).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *GormConsultations) UpdateIfStatus(id uuid.UUID, expected string, upd ConsultationUpdate) (bool, error) {
	values := map[string]interface{}{"status": upd.Status}
	if upd.ClaimedBy != nil {
		values["claimed_by"] = *upd.ClaimedBy
	}
	if upd.ClaimedByID != nil {
		values["claimed_by_id"] = *upd.ClaimedByID
	}
	if upd.ClaimedAt != nil {
		values["claimed_at"] = *upd.ClaimedAt
	}
	if upd.ServedBy != nil {
		values["served_by"] = *upd.ServedBy
	}
	if upd.ServedByStaffID != nil {
		values["served_by_staff_id"] = *upd.ServedByStaffID
	}
	if upd.ServedAt != nil {
		values["served_at"] = *upd.ServedAt
	}
	if upd.DateServed != nil {
		values["date_served"] = *upd.DateServed
	}
	res := s.db.Model(&models.Consultation{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(values)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormConsultations) ListByStatus(salonID uuid.UUID, status string) ([]models.Consultation, error) {
	var out []models.Consultation
	err := s.db.Where("salon_id = ? AND status = ?", salonID, status).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *GormConsultations) ListBySalon(salonID uuid.UUID) ([]models.Consultation, error) {
	var out []models.Consultation
	err := s.db.Where("salon_id = ?", salonID).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *GormConsultations) ListServedByStaff(staffID uuid.UUID, from, to time.Time) ([]models.Consultation, error) {
	q := s.db.Where("served_by_staff_id = ? AND status = ?", staffID, models.ConsultationStatusServed)
	if !from.IsZero() {
		q = q.Where("served_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("served_at < ?", to)
	}
	var out []models.Consultation
	err := q.Order("served_at DESC").Find(&out).Error
	return out, err
}

type GormAttendance struct{ db *gorm.DB }

func NewGormAttendance(db *gorm.DB) *GormAttendance { return &GormAttendance{db: db} }

func (s *GormAttendance) Create(rec *models.AttendanceRecord) error {
	return s.db.Create(rec).Error
}

func (s *GormAttendance) GetByID(id uuid.UUID) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	if err := s.db.Where("id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormAttendance) FindOpen(salonID, staffID uuid.UUID) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	err := s.db.Where("salon_id = ? AND staff_id = ? AND clock_out IS NULL", salonID, staffID).
		Order("clock_in ASC").Find(&out).Error
	return out, err
}

func (s *GormAttendance) ListOpen(salonID uuid.UUID) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	err := s.db.Where("salon_id = ? AND clock_out IS NULL", salonID).
		Order("clock_in ASC").Find(&out).Error
	return out, err
}

func (s *GormAttendance) CloseIfOpen(id uuid.UUID, clockOut time.Time, duration float64) (bool, error) {
	res := s.db.Model(&models.AttendanceRecord{}).
		Where("id = ? AND clock_out IS NULL", id).
		Updates(map[string]interface{}{"clock_out": clockOut, "duration": duration})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormAttendance) ListBySalon(salonID uuid.UUID, from, to time.Time) ([]models.AttendanceRecord, error) {
	q := s.db.Where("salon_id = ?", salonID)
	if !from.IsZero() {
		q = q.Where("clock_in >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("clock_in < ?", to)
	}
	var out []models.AttendanceRecord
	err := q.Order("clock_in ASC").Find(&out).Error
	return out, err
}

type GormWorkLogs struct{ db *gorm.DB }

func NewGormWorkLogs(db *gorm.DB) *GormWorkLogs { return &GormWorkLogs{db: db} }

func (s *GormWorkLogs) Create(e *models.WorkLogEntry) error {
	return s.db.Create(e).Error
}

func (s *GormWorkLogs) ListByStaff(staffID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error) {
	q := s.db.Where("staff_id = ?", staffID)
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	var out []models.WorkLogEntry
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *GormWorkLogs) ListBySalon(salonID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error) {
	q := s.db.Where("salon_id = ?", salonID)
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	var out []models.WorkLogEntry
	err := q.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *GormWorkLogs) ListAll(salonID uuid.UUID) ([]models.WorkLogEntry, error) {
	var out []models.WorkLogEntry
	err := s.db.Where("salon_id = ?", salonID).Order("created_at ASC").Find(&out).Error
	return out, err
}

type GormStaff struct{ db *gorm.DB }

func NewGormStaff(db *gorm.DB) *GormStaff { return &GormStaff{db: db} }

func (s *GormStaff) Create(st *models.Staff) error {
	return s.db.Create(st).Error
}

func (s *GormStaff) GetByID(id uuid.UUID) (*models.Staff, error) {
	var st models.Staff
	if err := s.db.Where("id = ?", id).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (s *GormStaff) GetByLinkCode(code string) (*models.Staff, error) {
	var st models.Staff
	if err := s.db.Where("link_code = ?", code).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (s *GormStaff) ListBySalon(salonID uuid.UUID) ([]models.Staff, error) {
	var out []models.Staff
	err := s.db.Where("salon_id = ?", salonID).Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *GormStaff) Save(st *models.Staff) error {
	return s.db.Save(st).Error
}

type GormServices struct{ db *gorm.DB }

func NewGormServices(db *gorm.DB) *GormServices { return &GormServices{db: db} }

func (s *GormServices) Create(svc *models.Service) error {
	return s.db.Create(svc).Error
}

func (s *GormServices) GetByID(salonID, id uuid.UUID) (*models.Service, error) {
	var svc models.Service
	if err := s.db.Where("salon_id = ? AND id = ?", salonID, id).First(&svc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &svc, nil
}

func (s *GormServices) ListBySalon(salonID uuid.UUID) ([]models.Service, error) {
	var out []models.Service
	err := s.db.Where("salon_id = ?", salonID).Order("created_at ASC").Find(&out).Error
	return out, err
}

type GormSalons struct{ db *gorm.DB }

func NewGormSalons(db *gorm.DB) *GormSalons { return &GormSalons{db: db} }

func (s *GormSalons) Create(sl *models.Salon) error {
	return s.db.Create(sl).Error
}

func (s *GormSalons) List() ([]models.Salon, error) {
	var out []models.Salon
	err := s.db.Order("created_at ASC").Find(&out).Error
	return out, err
}

func (s *GormSalons) GetByID(id uuid.UUID) (*models.Salon, error) {
	var sl models.Salon
	if err := s.db.Where("id = ?", id).First(&sl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sl, nil
}
