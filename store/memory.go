package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"salonops-backend/models"
)

// In-memory stores backing tests and single-process deployments. A mutex
// per collection stands in for the database's conditional update: the
// precondition check and the write happen under one lock, which gives the
// same at-most-one-winner behavior as the SQL form.

type MemoryConsultations struct {
	mu   sync.Mutex
	rows []*models.Consultation
	byID map[uuid.UUID]*models.Consultation
}

func NewMemoryConsultations() *MemoryConsultations {
	return &MemoryConsultations{byID: make(map[uuid.UUID]*models.Consultation)}
}

func (s *MemoryConsultations) Create(c *models.Consultation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	cp := *c
	s.rows = append(s.rows, &cp)
	s.byID[cp.ID] = &cp
	return nil
}

func (s *MemoryConsultations) GetByID(id uuid.UUID) (*models.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryConsultations) GetByAccessCode(code string) (*models.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.rows {
		if c.AccessCode == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryConsultations) UpdateIfStatus(id uuid.UUID, expected string, upd ConsultationUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if c.Status != expected {
		return false, nil
	}
	c.Status = upd.Status
	if upd.ClaimedBy != nil {
		c.ClaimedBy = *upd.ClaimedBy
	}
	if upd.ClaimedByID != nil {
		c.ClaimedByID = upd.ClaimedByID
	}
	if upd.ClaimedAt != nil {
		c.ClaimedAt = upd.ClaimedAt
	}
	if upd.ServedBy != nil {
		c.ServedBy = *upd.ServedBy
	}
	if upd.ServedByStaffID != nil {
		c.ServedByStaffID = upd.ServedByStaffID
	}
	if upd.ServedAt != nil {
		c.ServedAt = upd.ServedAt
	}
	if upd.DateServed != nil {
		c.DateServed = *upd.DateServed
	}
	return true, nil
}

func (s *MemoryConsultations) ListByStatus(salonID uuid.UUID, status string) ([]models.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Consultation
	for i := len(s.rows) - 1; i >= 0; i-- {
		c := s.rows[i]
		if c.SalonID == salonID && c.Status == status {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryConsultations) ListBySalon(salonID uuid.UUID) ([]models.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Consultation
	for _, c := range s.rows {
		if c.SalonID == salonID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *MemoryConsultations) ListServedByStaff(staffID uuid.UUID, from, to time.Time) ([]models.Consultation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Consultation
	for _, c := range s.rows {
		if c.Status != models.ConsultationStatusServed {
			continue
		}
		if c.ServedByStaffID == nil || *c.ServedByStaffID != staffID {
			continue
		}
		if c.ServedAt == nil || !inRange(*c.ServedAt, from, to) {
			continue
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ServedAt.After(*out[j].ServedAt) })
	return out, nil
}

type MemoryAttendance struct {
	mu   sync.Mutex
	rows []*models.AttendanceRecord
	byID map[uuid.UUID]*models.AttendanceRecord
}

func NewMemoryAttendance() *MemoryAttendance {
	return &MemoryAttendance{byID: make(map[uuid.UUID]*models.AttendanceRecord)}
}

func (s *MemoryAttendance) Create(rec *models.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	cp := *rec
	s.rows = append(s.rows, &cp)
	s.byID[cp.ID] = &cp
	return nil
}

func (s *MemoryAttendance) GetByID(id uuid.UUID) (*models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryAttendance) FindOpen(salonID, staffID uuid.UUID) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AttendanceRecord
	for _, rec := range s.rows {
		if rec.SalonID == salonID && rec.StaffID == staffID && rec.ClockOut == nil {
			out = append(out, *rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ClockIn.Before(out[j].ClockIn) })
	return out, nil
}

func (s *MemoryAttendance) ListOpen(salonID uuid.UUID) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AttendanceRecord
	for _, rec := range s.rows {
		if rec.SalonID == salonID && rec.ClockOut == nil {
			out = append(out, *rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ClockIn.Before(out[j].ClockIn) })
	return out, nil
}

func (s *MemoryAttendance) CloseIfOpen(id uuid.UUID, clockOut time.Time, duration float64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.byID[id]
	if !ok {
		return false, ErrNotFound
	}
	if rec.ClockOut != nil {
		return false, nil
	}
	out := clockOut
	rec.ClockOut = &out
	rec.Duration = duration
	return true, nil
}

func (s *MemoryAttendance) ListBySalon(salonID uuid.UUID, from, to time.Time) ([]models.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.AttendanceRecord
	for _, rec := range s.rows {
		if rec.SalonID == salonID && inRange(rec.ClockIn, from, to) {
			out = append(out, *rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ClockIn.Before(out[j].ClockIn) })
	return out, nil
}

type MemoryWorkLogs struct {
	mu   sync.Mutex
	rows []*models.WorkLogEntry
}

func NewMemoryWorkLogs() *MemoryWorkLogs { return &MemoryWorkLogs{} }

func (s *MemoryWorkLogs) Create(e *models.WorkLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	cp := *e
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *MemoryWorkLogs) ListByStaff(staffID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WorkLogEntry
	for _, e := range s.rows {
		if e.StaffID == staffID && inRange(e.CreatedAt, from, to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *MemoryWorkLogs) ListBySalon(salonID uuid.UUID, from, to time.Time) ([]models.WorkLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WorkLogEntry
	for _, e := range s.rows {
		if e.SalonID == salonID && inRange(e.CreatedAt, from, to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *MemoryWorkLogs) ListAll(salonID uuid.UUID) ([]models.WorkLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WorkLogEntry
	for _, e := range s.rows {
		if e.SalonID == salonID {
			out = append(out, *e)
		}
	}
	return out, nil
}

type MemoryStaff struct {
	mu   sync.Mutex
	rows []*models.Staff
	byID map[uuid.UUID]*models.Staff
}

func NewMemoryStaff() *MemoryStaff {
	return &MemoryStaff{byID: make(map[uuid.UUID]*models.Staff)}
}

func (s *MemoryStaff) Create(st *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	cp := *st
	s.rows = append(s.rows, &cp)
	s.byID[cp.ID] = &cp
	return nil
}

func (s *MemoryStaff) GetByID(id uuid.UUID) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *MemoryStaff) GetByLinkCode(code string) (*models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.rows {
		if st.LinkCode == code {
			cp := *st
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStaff) ListBySalon(salonID uuid.UUID) ([]models.Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Staff
	for _, st := range s.rows {
		if st.SalonID == salonID {
			out = append(out, *st)
		}
	}
	return out, nil
}

func (s *MemoryStaff) Save(st *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.byID[st.ID]
	if !ok {
		return ErrNotFound
	}
	*cur = *st
	return nil
}

type MemoryServices struct {
	mu   sync.Mutex
	rows []*models.Service
}

func NewMemoryServices() *MemoryServices { return &MemoryServices{} }

func (s *MemoryServices) Create(svc *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	cp := *svc
	s.rows = append(s.rows, &cp)
	return nil
}

func (s *MemoryServices) GetByID(salonID, id uuid.UUID) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, svc := range s.rows {
		if svc.SalonID == salonID && svc.ID == id {
			cp := *svc
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryServices) ListBySalon(salonID uuid.UUID) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Service
	for _, svc := range s.rows {
		if svc.SalonID == salonID {
			out = append(out, *svc)
		}
	}
	return out, nil
}

type MemorySalons struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Salon
}

func NewMemorySalons() *MemorySalons {
	return &MemorySalons{rows: make(map[uuid.UUID]*models.Salon)}
}

func (s *MemorySalons) Create(sl *models.Salon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sl.ID == uuid.Nil {
		sl.ID = uuid.New()
	}
	cp := *sl
	s.rows[cp.ID] = &cp
	return nil
}

func (s *MemorySalons) List() ([]models.Salon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Salon, 0, len(s.rows))
	for _, sl := range s.rows {
		out = append(out, *sl)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemorySalons) GetByID(id uuid.UUID) (*models.Salon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sl, ok := s.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sl
	return &cp, nil
}
