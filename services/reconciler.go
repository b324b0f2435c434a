// services/reconciler.go
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"salonops-backend/store"
	"salonops-backend/utils"
)

// Reconciler repairs the attendance ledger where the write path cannot:
// a forgotten clock-out leaves a record open forever, and a concurrent
// double clock-in can slip a duplicate open record past the pre-write
// check. Both repairs use the same conditional close as a normal
// clock-out, so running concurrently with live traffic is safe and the
// job is idempotent.
type Reconciler struct {
	attendance store.AttendanceStore
	salons     store.SalonStore
	log        *logrus.Logger
	cron       *cron.Cron
}

func NewReconciler(attendance store.AttendanceStore, salons store.SalonStore, log *logrus.Logger) *Reconciler {
	return &Reconciler{attendance: attendance, salons: salons, log: log}
}

// StartScheduler runs the reconciliation daily just after midnight.
func (r *Reconciler) StartScheduler() {
	r.cron = cron.New()
	r.cron.AddFunc("5 0 * * *", func() {
		r.Run(time.Now())
	})
	r.cron.Start()
	r.log.Info("attendance reconciler started")
}

func (r *Reconciler) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// Run reconciles every salon once. Returns the number of records closed.
func (r *Reconciler) Run(now time.Time) int {
	salons, err := r.salons.List()
	if err != nil {
		r.log.Warn("reconciler: failed to list salons: " + err.Error())
		return 0
	}
	closed := 0
	for _, salon := range salons {
		closed += r.reconcileSalon(salon.ID, now)
	}
	if closed > 0 {
		r.log.WithFields(logrus.Fields{"closed": closed}).Info("attendance reconciliation done")
	}
	return closed
}

func (r *Reconciler) reconcileSalon(salonID uuid.UUID, now time.Time) int {
	open, err := r.attendance.ListOpen(salonID)
	if err != nil {
		r.log.WithFields(logrus.Fields{"salonId": salonID}).
			Warn("reconciler: failed to list open records: " + err.Error())
		return 0
	}

	closed := 0
	today := utils.DayString(now)
	firstOpen := make(map[uuid.UUID]bool)

	for _, rec := range open {
		// A record still open from an earlier day is a forgotten
		// clock-out; close it at the end of its own day.
		if rec.Date < today {
			end := utils.EndOfDay(rec.ClockIn)
			if ok, err := r.attendance.CloseIfOpen(rec.ID, end, ClockDuration(rec.ClockIn, end)); err != nil {
				r.log.WithFields(logrus.Fields{"recordId": rec.ID}).
					Warn("reconciler: failed to close stale record: " + err.Error())
			} else if ok {
				closed++
			}
			continue
		}

		// Among today's records, ListOpen is ordered by clock-in, so the
		// first seen per staff member survives; any later open record is
		// the duplicate from a lost double-submission race and closes
		// with zero duration at its own clock-in.
		if firstOpen[rec.StaffID] {
			if ok, err := r.attendance.CloseIfOpen(rec.ID, rec.ClockIn, 0); err != nil {
				r.log.WithFields(logrus.Fields{"recordId": rec.ID}).
					Warn("reconciler: failed to close duplicate record: " + err.Error())
			} else if ok {
				closed++
			}
			continue
		}
		firstOpen[rec.StaffID] = true
	}
	return closed
}
