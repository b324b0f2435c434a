// controllers/attendance.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"salonops-backend/services"
	"salonops-backend/utils"
)

type AttendanceController struct {
	attendance *services.AttendanceService
	staff      *services.StaffDirectory
}

func NewAttendanceController(attendance *services.AttendanceService, staff *services.StaffDirectory) *AttendanceController {
	return &AttendanceController{attendance: attendance, staff: staff}
}

// ClockIn opens a shift for the staff member behind the link code.
func (ctl *AttendanceController) ClockIn(c *gin.Context) {
	st, err := ctl.staff.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	rec, err := ctl.attendance.ClockIn(st.ID, st.Name, st.SalonID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ClockOut closes the staff member's current open shift.
func (ctl *AttendanceController) ClockOut(c *gin.Context) {
	st, err := ctl.staff.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	open, err := ctl.attendance.OpenRecordFor(st.SalonID, st.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to look up clock status")
		return
	}
	if open == nil {
		utils.RespondWithError(c, http.StatusConflict, "Not currently clocked in")
		return
	}
	duration, err := ctl.attendance.ClockOut(open.ID, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recordId": open.ID, "duration": duration})
}

// Status powers the staff clock toggle button.
func (ctl *AttendanceController) Status(c *gin.Context) {
	st, err := ctl.staff.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	open, err := ctl.attendance.OpenRecordFor(st.SalonID, st.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to look up clock status")
		return
	}
	if open == nil {
		c.JSON(http.StatusOK, gin.H{"clockedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clockedIn": true, "record": open})
}

// Active lists who is clocked in right now. Eventually consistent like
// every other read.
func (ctl *AttendanceController) Active(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	records, err := ctl.attendance.OpenRecords(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve open records")
		return
	}
	ids, err := ctl.attendance.CurrentlyClockedIn(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clocked-in staff")
		return
	}
	c.JSON(http.StatusOK, gin.H{"staffIds": ids, "records": records, "count": len(ids)})
}

// History returns a salon's attendance records in an optional window.
func (ctl *AttendanceController) History(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}
	records, err := ctl.attendance.History(salonUUID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve attendance records")
		return
	}
	c.JSON(http.StatusOK, records)
}
