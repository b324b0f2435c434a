// controllers/worklog.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salonops-backend/services"
	"salonops-backend/utils"
)

type WorkLogController struct {
	worklogs *services.WorkLogService
	staff    *services.StaffDirectory
}

func NewWorkLogController(worklogs *services.WorkLogService, staff *services.StaffDirectory) *WorkLogController {
	return &WorkLogController{worklogs: worklogs, staff: staff}
}

type LogWorkInput struct {
	ServiceID string  `json:"serviceId" binding:"required"`
	Price     float64 `json:"price" binding:"required"`
	Client    string  `json:"client"`
	Notes     string  `json:"notes"`
}

// Log appends one completed service to the work ledger.
func (ctl *WorkLogController) Log(c *gin.Context) {
	st, err := ctl.staff.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var input LogWorkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	serviceUUID, err := uuid.Parse(input.ServiceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	entry, err := ctl.worklogs.LogWork(st.ID, st.Name, st.SalonID, serviceUUID, input.Price, input.Client, input.Notes, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListByStaff returns one staff member's entries in an optional window.
func (ctl *WorkLogController) ListByStaff(c *gin.Context) {
	st, err := ctl.staff.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}
	entries, err := ctl.worklogs.QueryByStaff(st.ID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve work logs")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListBySalon returns a salon's entries. by=date switches the filter from
// creation timestamps to the stored calendar-day keys.
func (ctl *WorkLogController) ListBySalon(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}

	if c.Query("by") == "date" {
		entries, err := ctl.worklogs.QueryBySalonDays(salonUUID, c.Query("from"), c.Query("to"))
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve work logs")
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	from, to, ok := parseWindow(c)
	if !ok {
		return
	}
	entries, err := ctl.worklogs.QueryBySalon(salonUUID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve work logs")
		return
	}
	c.JSON(http.StatusOK, entries)
}
