// controllers/consultation.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salonops-backend/models"
	"salonops-backend/services"
	"salonops-backend/utils"
)

type ConsultationController struct {
	consultations *services.ConsultationService
	staff         *services.StaffDirectory
}

func NewConsultationController(consultations *services.ConsultationService, staff *services.StaffDirectory) *ConsultationController {
	return &ConsultationController{consultations: consultations, staff: staff}
}

// SubmitConsultationInput is the public intake form. Required-field
// enforcement lives in the engine so manual entry and the online form
// share one rule set; only the tenant key is checked at the edge.
type SubmitConsultationInput struct {
	SalonID        string `json:"salonId" binding:"required"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	HealthNotes    string `json:"healthNotes"`
	AllergyNotes   string `json:"allergyNotes"`
	DesiredService string `json:"desiredService"`
	ServiceConsent bool   `json:"serviceConsent"`
	PhotoConsent   bool   `json:"photoConsent"`
	DataConsent    bool   `json:"dataConsent"`
}

// Submit handles the public intake form. An optional ?staff=<linkCode>
// query carries the routing hint embedded in a staff member's personal
// intake link.
func (ctl *ConsultationController) Submit(c *gin.Context) {
	var input SubmitConsultationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	salonUUID, err := uuid.Parse(input.SalonID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return
	}

	cons, err := ctl.consultations.Submit(services.SubmitInput{
		SalonID:        salonUUID,
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		HealthNotes:    input.HealthNotes,
		AllergyNotes:   input.AllergyNotes,
		DesiredService: input.DesiredService,
		ServiceConsent: input.ServiceConsent,
		PhotoConsent:   input.PhotoConsent,
		DataConsent:    input.DataConsent,
		StaffLinkCode:  c.Query("staff"),
	}, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cons)
}

// CreateManual records a walk-in the owner enters by hand. Same rules as
// the online form, different source tag.
func (ctl *ConsultationController) CreateManual(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	var input SubmitConsultationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	cons, err := ctl.consultations.Submit(services.SubmitInput{
		SalonID:        salonUUID,
		Name:           input.Name,
		Phone:          input.Phone,
		Email:          input.Email,
		HealthNotes:    input.HealthNotes,
		AllergyNotes:   input.AllergyNotes,
		DesiredService: input.DesiredService,
		ServiceConsent: input.ServiceConsent,
		PhotoConsent:   input.PhotoConsent,
		DataConsent:    input.DataConsent,
		Source:         models.ConsultationSourceManual,
	}, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cons)
}

// Lookup lets a client check their consultation with the access code they
// got back at submission.
func (ctl *ConsultationController) Lookup(c *gin.Context) {
	cons, err := ctl.consultations.Lookup(c.Param("accessCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

// ListUnclaimed feeds the staff pickup queue, newest first.
func (ctl *ConsultationController) ListUnclaimed(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	list, err := ctl.consultations.ListUnclaimed(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve consultations")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctl *ConsultationController) resolveStaffAndID(c *gin.Context) (*models.Staff, uuid.UUID, bool) {
	st, err := ctl.staff.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return nil, uuid.Nil, false
	}
	consultationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid consultation ID format")
		return nil, uuid.Nil, false
	}
	return st, consultationID, true
}

// Claim picks a consultation out of the queue for one staff member. A 409
// means someone else got there first; the staff UI refreshes its list.
func (ctl *ConsultationController) Claim(c *gin.Context) {
	st, consultationID, ok := ctl.resolveStaffAndID(c)
	if !ok {
		return
	}
	cons, err := ctl.consultations.Claim(consultationID, st.ID, st.Name, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

// Serve marks a consultation completed, claimed first or not.
func (ctl *ConsultationController) Serve(c *gin.Context) {
	st, consultationID, ok := ctl.resolveStaffAndID(c)
	if !ok {
		return
	}
	cons, err := ctl.consultations.Serve(consultationID, st.ID, st.Name, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cons)
}

// ListServed returns the consultations a staff member completed inside an
// optional from/to window.
func (ctl *ConsultationController) ListServed(c *gin.Context) {
	st, err := ctl.staff.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	from, to, ok := parseWindow(c)
	if !ok {
		return
	}
	list, err := ctl.consultations.ListServedByStaff(st.ID, from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve consultations")
		return
	}
	c.JSON(http.StatusOK, list)
}
