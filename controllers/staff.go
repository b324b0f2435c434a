// controllers/staff.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salonops-backend/services"
	"salonops-backend/utils"
)

type StaffController struct {
	directory *services.StaffDirectory
}

func NewStaffController(directory *services.StaffDirectory) *StaffController {
	return &StaffController{directory: directory}
}

type AddStaffInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type UpdateStaffInput struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// Add creates a staff member; the response carries the generated link
// code the owner shares with them.
func (ctl *StaffController) Add(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	var input AddStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	st, err := ctl.directory.Add(salonUUID, input.Name, input.Phone, input.Email)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}
	c.JSON(http.StatusCreated, st)
}

func (ctl *StaffController) List(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	list, err := ctl.directory.List(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Update soft-enables or soft-disables a staff member. There is no hard
// delete; ledger rows keep referencing the id.
func (ctl *StaffController) Update(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}
	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	st, err := ctl.directory.SetActive(staffUUID, *input.IsActive)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// Whoami resolves a link code back to the staff member, for the staff UI
// to show whose link was opened.
func (ctl *StaffController) Whoami(c *gin.Context) {
	st, err := ctl.directory.ByLinkCode(c.Param("linkCode"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
