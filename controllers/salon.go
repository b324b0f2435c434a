// controllers/salon.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"salonops-backend/models"
	"salonops-backend/store"
	"salonops-backend/utils"
)

// SalonController covers the administrative tenant-root actions: create
// once, read for branding. Salons are never deleted.
type SalonController struct {
	salons store.SalonStore
}

func NewSalonController(salons store.SalonStore) *SalonController {
	return &SalonController{salons: salons}
}

type CreateSalonInput struct {
	Name           string `json:"name" binding:"required"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

func (ctl *SalonController) Create(c *gin.Context) {
	var input CreateSalonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	salon := models.Salon{
		Name:           input.Name,
		PrimaryColor:   input.PrimaryColor,
		SecondaryColor: input.SecondaryColor,
	}
	if err := ctl.salons.Create(&salon); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create salon")
		return
	}
	c.JSON(http.StatusCreated, salon)
}

func (ctl *SalonController) Get(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	salon, err := ctl.salons.GetByID(salonUUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Salon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	c.JSON(http.StatusOK, salon)
}
