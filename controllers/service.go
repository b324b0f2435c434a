// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salonops-backend/models"
	"salonops-backend/store"
	"salonops-backend/utils"
)

// ServiceController is the minimal catalog surface the work ledger
// validates against; full catalog management lives elsewhere.
type ServiceController struct {
	services store.ServiceStore
}

func NewServiceController(services store.ServiceStore) *ServiceController {
	return &ServiceController{services: services}
}

type CreateServiceInput struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category"`
	Price    float64 `json:"price" binding:"required,min=0"`
}

func (ctl *ServiceController) Create(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	svc := models.Service{
		SalonID:  salonUUID,
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		IsActive: true,
	}
	if svc.Category == "" {
		svc.Category = "General"
	}
	if err := ctl.services.Create(&svc); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (ctl *ServiceController) List(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	list, err := ctl.services.ListBySalon(salonUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctl *ServiceController) Get(c *gin.Context) {
	salonUUID, ok := parseSalonID(c)
	if !ok {
		return
	}
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}
	svc, err := ctl.services.GetByID(salonUUID, serviceUUID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}
	c.JSON(http.StatusOK, svc)
}
