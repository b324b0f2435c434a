package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salonops-backend/services"
	"salonops-backend/utils"
)

// respondServiceError maps engine errors onto HTTP codes. A failed
// claim/serve precondition is a 409 the client answers by refreshing its
// list, not an alarm.
func respondServiceError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error(), "fields": vErr.Fields})
	case errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "alreadyHandled": true})
	case errors.Is(err, services.ErrAlreadyClockedIn), errors.Is(err, services.ErrAlreadyClosed):
		utils.RespondWithError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidPrice), errors.Is(err, services.ErrInvalidService):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal error")
	}
}

func parseSalonID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("salonId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parseWindow reads optional from/to query params as either calendar days
// ("2006-01-02") or RFC3339 timestamps. A day-form `to` is inclusive and
// extends to the end of that day.
func parseWindow(c *gin.Context) (from, to time.Time, ok bool) {
	parse := func(value string, endOfDay bool) (time.Time, bool) {
		if value == "" {
			return time.Time{}, true
		}
		if t, err := time.ParseInLocation(utils.DayLayout, value, time.Local); err == nil {
			if endOfDay {
				t = utils.EndOfDay(t)
			}
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t, true
		}
		return time.Time{}, false
	}

	from, ok = parse(c.Query("from"), false)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date")
		return
	}
	to, ok = parse(c.Query("to"), true)
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date")
		return
	}
	return from, to, true
}
