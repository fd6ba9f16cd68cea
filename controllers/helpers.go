package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// handleServiceError maps the service error taxonomy onto HTTP responses:
// field-keyed errors -> 422, authorization -> 403, not found -> 404,
// delete guards -> 409 with a general message, anything else -> 500.
func handleServiceError(c *gin.Context, err error) {
	var fieldErrs services.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		utils.JSONFieldErrors(c, http.StatusUnprocessableEntity, fieldErrs)
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "You are not allowed to perform this action.")
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Record not found.")
	case services.IsGuardError(err):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("❌ internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error.")
	}
}
