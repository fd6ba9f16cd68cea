package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"hotel-reservation/middleware"
	"hotel-reservation/models"
	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

// HotelController serves the public dashboard: available rooms with optional
// date/guest/type filtering, the actor's recent bookings, and the staff stats
// block.
type HotelController struct {
	Rooms    *services.RoomService
	Bookings *services.BookingService
	Stats    *services.StatsService
}

func NewHotelController(rooms *services.RoomService, bookings *services.BookingService, stats *services.StatsService) *HotelController {
	return &HotelController{Rooms: rooms, Bookings: bookings, Stats: stats}
}

func (hc *HotelController) Dashboard(c *gin.Context) {
	var checkIn, checkOut *time.Time
	if inStr, outStr := c.Query("check_in_date"), c.Query("check_out_date"); inStr != "" && outStr != "" {
		in, errIn := parseDate(inStr)
		out, errOut := parseDate(outStr)
		if errIn == nil && errOut == nil && out.After(in) {
			checkIn, checkOut = &in, &out
		}
	}

	guests := 0
	if gStr := c.Query("guests"); gStr != "" {
		if v, err := strconv.Atoi(gStr); err == nil {
			guests = v
		}
	}

	rooms, err := hc.Rooms.AvailableRooms(checkIn, checkOut, guests, models.RoomType(c.Query("room_type")))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	types, err := hc.Rooms.Types()
	if err != nil {
		handleServiceError(c, err)
		return
	}
	maxCapacity, err := hc.Rooms.MaxCapacity()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	data := gin.H{
		"available_rooms": rooms,
		"filters": gin.H{
			"room_types":   types,
			"max_capacity": maxCapacity,
		},
	}

	if actor, ok := middleware.Actor(c); ok {
		recent, err := hc.Bookings.RecentForUser(actor.ID, 5)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		data["recent_bookings"] = recent

		stats, err := hc.Stats.Dashboard(*actor, time.Now())
		if err != nil && !errors.Is(err, services.ErrForbidden) {
			handleServiceError(c, err)
			return
		}
		if stats != nil {
			data["stats"] = stats
		}
	}

	utils.JSONSuccess(c, http.StatusOK, data)
}

type searchPayload struct {
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
	Guests       int    `json:"guests"`
	RoomType     string `json:"room_type"`
}

// Search validates availability-search input and echoes the normalized
// filters for the dashboard query.
func (hc *HotelController) Search(c *gin.Context) {
	var payload searchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	fieldErrs := services.FieldErrors{}
	checkIn, errIn := parseDate(payload.CheckInDate)
	if errIn != nil {
		fieldErrs["check_in_date"] = "Check-in date must be a valid date (YYYY-MM-DD)."
	}
	checkOut, errOut := parseDate(payload.CheckOutDate)
	if errOut != nil {
		fieldErrs["check_out_date"] = "Check-out date must be a valid date (YYYY-MM-DD)."
	}
	if errIn == nil && models.DateOnly(checkIn).Before(models.DateOnly(time.Now())) {
		fieldErrs["check_in_date"] = "Check-in date must be today or later."
	}
	if errIn == nil && errOut == nil && !checkOut.After(checkIn) {
		fieldErrs["check_out_date"] = "Check-out date must be after check-in date."
	}
	if payload.Guests < 0 || payload.Guests > 10 {
		fieldErrs["guests"] = "Guests must be between 1 and 10."
	}
	if len(fieldErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusUnprocessableEntity, fieldErrs)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"check_in_date":  checkIn.Format(dateLayout),
		"check_out_date": checkOut.Format(dateLayout),
		"guests":         payload.Guests,
		"room_type":      payload.RoomType,
	})
}
