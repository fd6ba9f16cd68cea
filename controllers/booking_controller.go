package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hotel-reservation/middleware"
	"hotel-reservation/models"
	"hotel-reservation/services"
	"hotel-reservation/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

type bookingPayload struct {
	RoomID          uint   `json:"room_id"`
	GuestName       string `json:"guest_name" binding:"required"`
	GuestEmail      string `json:"guest_email" binding:"required"`
	GuestPhone      string `json:"guest_phone" binding:"required"`
	CheckInDate     string `json:"check_in_date" binding:"required"`
	CheckOutDate    string `json:"check_out_date" binding:"required"`
	NumberOfGuests  int    `json:"number_of_guests" binding:"required"`
	SpecialRequests string `json:"special_requests"`
	Status          string `json:"status"`
}

func (p *bookingPayload) dates() (checkIn, checkOut time.Time, errs services.FieldErrors) {
	errs = services.FieldErrors{}
	var err error
	checkIn, err = parseDate(p.CheckInDate)
	if err != nil {
		errs["check_in_date"] = "Check-in date must be a valid date (YYYY-MM-DD)."
	}
	checkOut, err = parseDate(p.CheckOutDate)
	if err != nil {
		errs["check_out_date"] = "Check-out date must be a valid date (YYYY-MM-DD)."
	}
	return checkIn, checkOut, errs
}

// ----------------------------------------------------
// 1. List Bookings (GET /api/bookings)
// ----------------------------------------------------

func (bc *BookingController) List(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	filter := services.BookingFilter{
		Status:    models.BookingStatus(c.Query("status")),
		GuestName: c.Query("guest_name"),
	}
	if roomStr := c.Query("room_id"); roomStr != "" {
		if v, err := strconv.ParseUint(roomStr, 10, 32); err == nil {
			filter.RoomID = uint(v)
		}
	}
	if fromStr := c.Query("check_in_date"); fromStr != "" {
		if from, err := parseDate(fromStr); err == nil {
			filter.CheckInFrom = &from
		}
	}

	bookings, err := bc.Bookings.List(*actor, filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookings": bookings,
		"filters": gin.H{
			"statuses": []models.BookingStatus{
				models.BookingStatusPending,
				models.BookingStatusConfirmed,
				models.BookingStatusCheckedIn,
				models.BookingStatusCheckedOut,
				models.BookingStatusCancelled,
			},
		},
	})
}

// ----------------------------------------------------
// 2. Create Booking (POST /api/bookings)
// ----------------------------------------------------

func (bc *BookingController) Create(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	var payload bookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.RoomID == 0 {
		utils.JSONFieldErrors(c, http.StatusUnprocessableEntity,
			map[string]string{"room_id": "Please select a room."})
		return
	}

	checkIn, checkOut, dateErrs := payload.dates()
	if len(dateErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusUnprocessableEntity, dateErrs)
		return
	}

	booking, err := bc.Bookings.Create(*actor, services.CreateBookingInput{
		RoomID:          payload.RoomID,
		GuestName:       payload.GuestName,
		GuestEmail:      payload.GuestEmail,
		GuestPhone:      payload.GuestPhone,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  payload.NumberOfGuests,
		SpecialRequests: payload.SpecialRequests,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// ----------------------------------------------------
// 3. Show Booking (GET /api/bookings/:id)
// ----------------------------------------------------

func (bc *BookingController) Show(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.Get(*actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ----------------------------------------------------
// 4. Update Booking (PUT /api/bookings/:id)
// ----------------------------------------------------

func (bc *BookingController) Update(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload bookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	checkIn, checkOut, dateErrs := payload.dates()
	if len(dateErrs) > 0 {
		utils.JSONFieldErrors(c, http.StatusUnprocessableEntity, dateErrs)
		return
	}

	booking, err := bc.Bookings.Update(*actor, id, services.UpdateBookingInput{
		GuestName:       payload.GuestName,
		GuestEmail:      payload.GuestEmail,
		GuestPhone:      payload.GuestPhone,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  payload.NumberOfGuests,
		SpecialRequests: payload.SpecialRequests,
		Status:          models.BookingStatus(payload.Status),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ----------------------------------------------------
// 5. Cancel / Check-in / Check-out
// ----------------------------------------------------

func (bc *BookingController) Cancel(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.Cancel(*actor, id, time.Now())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CheckIn(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.CheckIn(*actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (bc *BookingController) CheckOut(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := bc.Bookings.CheckOut(*actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// ----------------------------------------------------
// 6. Delete Booking (DELETE /api/bookings/:id)
// ----------------------------------------------------

func (bc *BookingController) Delete(c *gin.Context) {
	actor, _ := middleware.Actor(c)

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := bc.Bookings.Delete(*actor, id); err != nil {
		handleServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking deleted successfully."})
}
