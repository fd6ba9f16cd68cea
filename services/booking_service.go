// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-reservation/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService wraps *gorm.DB and owns the booking flow: availability check,
// pricing, persistence and status transitions. Every authorization-sensitive
// method takes the acting user explicitly; there is no ambient current-user
// state anywhere in this package.
type BookingService struct {
	DB    *gorm.DB
	Rooms *RoomService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Rooms: NewRoomService(db)}
}

// CreateBookingInput is the validated request body for a new booking.
type CreateBookingInput struct {
	RoomID          uint
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumberOfGuests  int
	SpecialRequests string
}

func validateGuestFields(name, email, phone string, guests int, special string, fieldErrs FieldErrors) {
	if strings.TrimSpace(name) == "" {
		fieldErrs["guest_name"] = "Guest name is required."
	}
	email = strings.TrimSpace(email)
	if email == "" {
		fieldErrs["guest_email"] = "Guest email is required."
	} else if !strings.Contains(email, "@") {
		fieldErrs["guest_email"] = "Please provide a valid email address."
	}
	phone = strings.TrimSpace(phone)
	if phone == "" {
		fieldErrs["guest_phone"] = "Guest phone number is required."
	} else if len(phone) > 20 {
		fieldErrs["guest_phone"] = "Guest phone number may not exceed 20 characters."
	}
	if guests < 1 {
		fieldErrs["number_of_guests"] = "At least 1 guest is required."
	} else if guests > 10 {
		fieldErrs["number_of_guests"] = "Maximum 10 guests allowed."
	}
	if len(special) > 1000 {
		fieldErrs["special_requests"] = "Special requests may not exceed 1000 characters."
	}
}

func validateDates(checkIn, checkOut, now time.Time, fieldErrs FieldErrors) {
	today := models.DateOnly(now)
	in := models.DateOnly(checkIn)
	out := models.DateOnly(checkOut)

	if in.Before(today) {
		fieldErrs["check_in_date"] = "Check-in date must be today or later."
	}
	if !out.After(in) {
		fieldErrs["check_out_date"] = "Check-out date must be after check-in date."
	}
}

// Create runs the full booking flow: validation, availability check, capacity
// check, pricing, then persist as confirmed. On any failure nothing is
// persisted.
//
// Availability is a read followed by an insert with no lock between them; two
// racing requests for the same room and dates can both pass the check. That
// matches the system this replaces and is accepted for the current traffic.
func (s *BookingService) Create(actor models.User, input CreateBookingInput) (*models.Booking, error) {
	now := time.Now()

	fieldErrs := FieldErrors{}
	validateGuestFields(input.GuestName, input.GuestEmail, input.GuestPhone,
		input.NumberOfGuests, input.SpecialRequests, fieldErrs)
	validateDates(input.CheckInDate, input.CheckOutDate, now, fieldErrs)
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	var room models.Room
	if err := s.DB.First(&room, input.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, FieldErrors{"room_id": "Selected room does not exist."}
		}
		return nil, fmt.Errorf("failed to load room %d: %w", input.RoomID, err)
	}

	available, err := s.Rooms.IsAvailableForDates(&room, input.CheckInDate, input.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, FieldErrors{"room_id": "Room is not available for selected dates."}
	}

	if input.NumberOfGuests > room.Capacity {
		return nil, FieldErrors{"number_of_guests": fmt.Sprintf("Room capacity is %d guests.", room.Capacity)}
	}

	booking := &models.Booking{
		UserID:          actor.ID,
		RoomID:          room.ID,
		ReferenceCode:   uuid.NewString(),
		GuestName:       strings.TrimSpace(input.GuestName),
		GuestEmail:      strings.TrimSpace(input.GuestEmail),
		GuestPhone:      strings.TrimSpace(input.GuestPhone),
		CheckInDate:     models.DateOnly(input.CheckInDate),
		CheckOutDate:    models.DateOnly(input.CheckOutDate),
		NumberOfGuests:  input.NumberOfGuests,
		TotalPrice:      TotalPrice(input.CheckInDate, input.CheckOutDate, room.PricePerNight),
		Status:          models.BookingStatusConfirmed,
		SpecialRequests: input.SpecialRequests,
	}

	if err := s.DB.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return booking, nil
}

// BookingFilter narrows List results.
type BookingFilter struct {
	Status      models.BookingStatus
	RoomID      uint
	CheckInFrom *time.Time
	GuestName   string
}

// List returns bookings visible to the actor, newest first. Actors without
// staff-level access only see their own bookings.
func (s *BookingService) List(actor models.User, filter BookingFilter) ([]models.Booking, error) {
	query := s.DB.Model(&models.Booking{}).Preload("Room").Preload("User")

	if !actor.Role.Can(models.ActionViewAllBookings) {
		query = query.Where("user_id = ?", actor.ID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RoomID != 0 {
		query = query.Where("room_id = ?", filter.RoomID)
	}
	if filter.CheckInFrom != nil {
		query = query.Where("check_in_date >= ?", models.DateOnly(*filter.CheckInFrom))
	}
	if name := strings.TrimSpace(filter.GuestName); name != "" {
		query = query.Where("guest_name LIKE ?", "%"+name+"%")
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return bookings, nil
}

// RecentForUser returns the user's latest bookings for the dashboard.
func (s *BookingService) RecentForUser(userID uint, limit int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recent bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) getByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").Preload("User").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking %d: %w", id, err)
	}
	return &booking, nil
}

func canView(actor models.User, booking *models.Booking) bool {
	return actor.Role.Can(models.ActionViewAllBookings) || booking.UserID == actor.ID
}

// Get loads one booking; owners and staff-level actors only.
func (s *BookingService) Get(actor models.User, id uint) (*models.Booking, error) {
	booking, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, booking) {
		return nil, ErrForbidden
	}
	return booking, nil
}

// UpdateBookingInput carries the editable booking fields. Status is optional;
// when set it must pass the transition table.
type UpdateBookingInput struct {
	GuestName       string
	GuestEmail      string
	GuestPhone      string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumberOfGuests  int
	SpecialRequests string
	Status          models.BookingStatus
}

// Update edits a booking. Owners and staff-level actors may edit. Dates are
// re-validated and the total price recomputed against the room's current
// nightly rate whenever either date changes; the original price is not kept.
func (s *BookingService) Update(actor models.User, id uint, input UpdateBookingInput) (*models.Booking, error) {
	booking, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, booking) {
		return nil, ErrForbidden
	}

	fieldErrs := FieldErrors{}
	validateGuestFields(input.GuestName, input.GuestEmail, input.GuestPhone,
		input.NumberOfGuests, input.SpecialRequests, fieldErrs)

	newIn := models.DateOnly(input.CheckInDate)
	newOut := models.DateOnly(input.CheckOutDate)
	datesChanged := !newIn.Equal(models.DateOnly(booking.CheckInDate)) ||
		!newOut.Equal(models.DateOnly(booking.CheckOutDate))
	if datesChanged {
		validateDates(input.CheckInDate, input.CheckOutDate, time.Now(), fieldErrs)
	}

	if input.NumberOfGuests > booking.Room.Capacity {
		fieldErrs["number_of_guests"] = fmt.Sprintf("Room capacity is %d guests.", booking.Room.Capacity)
	}

	if input.Status != "" {
		if !input.Status.Valid() {
			fieldErrs["status"] = "Invalid booking status."
		} else if !booking.Status.CanTransitionTo(input.Status) {
			fieldErrs["status"] = fmt.Sprintf("Cannot change status from %s to %s.", booking.Status, input.Status)
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	booking.GuestName = strings.TrimSpace(input.GuestName)
	booking.GuestEmail = strings.TrimSpace(input.GuestEmail)
	booking.GuestPhone = strings.TrimSpace(input.GuestPhone)
	booking.NumberOfGuests = input.NumberOfGuests
	booking.SpecialRequests = input.SpecialRequests
	if datesChanged {
		booking.CheckInDate = newIn
		booking.CheckOutDate = newOut
		booking.TotalPrice = TotalPrice(newIn, newOut, booking.Room.PricePerNight)
	}
	if input.Status != "" {
		booking.Status = input.Status
	}

	if err := s.DB.Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking %d: %w", id, err)
	}
	return booking, nil
}

// Cancel sets the booking to cancelled. Only pending/confirmed bookings with a
// future check-in qualify; cancelled bookings stay on record and no longer
// count against availability.
func (s *BookingService) Cancel(actor models.User, id uint, now time.Time) (*models.Booking, error) {
	booking, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, booking) {
		return nil, ErrForbidden
	}

	if !booking.CanBeCancelled(now) {
		return nil, FieldErrors{"status": "This booking can no longer be cancelled."}
	}

	booking.Status = models.BookingStatusCancelled
	if err := s.DB.Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel booking %d: %w", id, err)
	}
	return booking, nil
}

// transition applies a status change through the transition table.
func (s *BookingService) transition(actor models.User, id uint, next models.BookingStatus) (*models.Booking, error) {
	booking, err := s.getByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.Role.Can(models.ActionEditAnyBooking) {
		return nil, ErrForbidden
	}

	if booking.Status == next {
		return booking, nil
	}
	if !booking.Status.CanTransitionTo(next) {
		return nil, FieldErrors{"status": fmt.Sprintf("Cannot change status from %s to %s.", booking.Status, next)}
	}

	booking.Status = next
	if err := s.DB.Save(booking).Error; err != nil {
		return nil, fmt.Errorf("failed to update booking %d status: %w", id, err)
	}
	return booking, nil
}

// CheckIn marks the guest as arrived. Staff-level only.
func (s *BookingService) CheckIn(actor models.User, id uint) (*models.Booking, error) {
	return s.transition(actor, id, models.BookingStatusCheckedIn)
}

// CheckOut completes the stay. Staff-level only.
func (s *BookingService) CheckOut(actor models.User, id uint) (*models.Booking, error) {
	return s.transition(actor, id, models.BookingStatusCheckedOut)
}

// Delete removes a booking entirely. Owners and admin-level actors only;
// deletion is independent of the status lifecycle.
func (s *BookingService) Delete(actor models.User, id uint) error {
	booking, err := s.getByID(id)
	if err != nil {
		return err
	}
	if !actor.Role.Can(models.ActionManageRooms) && booking.UserID != actor.ID {
		return ErrForbidden
	}

	if err := s.DB.Delete(booking).Error; err != nil {
		return fmt.Errorf("failed to delete booking %d: %w", id, err)
	}
	return nil
}
