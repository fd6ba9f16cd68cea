package models

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCheckedIn,
		BookingStatusCheckedOut, BookingStatusCancelled:
		return true
	}
	return false
}

// ErrInvalidTransition is returned when a status change is not in the
// transition table.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// statusTransitions is the explicit state machine for booking statuses.
// checked_out and cancelled are terminal.
var statusTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusCheckedIn, BookingStatusCancelled},
	BookingStatusCheckedIn:  {BookingStatusCheckedOut},
	BookingStatusCheckedOut: {},
	BookingStatusCancelled:  {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;column:user_id" json:"user_id"`
	RoomID uint `gorm:"index;column:room_id" json:"room_id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`

	GuestName  string `gorm:"column:guest_name;size:255" json:"guest_name"`
	GuestEmail string `gorm:"column:guest_email;size:255" json:"guest_email"`
	GuestPhone string `gorm:"column:guest_phone;size:20" json:"guest_phone"`

	CheckInDate  time.Time `gorm:"column:check_in_date;type:date;index" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date;type:date;index" json:"check_out_date"`

	NumberOfGuests  int           `gorm:"column:number_of_guests" json:"number_of_guests"`
	TotalPrice      float64       `gorm:"column:total_price;type:decimal(10,2)" json:"total_price"`
	Status          BookingStatus `gorm:"size:32;index;default:pending" json:"status"`
	SpecialRequests string        `gorm:"column:special_requests;type:text" json:"special_requests,omitempty"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Nights is the whole-calendar-day difference between check-in and check-out.
func (b *Booking) Nights() int {
	return int(DateOnly(b.CheckOutDate).Sub(DateOnly(b.CheckInDate)).Hours() / 24)
}

// CanBeCancelled: only pending/confirmed bookings whose check-in is strictly
// in the future may be cancelled.
func (b *Booking) CanBeCancelled(now time.Time) bool {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return false
	}
	return DateOnly(b.CheckInDate).After(DateOnly(now))
}

// IsActive: confirmed or checked-in with a check-out today or later. Active
// bookings block room and user deletion.
func (b *Booking) IsActive(now time.Time) bool {
	if b.Status != BookingStatusConfirmed && b.Status != BookingStatusCheckedIn {
		return false
	}
	return !DateOnly(b.CheckOutDate).Before(DateOnly(now))
}

func (b *Booking) String() string {
	return fmt.Sprintf("booking %s room=%d %s..%s (%s)",
		b.ReferenceCode, b.RoomID,
		b.CheckInDate.Format("2006-01-02"), b.CheckOutDate.Format("2006-01-02"),
		b.Status)
}

// DateOnly strips the time component, keeping the calendar date in UTC.
// Booking dates carry no time of day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
