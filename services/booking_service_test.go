package services

import (
	"testing"
	"time"

	"hotel-reservation/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// futureDate returns today plus the given number of days, normalized to
// midnight UTC, so create-flow validation always sees future stays.
func futureDate(days int) time.Time {
	return models.DateOnly(time.Now()).AddDate(0, 0, days)
}

func validInput(roomID uint, checkIn, checkOut time.Time) CreateBookingInput {
	return CreateBookingInput{
		RoomID:         roomID,
		GuestName:      "Jordan Lee",
		GuestEmail:     "jordan@example.com",
		GuestPhone:     "+15550001111",
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: 2,
	}
}

func TestBookingCreate(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)

	booking, err := svc.Create(guest, validInput(room.ID, futureDate(10), futureDate(13)))
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, guest.ID, booking.UserID)
	assert.NotEmpty(t, booking.ReferenceCode)
	assert.InDelta(t, 300.00, booking.TotalPrice, 0.0001)

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookingCreateCapacityExceeded(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)

	input := validInput(room.ID, futureDate(10), futureDate(13))
	input.NumberOfGuests = 3

	_, err := svc.Create(guest, input)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Room capacity is 2 guests.", fieldErrs["number_of_guests"])

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "nothing persists on a failed create")
}

func TestBookingCreateConflict(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)
	makeBooking(t, db, guest, room, futureDate(10), futureDate(13), models.BookingStatusConfirmed)

	// starts on the existing stay's checkout day, still conflicts
	_, err := svc.Create(guest, validInput(room.ID, futureDate(13), futureDate(15)))
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Room is not available for selected dates.", fieldErrs["room_id"])

	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBookingCreateRoomUnderMaintenance(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusMaintenance)

	_, err := svc.Create(guest, validInput(room.ID, futureDate(10), futureDate(13)))
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Room is not available for selected dates.", fieldErrs["room_id"])
}

func TestBookingCreateDateValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)

	t.Run("check-in in the past", func(t *testing.T) {
		_, err := svc.Create(guest, validInput(room.ID, futureDate(-1), futureDate(3)))
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "check_in_date")
	})

	t.Run("check-out equals check-in", func(t *testing.T) {
		_, err := svc.Create(guest, validInput(room.ID, futureDate(10), futureDate(10)))
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "check_out_date")
	})

	t.Run("missing guest fields reported together", func(t *testing.T) {
		input := validInput(room.ID, futureDate(10), futureDate(13))
		input.GuestName = ""
		input.GuestEmail = "not-an-email"
		_, err := svc.Create(guest, input)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "guest_name")
		assert.Contains(t, fieldErrs, "guest_email")
	})
}

func TestBookingCancel(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)
	now := date(2024, time.June, 1)

	t.Run("future confirmed booking cancels", func(t *testing.T) {
		booking := makeBooking(t, db, guest, room,
			date(2024, time.June, 10), date(2024, time.June, 12),
			models.BookingStatusConfirmed)

		cancelled, err := svc.Cancel(guest, booking.ID, now)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	})

	t.Run("check-in today cannot cancel", func(t *testing.T) {
		booking := makeBooking(t, db, guest, room,
			date(2024, time.June, 1), date(2024, time.June, 3),
			models.BookingStatusConfirmed)

		_, err := svc.Cancel(guest, booking.ID, now)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "This booking can no longer be cancelled.", fieldErrs["status"])
	})

	t.Run("checked-in booking cannot cancel", func(t *testing.T) {
		booking := makeBooking(t, db, guest, room,
			date(2024, time.June, 10), date(2024, time.June, 12),
			models.BookingStatusCheckedIn)

		_, err := svc.Cancel(guest, booking.ID, now)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
	})

	t.Run("other guest forbidden", func(t *testing.T) {
		other := makeUser(t, db, "other", models.RoleGuest)
		booking := makeBooking(t, db, guest, room,
			date(2024, time.June, 20), date(2024, time.June, 22),
			models.BookingStatusConfirmed)

		_, err := svc.Cancel(other, booking.ID, now)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestBookingTransitions(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	staff := makeUser(t, db, "staff", models.RoleStaff)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)

	t.Run("confirmed through checkout", func(t *testing.T) {
		booking := makeBooking(t, db, guest, room,
			date(2024, time.June, 10), date(2024, time.June, 12),
			models.BookingStatusConfirmed)

		checkedIn, err := svc.CheckIn(staff, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCheckedIn, checkedIn.Status)

		checkedOut, err := svc.CheckOut(staff, booking.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCheckedOut, checkedOut.Status)
	})

	t.Run("checkout requires checked-in", func(t *testing.T) {
		booking := makeBooking(t, db, guest, room,
			date(2024, time.June, 14), date(2024, time.June, 16),
			models.BookingStatusConfirmed)

		_, err := svc.CheckOut(staff, booking.ID)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "status")
	})

	t.Run("guest cannot check in", func(t *testing.T) {
		booking := makeBooking(t, db, guest, room,
			date(2024, time.June, 18), date(2024, time.June, 20),
			models.BookingStatusConfirmed)

		_, err := svc.CheckIn(guest, booking.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestBookingUpdateRepricesOnDateChange(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)
	booking := makeBooking(t, db, guest, room, futureDate(10), futureDate(12), models.BookingStatusConfirmed)
	require.InDelta(t, 200.00, booking.TotalPrice, 0.0001)

	// rate change applies to the rebooked dates, not the original price
	require.NoError(t, db.Model(&room).Update("price_per_night", 150.00).Error)

	updated, err := svc.Update(guest, booking.ID, UpdateBookingInput{
		GuestName:      booking.GuestName,
		GuestEmail:     booking.GuestEmail,
		GuestPhone:     booking.GuestPhone,
		CheckInDate:    futureDate(10),
		CheckOutDate:   futureDate(14),
		NumberOfGuests: booking.NumberOfGuests,
	})
	require.NoError(t, err)
	assert.InDelta(t, 600.00, updated.TotalPrice, 0.0001)
}

func TestBookingUpdateStatusTransitionTable(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	guest := makeUser(t, db, "guest", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)
	booking := makeBooking(t, db, guest, room, futureDate(10), futureDate(12), models.BookingStatusCheckedOut)

	input := UpdateBookingInput{
		GuestName:      booking.GuestName,
		GuestEmail:     booking.GuestEmail,
		GuestPhone:     booking.GuestPhone,
		CheckInDate:    booking.CheckInDate,
		CheckOutDate:   booking.CheckOutDate,
		NumberOfGuests: booking.NumberOfGuests,
		Status:         models.BookingStatusConfirmed,
	}
	_, err := svc.Update(guest, booking.ID, input)
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Cannot change status from checked_out to confirmed.", fieldErrs["status"])
}

func TestBookingListVisibility(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	staff := makeUser(t, db, "staff", models.RoleStaff)
	alice := makeUser(t, db, "alice", models.RoleGuest)
	bob := makeUser(t, db, "bob", models.RoleGuest)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)

	makeBooking(t, db, alice, room, date(2024, time.June, 1), date(2024, time.June, 3), models.BookingStatusConfirmed)
	makeBooking(t, db, bob, room, date(2024, time.June, 5), date(2024, time.June, 7), models.BookingStatusConfirmed)

	own, err := svc.List(alice, BookingFilter{})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID, own[0].UserID)

	all, err := svc.List(staff, BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBookingGetVisibility(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	alice := makeUser(t, db, "alice", models.RoleGuest)
	bob := makeUser(t, db, "bob", models.RoleGuest)
	staff := makeUser(t, db, "staff", models.RoleStaff)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)
	booking := makeBooking(t, db, alice, room, date(2024, time.June, 1), date(2024, time.June, 3), models.BookingStatusConfirmed)

	_, err := svc.Get(alice, booking.ID)
	assert.NoError(t, err)
	_, err = svc.Get(staff, booking.ID)
	assert.NoError(t, err)
	_, err = svc.Get(bob, booking.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(alice, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingDelete(t *testing.T) {
	db := openTestDB(t)
	svc := NewBookingService(db)
	admin := makeUser(t, db, "admin", models.RoleAdmin)
	alice := makeUser(t, db, "alice", models.RoleGuest)
	bob := makeUser(t, db, "bob", models.RoleGuest)
	staff := makeUser(t, db, "staff", models.RoleStaff)
	room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)

	t.Run("owner may delete", func(t *testing.T) {
		booking := makeBooking(t, db, alice, room, date(2024, time.June, 1), date(2024, time.June, 3), models.BookingStatusConfirmed)
		assert.NoError(t, svc.Delete(alice, booking.ID))
	})

	t.Run("admin may delete", func(t *testing.T) {
		booking := makeBooking(t, db, alice, room, date(2024, time.June, 5), date(2024, time.June, 7), models.BookingStatusConfirmed)
		assert.NoError(t, svc.Delete(admin, booking.ID))
	})

	t.Run("other guest forbidden", func(t *testing.T) {
		booking := makeBooking(t, db, alice, room, date(2024, time.June, 9), date(2024, time.June, 11), models.BookingStatusConfirmed)
		assert.ErrorIs(t, svc.Delete(bob, booking.ID), ErrForbidden)
	})

	t.Run("staff without manage permission forbidden", func(t *testing.T) {
		booking := makeBooking(t, db, alice, room, date(2024, time.June, 13), date(2024, time.June, 15), models.BookingStatusConfirmed)
		assert.ErrorIs(t, svc.Delete(staff, booking.ID), ErrForbidden)
	})
}
