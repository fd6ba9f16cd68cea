package services

import (
	"testing"
	"time"

	"hotel-reservation/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("Jordan Lee", "Jordan@Example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleGuest, user.Role)
	assert.Equal(t, "jordan@example.com", user.Email, "email is normalized to lowercase")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")))

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register("Other", "jordan@example.com", "supersecret")
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "This email is already registered.", fieldErrs["email"])
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Register("Short", "short@example.com", "1234567")
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "password")
	})
}

func TestAuthenticate(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)
	_, err := svc.Register("Jordan Lee", "jordan@example.com", "supersecret")
	require.NoError(t, err)

	user, err := svc.Authenticate("JORDAN@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", user.Email)

	_, err = svc.Authenticate("jordan@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Authenticate("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserListRequiresSuperadmin(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)
	super := makeUser(t, db, "super", models.RoleSuperadmin)
	admin := makeUser(t, db, "admin", models.RoleAdmin)

	users, err := svc.List(super, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.List(admin, UserFilter{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserUpdate(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db)
	super := makeUser(t, db, "super", models.RoleSuperadmin)
	guest := makeUser(t, db, "guest", models.RoleGuest)

	updated, err := svc.Update(super, guest.ID, "Front Desk", "desk@hotel.test", models.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStaff, updated.Role)
	assert.Equal(t, "desk@hotel.test", updated.Email)

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := svc.Update(super, guest.ID, "Front Desk", "desk@hotel.test", "owner")
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, "Invalid role selected.", fieldErrs["role"])
	})

	t.Run("email taken by someone else", func(t *testing.T) {
		_, err := svc.Update(super, guest.ID, "Front Desk", super.Email, models.RoleStaff)
		var fieldErrs FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "email")
	})
}

func TestUserDeleteGuards(t *testing.T) {
	now := date(2024, time.June, 1)

	t.Run("last superadmin protected", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewUserService(db)
		super := makeUser(t, db, "super", models.RoleSuperadmin)

		err := svc.Delete(super, super.ID, now)
		assert.ErrorIs(t, err, ErrLastSuperadmin)
	})

	t.Run("second superadmin may go", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewUserService(db)
		super := makeUser(t, db, "super", models.RoleSuperadmin)
		other := makeUser(t, db, "super2", models.RoleSuperadmin)

		require.NoError(t, svc.Delete(super, other.ID, now))
		_, err := svc.getByID(other.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("active booking blocks delete", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewUserService(db)
		super := makeUser(t, db, "super", models.RoleSuperadmin)
		guest := makeUser(t, db, "guest", models.RoleGuest)
		room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)
		makeBooking(t, db, guest, room,
			date(2024, time.June, 5), date(2024, time.June, 10),
			models.BookingStatusConfirmed)

		err := svc.Delete(super, guest.ID, now)
		assert.ErrorIs(t, err, ErrUserHasActiveBookings)
	})

	t.Run("past bookings do not block", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewUserService(db)
		super := makeUser(t, db, "super", models.RoleSuperadmin)
		guest := makeUser(t, db, "guest", models.RoleGuest)
		room := makeRoom(t, db, "101", 2, 100.00, models.RoomStatusAvailable)
		makeBooking(t, db, guest, room,
			date(2024, time.May, 1), date(2024, time.May, 5),
			models.BookingStatusCheckedOut)

		assert.NoError(t, svc.Delete(super, guest.ID, now))
	})

	t.Run("admin actor forbidden", func(t *testing.T) {
		db := openTestDB(t)
		svc := NewUserService(db)
		admin := makeUser(t, db, "admin", models.RoleAdmin)
		guest := makeUser(t, db, "guest", models.RoleGuest)

		assert.ErrorIs(t, svc.Delete(admin, guest.ID, now), ErrForbidden)
	})
}
