package services

import (
	"testing"
	"time"

	"hotel-reservation/config"
	"hotel-reservation/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// openTestDB spins up a private in-memory SQLite database with the full
// schema. Uses the pure-Go sqlite driver so tests run without cgo.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        "file:" + t.Name() + "?mode=memory&cache=shared",
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func makeUser(t *testing.T, db *gorm.DB, name string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@hotel.test",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func makeRoom(t *testing.T, db *gorm.DB, number string, capacity int, rate float64, status models.RoomStatus) models.Room {
	t.Helper()
	room := models.Room{
		Number:        number,
		Type:          models.RoomTypeStandard,
		Capacity:      capacity,
		PricePerNight: rate,
		Status:        status,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

// makeBooking inserts a booking row directly, bypassing the create flow, so
// tests can set up past stays and arbitrary statuses.
func makeBooking(t *testing.T, db *gorm.DB, user models.User, room models.Room, checkIn, checkOut time.Time, status models.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{
		UserID:         user.ID,
		RoomID:         room.ID,
		ReferenceCode:  uuid.NewString(),
		GuestName:      user.Name,
		GuestEmail:     user.Email,
		GuestPhone:     "+10000000000",
		CheckInDate:    models.DateOnly(checkIn),
		CheckOutDate:   models.DateOnly(checkOut),
		NumberOfGuests: 1,
		TotalPrice:     TotalPrice(checkIn, checkOut, room.PricePerNight),
		Status:         status,
	}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}
