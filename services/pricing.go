package services

import (
	"math"
	"time"

	"hotel-reservation/models"
)

// Nights computes the whole-calendar-day difference between check-in and
// check-out. With checkOut strictly after checkIn this is always >= 1.
func Nights(checkIn, checkOut time.Time) int {
	in := models.DateOnly(checkIn)
	out := models.DateOnly(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// TotalPrice is nights × nightly rate, rounded to 2 decimal places. Callers
// always pass the room's current rate: date edits reprice against the rate at
// edit time, not the rate at original booking time.
func TotalPrice(checkIn, checkOut time.Time, nightlyRate float64) float64 {
	total := float64(Nights(checkIn, checkOut)) * nightlyRate
	return math.Round(total*100) / 100
}
