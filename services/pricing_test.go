package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"three nights", date(2024, time.June, 1), date(2024, time.June, 4), 3},
		{"one night", date(2024, time.June, 1), date(2024, time.June, 2), 1},
		{"across month boundary", date(2024, time.June, 29), date(2024, time.July, 2), 3},
		{"time of day ignored", time.Date(2024, time.June, 1, 23, 0, 0, 0, time.UTC), time.Date(2024, time.June, 4, 1, 0, 0, 0, time.UTC), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Nights(tc.checkIn, tc.checkOut))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		rate     float64
		want     float64
	}{
		{"whole rate", date(2024, time.June, 1), date(2024, time.June, 4), 100.00, 300.00},
		{"fractional rate", date(2024, time.June, 1), date(2024, time.June, 4), 99.99, 299.97},
		{"rounds to cents", date(2024, time.June, 1), date(2024, time.June, 4), 33.335, 100.01},
		{"single night", date(2024, time.June, 1), date(2024, time.June, 2), 149.00, 149.00},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, TotalPrice(tc.checkIn, tc.checkOut, tc.rate), 0.0001)
		})
	}
}
