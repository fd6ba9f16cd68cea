// services/stats_service.go
package services

import (
	"fmt"
	"time"

	"hotel-reservation/models"

	"gorm.io/gorm"
)

// Stats is the staff dashboard summary. TotalUsers is only populated for
// superadmins.
type Stats struct {
	TotalRooms      int64  `json:"total_rooms"`
	AvailableRooms  int64  `json:"available_rooms"`
	TodaysCheckins  int64  `json:"todays_checkins"`
	TodaysCheckouts int64  `json:"todays_checkouts"`
	TotalBookings   int64  `json:"total_bookings"`
	TotalUsers      *int64 `json:"total_users,omitempty"`
}

// StatsService reads aggregate counters over rooms, bookings and users.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Dashboard computes the stats block for a staff-level actor. Today's
// check-ins are confirmed bookings arriving today; today's check-outs are
// confirmed or checked-in bookings leaving today.
func (s *StatsService) Dashboard(actor models.User, now time.Time) (*Stats, error) {
	if !actor.Role.Can(models.ActionViewStats) {
		return nil, ErrForbidden
	}

	today := models.DateOnly(now)
	stats := &Stats{}

	if err := s.DB.Model(&models.Room{}).Count(&stats.TotalRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count rooms: %w", err)
	}
	if err := s.DB.Model(&models.Room{}).
		Where("status = ?", models.RoomStatusAvailable).
		Count(&stats.AvailableRooms).Error; err != nil {
		return nil, fmt.Errorf("failed to count available rooms: %w", err)
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("check_in_date = ? AND status = ?", today, models.BookingStatusConfirmed).
		Count(&stats.TodaysCheckins).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's check-ins: %w", err)
	}
	if err := s.DB.Model(&models.Booking{}).
		Where("check_out_date = ? AND status IN ?", today,
			[]models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Count(&stats.TodaysCheckouts).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's check-outs: %w", err)
	}
	if err := s.DB.Model(&models.Booking{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	if actor.Role.Can(models.ActionViewUserCount) {
		var users int64
		if err := s.DB.Model(&models.User{}).Count(&users).Error; err != nil {
			return nil, fmt.Errorf("failed to count users: %w", err)
		}
		stats.TotalUsers = &users
	}

	return stats, nil
}
