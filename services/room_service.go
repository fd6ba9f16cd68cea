// services/room_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-reservation/models"

	"gorm.io/gorm"
)

// RoomService wraps *gorm.DB for room lookup, management and the
// availability check.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// IsAvailableForDates reports whether the room can take a booking for
// [checkIn, checkOut). Rooms under maintenance or out of order are never
// available. A non-cancelled booking conflicts when its check-in or check-out
// falls within [checkIn, checkOut] inclusive, or when it fully contains the
// candidate range. The inclusive boundary means a booking ending on the
// candidate's check-in day still conflicts: same-day turnover is disallowed
// on purpose, and existing data depends on that rule.
//
// Pure read; no error is raised for malformed dates (caller validates).
func (s *RoomService) IsAvailableForDates(room *models.Room, checkIn, checkOut time.Time) (bool, error) {
	if room.Status != models.RoomStatusAvailable {
		return false, nil
	}

	in := models.DateOnly(checkIn)
	out := models.DateOnly(checkOut)

	var conflicts int64
	err := s.DB.Model(&models.Booking{}).
		Where("room_id = ?", room.ID).
		Where("status <> ?", models.BookingStatusCancelled).
		Where(
			"(check_in_date BETWEEN ? AND ?) OR (check_out_date BETWEEN ? AND ?) OR (check_in_date <= ? AND check_out_date >= ?)",
			in, out, in, out, in, out,
		).
		Count(&conflicts).Error
	if err != nil {
		return false, fmt.Errorf("failed to count conflicting bookings: %w", err)
	}

	return conflicts == 0, nil
}

// RoomFilter narrows List results. Zero values mean "no filter".
type RoomFilter struct {
	Type        models.RoomType
	Status      models.RoomStatus
	MinCapacity int
	Search      string // matches number or description
}

func (s *RoomService) List(filter RoomFilter) ([]models.Room, error) {
	query := s.DB.Model(&models.Room{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.MinCapacity > 0 {
		query = query.Where("capacity >= ?", filter.MinCapacity)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("number LIKE ? OR description LIKE ?", like, like)
	}

	var rooms []models.Room
	if err := query.Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve rooms: %w", err)
	}
	return rooms, nil
}

// AvailableRooms returns rooms with status available, optionally filtered by
// date range (availability-checked per room), guest count and room type.
// Used by the dashboard search.
func (s *RoomService) AvailableRooms(checkIn, checkOut *time.Time, guests int, roomType models.RoomType) ([]models.Room, error) {
	query := s.DB.Model(&models.Room{}).Where("status = ?", models.RoomStatusAvailable)
	if guests > 0 {
		query = query.Where("capacity >= ?", guests)
	}
	if roomType != "" {
		query = query.Where("type = ?", roomType)
	}

	var rooms []models.Room
	if err := query.Order("number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve available rooms: %w", err)
	}

	if checkIn == nil || checkOut == nil {
		return rooms, nil
	}

	filtered := make([]models.Room, 0, len(rooms))
	for i := range rooms {
		ok, err := s.IsAvailableForDates(&rooms[i], *checkIn, *checkOut)
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, rooms[i])
		}
	}
	return filtered, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve room %d: %w", id, err)
	}
	return &room, nil
}

// GetWithUpcomingBookings loads the room together with its non-cancelled
// bookings that have not checked out yet, ordered by check-in.
func (s *RoomService) GetWithUpcomingBookings(id uint, now time.Time) (*models.Room, error) {
	var room models.Room
	err := s.DB.
		Preload("Bookings", func(db *gorm.DB) *gorm.DB {
			return db.
				Where("status <> ?", models.BookingStatusCancelled).
				Where("check_out_date >= ?", models.DateOnly(now)).
				Order("check_in_date ASC")
		}).
		Preload("Bookings.User").
		First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve room %d: %w", id, err)
	}
	return &room, nil
}

func (s *RoomService) validate(room *models.Room, excludeID uint) (FieldErrors, error) {
	fieldErrs := FieldErrors{}

	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		fieldErrs["number"] = "Room number is required."
	} else if len(room.Number) > 20 {
		fieldErrs["number"] = "Room number may not exceed 20 characters."
	} else {
		var dup int64
		query := s.DB.Model(&models.Room{}).Where("number = ?", room.Number)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&dup).Error; err != nil {
			return nil, fmt.Errorf("failed to check room number uniqueness: %w", err)
		}
		if dup > 0 {
			fieldErrs["number"] = "This room number already exists."
		}
	}

	if !room.Type.Valid() {
		fieldErrs["type"] = "Invalid room type selected."
	}
	if room.Capacity < 1 {
		fieldErrs["capacity"] = "Room must accommodate at least 1 guest."
	} else if room.Capacity > 10 {
		fieldErrs["capacity"] = "Room capacity cannot exceed 10 guests."
	}
	if room.PricePerNight < 0 {
		fieldErrs["price_per_night"] = "Price must be greater than or equal to 0."
	} else if room.PricePerNight > 9999.99 {
		fieldErrs["price_per_night"] = "Price may not exceed 9999.99."
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}
	if !room.Status.Valid() {
		fieldErrs["status"] = "Invalid room status selected."
	}

	return fieldErrs, nil
}

// Create persists a new room. Admin-level only.
func (s *RoomService) Create(actor models.User, room *models.Room) error {
	if !actor.Role.Can(models.ActionManageRooms) {
		return ErrForbidden
	}

	fieldErrs, err := s.validate(room, 0)
	if err != nil {
		return err
	}
	if len(fieldErrs) > 0 {
		return fieldErrs
	}

	if err := s.DB.Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}

// Update overwrites the room's editable fields. Admin-level only.
func (s *RoomService) Update(actor models.User, id uint, updated *models.Room) (*models.Room, error) {
	if !actor.Role.Can(models.ActionManageRooms) {
		return nil, ErrForbidden
	}

	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	fieldErrs, err := s.validate(updated, id)
	if err != nil {
		return nil, err
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	room.Number = updated.Number
	room.Type = updated.Type
	room.Description = updated.Description
	room.Capacity = updated.Capacity
	room.PricePerNight = updated.PricePerNight
	room.Status = updated.Status
	room.Amenities = updated.Amenities

	if err := s.DB.Save(room).Error; err != nil {
		return nil, fmt.Errorf("failed to update room %d: %w", id, err)
	}
	return room, nil
}

// Delete removes the room unless it still has an active booking (confirmed or
// checked-in with check-out today or later). Bookings cascade with the room.
func (s *RoomService) Delete(actor models.User, id uint, now time.Time) error {
	if !actor.Role.Can(models.ActionManageRooms) {
		return ErrForbidden
	}

	room, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var active int64
	err = s.DB.Model(&models.Booking{}).
		Where("room_id = ?", room.ID).
		Where("status IN ?", []models.BookingStatus{models.BookingStatusConfirmed, models.BookingStatusCheckedIn}).
		Where("check_out_date >= ?", models.DateOnly(now)).
		Count(&active).Error
	if err != nil {
		return fmt.Errorf("failed to check active bookings for room %d: %w", id, err)
	}
	if active > 0 {
		return ErrRoomHasActiveBookings
	}

	if err := s.DB.Select("Bookings").Delete(room).Error; err != nil {
		return fmt.Errorf("failed to delete room %d: %w", id, err)
	}
	return nil
}

// Types lists the distinct room types currently in the inventory.
func (s *RoomService) Types() ([]models.RoomType, error) {
	var types []models.RoomType
	err := s.DB.Model(&models.Room{}).Distinct().Order("type ASC").Pluck("type", &types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve room types: %w", err)
	}
	return types, nil
}

// MaxCapacity returns the largest room capacity, minimum 1.
func (s *RoomService) MaxCapacity() (int, error) {
	var maxCap *int
	err := s.DB.Model(&models.Room{}).Select("MAX(capacity)").Scan(&maxCap).Error
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve max capacity: %w", err)
	}
	if maxCap == nil || *maxCap < 1 {
		return 1, nil
	}
	return *maxCap, nil
}
