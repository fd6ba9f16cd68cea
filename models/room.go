package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomType string

const (
	RoomTypeStandard     RoomType = "standard"
	RoomTypeDeluxe       RoomType = "deluxe"
	RoomTypeSuite        RoomType = "suite"
	RoomTypeExecutive    RoomType = "executive"
	RoomTypePresidential RoomType = "presidential"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeStandard, RoomTypeDeluxe, RoomTypeSuite, RoomTypeExecutive, RoomTypePresidential:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusOutOfOrder  RoomStatus = "out_of_order"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusMaintenance, RoomStatusOutOfOrder:
		return true
	}
	return false
}

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number        string     `gorm:"column:number;uniqueIndex;size:20" json:"number"`
	Type          RoomType   `gorm:"size:32;index" json:"type"`
	Description   string     `gorm:"type:text" json:"description"`
	Capacity      int        `gorm:"index" json:"capacity"`
	PricePerNight float64    `gorm:"column:price_per_night;type:decimal(10,2)" json:"price_per_night"`
	Status        RoomStatus `gorm:"size:32;index;default:available" json:"status"`

	// Amenities is a JSON string array, nullable.
	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	Bookings []Booking `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
