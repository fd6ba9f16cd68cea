package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Privilege order:
// superadmin > admin > staff > guest.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleStaff      Role = "staff"
	RoleGuest      Role = "guest"
)

// Action names an authorization-sensitive operation.
type Action string

const (
	ActionManageRooms     Action = "rooms.manage"
	ActionManageUsers     Action = "users.manage"
	ActionViewAllBookings Action = "bookings.viewAll"
	ActionEditAnyBooking  Action = "bookings.editAny"
	ActionViewStats       Action = "stats.view"
	ActionViewUserCount   Action = "stats.userCount"
)

// rolePermissions is the single capability table for the whole app.
// Role checks go through Role.Can, never through ad-hoc string comparisons.
var rolePermissions = map[Role][]Action{
	RoleSuperadmin: {
		ActionManageRooms,
		ActionManageUsers,
		ActionViewAllBookings,
		ActionEditAnyBooking,
		ActionViewStats,
		ActionViewUserCount,
	},
	RoleAdmin: {
		ActionManageRooms,
		ActionViewAllBookings,
		ActionEditAnyBooking,
		ActionViewStats,
	},
	RoleStaff: {
		ActionViewAllBookings,
		ActionEditAnyBooking,
		ActionViewStats,
	},
	RoleGuest: {},
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperadmin, RoleAdmin, RoleStaff, RoleGuest:
		return true
	}
	return false
}

func (r Role) Can(a Action) bool {
	for _, allowed := range rolePermissions[r] {
		if allowed == a {
			return true
		}
	}
	return false
}

// IsStaffLevel reports whether the role may perform booking management
// (staff and admin are equivalent here; superadmin is included).
func (r Role) IsStaffLevel() bool {
	return r.Can(ActionViewAllBookings)
}

// IsAdminLevel covers admin and superadmin.
func (r Role) IsAdminLevel() bool {
	return r.Can(ActionManageRooms)
}

func (r Role) IsSuperadmin() bool {
	return r == RoleSuperadmin
}

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255" json:"email"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	Role     Role   `gorm:"size:32;default:guest" json:"role"`

	Bookings []Booking `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
