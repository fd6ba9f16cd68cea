package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCan(t *testing.T) {
	cases := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleSuperadmin, ActionManageUsers, true},
		{RoleSuperadmin, ActionViewUserCount, true},
		{RoleAdmin, ActionManageRooms, true},
		{RoleAdmin, ActionManageUsers, false},
		{RoleAdmin, ActionViewUserCount, false},
		{RoleStaff, ActionViewAllBookings, true},
		{RoleStaff, ActionEditAnyBooking, true},
		{RoleStaff, ActionManageRooms, false},
		{RoleGuest, ActionViewAllBookings, false},
		{RoleGuest, ActionViewStats, false},
		{Role("owner"), ActionManageRooms, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.role.Can(tc.action), "%s can %s", tc.role, tc.action)
	}
}

func TestRoleLevels(t *testing.T) {
	assert.True(t, RoleSuperadmin.IsAdminLevel())
	assert.True(t, RoleAdmin.IsAdminLevel())
	assert.False(t, RoleStaff.IsAdminLevel())

	assert.True(t, RoleStaff.IsStaffLevel())
	assert.False(t, RoleGuest.IsStaffLevel())

	assert.True(t, RoleSuperadmin.IsSuperadmin())
	assert.False(t, RoleAdmin.IsSuperadmin())
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSuperadmin, RoleAdmin, RoleStaff, RoleGuest} {
		assert.True(t, r.Valid(), string(r))
	}
	assert.False(t, Role("owner").Valid())
	assert.False(t, Role("").Valid())
}
