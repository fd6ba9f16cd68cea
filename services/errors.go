package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// FieldErrors carries per-field validation and conflict messages back to the
// caller. Nothing is persisted when a FieldErrors is returned.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return strings.Join(parts, "; ")
}

// Authorization failures reject the whole request.
var ErrForbidden = errors.New("forbidden")

var ErrNotFound = errors.New("record not found")

// Integrity guards. The message is what the caller shows; these are general
// (non-field) errors.
var (
	ErrRoomHasActiveBookings = errors.New("Cannot delete room with active bookings.")
	ErrLastSuperadmin        = errors.New("Cannot delete the last superadmin.")
	ErrUserHasActiveBookings = errors.New("Cannot delete user with active bookings.")
)

// IsGuardError reports whether err is one of the delete-guard errors.
func IsGuardError(err error) bool {
	return errors.Is(err, ErrRoomHasActiveBookings) ||
		errors.Is(err, ErrLastSuperadmin) ||
		errors.Is(err, ErrUserHasActiveBookings)
}
