// Package ledger keeps room availability and booking records mutually
// consistent. The sentinel errors below are the full failure taxonomy of the
// ledger and its stores; callers distinguish cases with errors.Is.
package ledger

import "errors"

var (
	// ErrDuplicateRoomNumber is returned when creating a room whose number
	// is already taken.
	ErrDuplicateRoomNumber = errors.New("duplicate room number")

	// ErrRoomNotFound is returned when an operation names a room that does
	// not exist in the inventory.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoomNotAvailable is returned when booking a room that already has
	// an active booking.
	ErrRoomNotAvailable = errors.New("room not available")

	// ErrRoomHasActiveBooking is returned when deleting a room that an
	// active booking still references.
	ErrRoomHasActiveBooking = errors.New("room has an active booking")

	// ErrBookingNotFound is returned when no active booking matches the
	// requested room, or when a guest targets a booking they do not own.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyConfirmed is returned when confirming a booking that
	// already carries a reference ID.
	ErrAlreadyConfirmed = errors.New("booking already confirmed")

	// ErrInvalidNights is returned when a booking is requested for zero or
	// a negative number of nights.
	ErrInvalidNights = errors.New("nights must be positive")

	// ErrUnknownRoomType is returned for room types outside the known set.
	ErrUnknownRoomType = errors.New("unknown room type")

	// ErrStorageUnavailable is returned when a backing store cannot be read
	// or written. The operation is aborted and no state has changed.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
