package ledger

// RoomStore persists the full room inventory. LoadAll and SaveAll move the
// whole collection at once; the ledger performs a fresh load before every
// operation and a full save after, so implementations never need to retain
// state between calls.
type RoomStore interface {
	LoadAll() ([]Room, error)
	SaveAll(rooms []Room) error

	// Create adds a room, failing with ErrDuplicateRoomNumber if the number
	// is taken.
	Create(room Room) error

	// Delete removes a room, failing with ErrRoomNotFound if absent. The
	// cross-store check that no active booking references the room belongs
	// to the ledger, not here.
	Delete(roomNumber int) error

	// SetAvailability flips a room's availability flag, failing with
	// ErrRoomNotFound if absent.
	SetAvailability(roomNumber int, available bool) error
}

// BookingStore persists the booking records. A room has at most one active
// booking at a time; implementations that find duplicates for a room on load
// keep the first and drop the rest.
type BookingStore interface {
	LoadAll() ([]Booking, error)
	SaveAll(bookings []Booking) error

	// FindActiveForGuest returns every active booking owned by the guest.
	FindActiveForGuest(name string) ([]Booking, error)

	// FindByRoom returns the active booking for a room, or nil if the room
	// has none.
	FindByRoom(roomNumber int) (*Booking, error)
}

// CounterStore issues reference numbers from a persisted monotonic counter.
type CounterStore interface {
	// Next increments the counter durably and returns the new value.
	// Values are strictly increasing across process restarts.
	Next() (int, error)
}
