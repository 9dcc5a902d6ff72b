package ledger

import "fmt"

// RoomType is the category a room is rented as. The nightly rate is derived
// from the type via a RateTable rather than stored on the room, so room
// records cannot drift out of sync with pricing.
type RoomType string

const (
	Single RoomType = "Single"
	Double RoomType = "Double"
	Suite  RoomType = "Suite"
)

// ParseRoomType maps a user-supplied string onto one of the known room types.
func ParseRoomType(s string) (RoomType, error) {
	switch RoomType(s) {
	case Single, Double, Suite:
		return RoomType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRoomType, s)
}

// Room is a single rentable room. Number is the unique key across the
// inventory. Available is false exactly when an active booking targets the
// room.
type Room struct {
	Number    int
	Type      RoomType
	Available bool
}

// Booking records one guest's hold on one room. TotalCost is computed once at
// booking time from the rate table, so historical totals survive later rate
// changes. ReferenceID stays empty until the guest confirms the booking; once
// issued it never changes.
type Booking struct {
	GuestName   string
	RoomNumber  int
	Nights      int
	TotalCost   float64
	ReferenceID string
}

// Confirmed reports whether a reference ID has been issued for the booking.
func (b Booking) Confirmed() bool {
	return b.ReferenceID != ""
}

// Role distinguishes the two kinds of actors the ledger knows about.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Actor identifies who is asking for an operation. Guests may only cancel
// bookings they own and only see occupant names on their own rooms; admins
// may do either for any booking.
type Actor struct {
	Role Role
	Name string
}

// Occupancy pairs an occupied room with the name shown for its occupant,
// which is redacted to "Occupied" for guests viewing someone else's booking.
type Occupancy struct {
	Room     Room
	Occupant string
}

// RateTable maps room types to their per-night rate.
type RateTable map[RoomType]float64

// DefaultRates returns the canonical per-night rates.
func DefaultRates() RateTable {
	return RateTable{
		Single: 100.00,
		Double: 150.00,
		Suite:  250.00,
	}
}

// For returns the nightly rate for a room type. Unknown types are an error,
// never a silent default rate.
func (t RateTable) For(rt RoomType) (float64, error) {
	rate, ok := t[rt]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRoomType, rt)
	}
	return rate, nil
}
