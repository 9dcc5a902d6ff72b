package ledger

import "fmt"

// Ledger coordinates the room and booking stores. It is the only component
// allowed to mutate both together, and every operation is a single
// load-validate-mutate-save cycle: no state is cached between calls, so each
// operation sees whatever the stores currently hold.
type Ledger struct {
	rooms    RoomStore
	bookings BookingStore
	counter  CounterStore
	rates    RateTable
}

// New builds a ledger over the given stores. The rate table is loaded once at
// startup and passed in; a nil table means the default rates.
func New(rooms RoomStore, bookings BookingStore, counter CounterStore, rates RateTable) *Ledger {
	if rates == nil {
		rates = DefaultRates()
	}
	return &Ledger{
		rooms:    rooms,
		bookings: bookings,
		counter:  counter,
		rates:    rates,
	}
}

// Book places a booking for the guest on the given room. The total cost is
// fixed at booking time from the rate table. On success the room is flipped
// to unavailable and both stores are persisted.
func (l *Ledger) Book(guestName string, roomNumber, nights int) (Booking, error) {
	if nights <= 0 {
		return Booking{}, fmt.Errorf("%w: got %d", ErrInvalidNights, nights)
	}

	rooms, err := l.rooms.LoadAll()
	if err != nil {
		return Booking{}, fmt.Errorf("failed to load rooms: %w", err)
	}
	bookings, err := l.bookings.LoadAll()
	if err != nil {
		return Booking{}, fmt.Errorf("failed to load bookings: %w", err)
	}

	idx := roomIndex(rooms, roomNumber)
	if idx < 0 {
		return Booking{}, fmt.Errorf("%w: room %d", ErrRoomNotFound, roomNumber)
	}
	if !rooms[idx].Available {
		return Booking{}, fmt.Errorf("%w: room %d", ErrRoomNotAvailable, roomNumber)
	}
	rate, err := l.rates.For(rooms[idx].Type)
	if err != nil {
		return Booking{}, err
	}

	booking := Booking{
		GuestName:  guestName,
		RoomNumber: roomNumber,
		Nights:     nights,
		TotalCost:  rate * float64(nights),
	}
	bookings = append(bookings, booking)
	rooms[idx].Available = false

	// Bookings are written before rooms: a crash between the two saves
	// leaves an orphan booking on an available room, which a later cancel
	// can clean up, rather than a room nobody can ever book.
	if err := l.bookings.SaveAll(bookings); err != nil {
		return Booking{}, fmt.Errorf("failed to save bookings: %w", err)
	}
	if err := l.rooms.SaveAll(rooms); err != nil {
		return Booking{}, fmt.Errorf("failed to save rooms: %w", err)
	}
	return booking, nil
}

// Cancel removes the active booking on a room and flips the room back to
// available. A guest actor may only cancel a booking they own; an admin actor
// may cancel any booking.
func (l *Ledger) Cancel(actor Actor, roomNumber int) error {
	rooms, err := l.rooms.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}
	bookings, err := l.bookings.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	idx := roomIndex(rooms, roomNumber)
	if idx < 0 {
		return fmt.Errorf("%w: room %d", ErrRoomNotFound, roomNumber)
	}

	target := -1
	for i, b := range bookings {
		if b.RoomNumber != roomNumber {
			continue
		}
		if actor.Role == RoleAdmin || b.GuestName == actor.Name {
			target = i
			break
		}
	}
	if target < 0 {
		return fmt.Errorf("%w: room %d", ErrBookingNotFound, roomNumber)
	}

	bookings = append(bookings[:target], bookings[target+1:]...)
	rooms[idx].Available = true

	// Rooms are written before bookings here for the same reason Book
	// writes them after: if the second save never happens, the leftover
	// record is an orphan booking, not an unbookable room.
	if err := l.rooms.SaveAll(rooms); err != nil {
		return fmt.Errorf("failed to save rooms: %w", err)
	}
	if err := l.bookings.SaveAll(bookings); err != nil {
		return fmt.Errorf("failed to save bookings: %w", err)
	}
	return nil
}

// Confirm issues a reference ID for the guest's active booking on the room.
// The ID comes from a persisted counter, so references stay unique across
// restarts, and is immutable once assigned.
func (l *Ledger) Confirm(guestName string, roomNumber int) (string, error) {
	bookings, err := l.bookings.LoadAll()
	if err != nil {
		return "", fmt.Errorf("failed to load bookings: %w", err)
	}

	target := -1
	for i, b := range bookings {
		if b.RoomNumber == roomNumber && b.GuestName == guestName {
			target = i
			break
		}
	}
	if target < 0 {
		return "", fmt.Errorf("%w: room %d for guest %s", ErrBookingNotFound, roomNumber, guestName)
	}
	if bookings[target].Confirmed() {
		return "", fmt.Errorf("%w: %s", ErrAlreadyConfirmed, bookings[target].ReferenceID)
	}

	n, err := l.counter.Next()
	if err != nil {
		return "", fmt.Errorf("failed to issue reference number: %w", err)
	}
	ref := fmt.Sprintf("REF%d", n)
	bookings[target].ReferenceID = ref

	if err := l.bookings.SaveAll(bookings); err != nil {
		return "", fmt.Errorf("failed to save bookings: %w", err)
	}
	return ref, nil
}

// ListAvailable returns the rooms open for booking, in store order.
func (l *Ledger) ListAvailable() ([]Room, error) {
	rooms, err := l.rooms.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	var available []Room
	for _, r := range rooms {
		if r.Available {
			available = append(available, r)
		}
	}
	return available, nil
}

// ListOccupied returns every occupied room together with its occupant. The
// occupant name is shown only to admins and to the guest who owns the
// booking; everyone else sees "Occupied".
func (l *Ledger) ListOccupied(viewer Actor) ([]Occupancy, error) {
	rooms, err := l.rooms.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	bookings, err := l.bookings.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	var occupied []Occupancy
	for _, b := range bookings {
		idx := roomIndex(rooms, b.RoomNumber)
		if idx < 0 {
			continue
		}
		occupant := "Occupied"
		if viewer.Role == RoleAdmin || viewer.Name == b.GuestName {
			occupant = b.GuestName
		}
		occupied = append(occupied, Occupancy{Room: rooms[idx], Occupant: occupant})
	}
	return occupied, nil
}

// ListBookingsFor returns the guest's active bookings.
func (l *Ledger) ListBookingsFor(guestName string) ([]Booking, error) {
	bookings, err := l.bookings.FindActiveForGuest(guestName)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return bookings, nil
}

// ListAllBookings returns every active booking. Admin-facing.
func (l *Ledger) ListAllBookings() ([]Booking, error) {
	bookings, err := l.bookings.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return bookings, nil
}

// AddRoom adds a room to the inventory, initially available.
func (l *Ledger) AddRoom(roomNumber int, roomType RoomType) (Room, error) {
	if _, err := l.rates.For(roomType); err != nil {
		return Room{}, err
	}
	room := Room{Number: roomNumber, Type: roomType, Available: true}
	if err := l.rooms.Create(room); err != nil {
		return Room{}, err
	}
	return room, nil
}

// RemoveRoom deletes a room from the inventory. A room with an active booking
// cannot be removed; both stores are left untouched in that case.
func (l *Ledger) RemoveRoom(roomNumber int) error {
	rooms, err := l.rooms.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}
	if roomIndex(rooms, roomNumber) < 0 {
		return fmt.Errorf("%w: room %d", ErrRoomNotFound, roomNumber)
	}
	booking, err := l.bookings.FindByRoom(roomNumber)
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}
	if booking != nil {
		return fmt.Errorf("%w: room %d is booked by %s", ErrRoomHasActiveBooking, roomNumber, booking.GuestName)
	}
	return l.rooms.Delete(roomNumber)
}

// SetRoomType changes a room's type. Only the going-forward rate changes;
// existing bookings keep the total they were priced at.
func (l *Ledger) SetRoomType(roomNumber int, roomType RoomType) error {
	if _, err := l.rates.For(roomType); err != nil {
		return err
	}
	rooms, err := l.rooms.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load rooms: %w", err)
	}
	idx := roomIndex(rooms, roomNumber)
	if idx < 0 {
		return fmt.Errorf("%w: room %d", ErrRoomNotFound, roomNumber)
	}
	rooms[idx].Type = roomType
	if err := l.rooms.SaveAll(rooms); err != nil {
		return fmt.Errorf("failed to save rooms: %w", err)
	}
	return nil
}

// SetAvailability is the admin override for a room's availability flag. It
// does not touch bookings; it exists for recovering from bad state, not as a
// booking mechanism.
func (l *Ledger) SetAvailability(roomNumber int, available bool) error {
	return l.rooms.SetAvailability(roomNumber, available)
}

func roomIndex(rooms []Room, roomNumber int) int {
	for i, r := range rooms {
		if r.Number == roomNumber {
			return i
		}
	}
	return -1
}
