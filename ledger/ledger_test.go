package ledger_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-ledger/ledger"
	"hotel-ledger/ledger/store"
	"hotel-ledger/ledger/store/gormstore"
)

func fileLedger(t *testing.T, dir string) *ledger.Ledger {
	return ledger.New(
		store.NewFileRoomStore(filepath.Join(dir, store.RoomsFile)),
		store.NewFileBookingStore(filepath.Join(dir, store.BookingsFile)),
		store.NewFileCounterStore(filepath.Join(dir, store.CounterFile)),
		nil,
	)
}

func gormLedger(t *testing.T, dir string) *ledger.Ledger {
	db, err := gormstore.Open(filepath.Join(dir, "hotel.db"))
	require.NoError(t, err)
	return ledger.New(
		gormstore.NewRoomStore(db),
		gormstore.NewBookingStore(db),
		gormstore.NewCounterStore(db, store.CounterSeed),
		nil,
	)
}

// checkInvariant asserts that a room is unavailable exactly when one active
// booking targets it.
func checkInvariant(t *testing.T, l *ledger.Ledger) {
	t.Helper()
	available, err := l.ListAvailable()
	require.NoError(t, err)
	bookings, err := l.ListAllBookings()
	require.NoError(t, err)

	byRoom := make(map[int]int)
	for _, b := range bookings {
		byRoom[b.RoomNumber]++
	}
	for _, r := range available {
		assert.Zero(t, byRoom[r.Number], "available room %d has a booking", r.Number)
	}
	occupied, err := l.ListOccupied(ledger.Actor{Role: ledger.RoleAdmin})
	require.NoError(t, err)
	for _, o := range occupied {
		assert.False(t, o.Room.Available)
		assert.Equal(t, 1, byRoom[o.Room.Number], "occupied room %d booking count", o.Room.Number)
	}
}

func TestBookConfirmCancelScenario(t *testing.T) {
	backends := map[string]func(t *testing.T, dir string) *ledger.Ledger{
		"file":   fileLedger,
		"sqlite": gormLedger,
	}
	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			l := build(t, t.TempDir())
			_, err := l.AddRoom(101, ledger.Single)
			require.NoError(t, err)

			booking, err := l.Book("alice", 101, 3)
			require.NoError(t, err)
			assert.Equal(t, ledger.Booking{
				GuestName:  "alice",
				RoomNumber: 101,
				Nights:     3,
				TotalCost:  300.00,
			}, booking)

			available, err := l.ListAvailable()
			require.NoError(t, err)
			assert.Empty(t, available)
			checkInvariant(t, l)

			ref, err := l.Confirm("alice", 101)
			require.NoError(t, err)
			assert.Equal(t, "REF1001", ref)

			require.NoError(t, l.Cancel(ledger.Actor{Role: ledger.RoleGuest, Name: "alice"}, 101))

			available, err = l.ListAvailable()
			require.NoError(t, err)
			require.Len(t, available, 1)
			assert.True(t, available[0].Available)

			bookings, err := l.ListAllBookings()
			require.NoError(t, err)
			assert.Empty(t, bookings)
			checkInvariant(t, l)
		})
	}
}

func TestBookValidation(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	_, err := l.AddRoom(101, ledger.Single)
	require.NoError(t, err)

	_, err = l.Book("alice", 999, 2)
	assert.ErrorIs(t, err, ledger.ErrRoomNotFound)

	_, err = l.Book("alice", 101, 0)
	assert.ErrorIs(t, err, ledger.ErrInvalidNights)
	_, err = l.Book("alice", 101, -3)
	assert.ErrorIs(t, err, ledger.ErrInvalidNights)

	_, err = l.Book("alice", 101, 2)
	require.NoError(t, err)
	_, err = l.Book("bob", 101, 1)
	assert.ErrorIs(t, err, ledger.ErrRoomNotAvailable)
}

func TestCancelOwnership(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	_, err := l.AddRoom(101, ledger.Double)
	require.NoError(t, err)
	_, err = l.Book("alice", 101, 2)
	require.NoError(t, err)

	// Another guest cannot cancel alice's booking.
	err = l.Cancel(ledger.Actor{Role: ledger.RoleGuest, Name: "bob"}, 101)
	assert.ErrorIs(t, err, ledger.ErrBookingNotFound)

	// An admin can.
	require.NoError(t, l.Cancel(ledger.Actor{Role: ledger.RoleAdmin, Name: "admin"}, 101))
	checkInvariant(t, l)

	err = l.Cancel(ledger.Actor{Role: ledger.RoleAdmin, Name: "admin"}, 999)
	assert.ErrorIs(t, err, ledger.ErrRoomNotFound)
}

func TestConfirm(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	_, err := l.AddRoom(101, ledger.Single)
	require.NoError(t, err)
	_, err = l.Book("alice", 101, 1)
	require.NoError(t, err)

	_, err = l.Confirm("alice", 999)
	assert.ErrorIs(t, err, ledger.ErrBookingNotFound)
	_, err = l.Confirm("bob", 101)
	assert.ErrorIs(t, err, ledger.ErrBookingNotFound)

	ref, err := l.Confirm("alice", 101)
	require.NoError(t, err)
	assert.Equal(t, "REF1001", ref)

	_, err = l.Confirm("alice", 101)
	assert.ErrorIs(t, err, ledger.ErrAlreadyConfirmed)

	// The issued reference survives in the store.
	bookings, err := l.ListBookingsFor("alice")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "REF1001", bookings[0].ReferenceID)
}

func TestReferenceIDsIncreaseAcrossRestarts(t *testing.T) {
	dir := t.TempDir()

	l := fileLedger(t, dir)
	_, err := l.AddRoom(101, ledger.Single)
	require.NoError(t, err)
	_, err = l.AddRoom(102, ledger.Single)
	require.NoError(t, err)
	_, err = l.Book("alice", 101, 1)
	require.NoError(t, err)
	ref, err := l.Confirm("alice", 101)
	require.NoError(t, err)
	assert.Equal(t, "REF1001", ref)

	// A new ledger over the same directory stands in for a process restart.
	restarted := fileLedger(t, dir)
	_, err = restarted.Book("bob", 102, 1)
	require.NoError(t, err)
	ref, err = restarted.Confirm("bob", 102)
	require.NoError(t, err)
	assert.Equal(t, "REF1002", ref)
}

func TestRemoveRoomWithActiveBooking(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	_, err := l.AddRoom(101, ledger.Suite)
	require.NoError(t, err)
	_, err = l.Book("alice", 101, 2)
	require.NoError(t, err)

	err = l.RemoveRoom(101)
	assert.ErrorIs(t, err, ledger.ErrRoomHasActiveBooking)

	// Both stores are untouched by the failed delete.
	occupied, err := l.ListOccupied(ledger.Actor{Role: ledger.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, 101, occupied[0].Room.Number)
	bookings, err := l.ListAllBookings()
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "alice", bookings[0].GuestName)

	assert.ErrorIs(t, l.RemoveRoom(999), ledger.ErrRoomNotFound)

	require.NoError(t, l.Cancel(ledger.Actor{Role: ledger.RoleAdmin}, 101))
	require.NoError(t, l.RemoveRoom(101))
}

func TestAddRoom(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	room, err := l.AddRoom(101, ledger.Double)
	require.NoError(t, err)
	assert.True(t, room.Available)

	_, err = l.AddRoom(101, ledger.Suite)
	assert.ErrorIs(t, err, ledger.ErrDuplicateRoomNumber)

	_, err = l.AddRoom(102, ledger.RoomType("Penthouse"))
	assert.ErrorIs(t, err, ledger.ErrUnknownRoomType)
}

func TestSetRoomTypeRepricesNewBookingsOnly(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	_, err := l.AddRoom(101, ledger.Single)
	require.NoError(t, err)
	booking, err := l.Book("alice", 101, 2)
	require.NoError(t, err)
	assert.Equal(t, 200.00, booking.TotalCost)

	require.NoError(t, l.SetRoomType(101, ledger.Suite))
	assert.ErrorIs(t, l.SetRoomType(101, ledger.RoomType("Penthouse")), ledger.ErrUnknownRoomType)
	assert.ErrorIs(t, l.SetRoomType(999, ledger.Double), ledger.ErrRoomNotFound)

	// The existing booking keeps the total it was priced at.
	bookings, err := l.ListBookingsFor("alice")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 200.00, bookings[0].TotalCost)

	// New bookings pick up the new rate.
	require.NoError(t, l.Cancel(ledger.Actor{Role: ledger.RoleGuest, Name: "alice"}, 101))
	booking, err = l.Book("alice", 101, 2)
	require.NoError(t, err)
	assert.Equal(t, 500.00, booking.TotalCost)
}

func TestListOccupiedRedaction(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	_, err := l.AddRoom(101, ledger.Single)
	require.NoError(t, err)
	_, err = l.AddRoom(102, ledger.Double)
	require.NoError(t, err)
	_, err = l.Book("alice", 101, 1)
	require.NoError(t, err)
	_, err = l.Book("bob", 102, 1)
	require.NoError(t, err)

	occupied, err := l.ListOccupied(ledger.Actor{Role: ledger.RoleGuest, Name: "alice"})
	require.NoError(t, err)
	require.Len(t, occupied, 2)
	byRoom := make(map[int]string)
	for _, o := range occupied {
		byRoom[o.Room.Number] = o.Occupant
	}
	assert.Equal(t, "alice", byRoom[101])
	assert.Equal(t, "Occupied", byRoom[102])

	occupied, err = l.ListOccupied(ledger.Actor{Role: ledger.RoleAdmin, Name: "admin"})
	require.NoError(t, err)
	for _, o := range occupied {
		assert.NotEqual(t, "Occupied", o.Occupant)
	}
}

func TestCustomRates(t *testing.T) {
	dir := t.TempDir()
	rates := ledger.RateTable{ledger.Single: 80.00, ledger.Double: 180.00, ledger.Suite: 250.00}
	l := ledger.New(
		store.NewFileRoomStore(filepath.Join(dir, store.RoomsFile)),
		store.NewFileBookingStore(filepath.Join(dir, store.BookingsFile)),
		store.NewFileCounterStore(filepath.Join(dir, store.CounterFile)),
		rates,
	)
	_, err := l.AddRoom(201, ledger.Double)
	require.NoError(t, err)
	booking, err := l.Book("alice", 201, 2)
	require.NoError(t, err)
	assert.Equal(t, 360.00, booking.TotalCost)
}

func TestOperationSequenceKeepsInvariant(t *testing.T) {
	l := fileLedger(t, t.TempDir())
	for n := 101; n <= 105; n++ {
		_, err := l.AddRoom(n, ledger.Single)
		require.NoError(t, err)
	}

	_, err := l.Book("alice", 101, 1)
	require.NoError(t, err)
	_, err = l.Book("bob", 102, 2)
	require.NoError(t, err)
	_, err = l.Book("carol", 103, 3)
	require.NoError(t, err)
	checkInvariant(t, l)

	require.NoError(t, l.Cancel(ledger.Actor{Role: ledger.RoleGuest, Name: "bob"}, 102))
	checkInvariant(t, l)

	_, err = l.Book("dave", 102, 1)
	require.NoError(t, err)
	_, err = l.Confirm("dave", 102)
	require.NoError(t, err)
	checkInvariant(t, l)

	require.NoError(t, l.Cancel(ledger.Actor{Role: ledger.RoleAdmin}, 103))
	require.NoError(t, l.RemoveRoom(103))
	checkInvariant(t, l)
}
