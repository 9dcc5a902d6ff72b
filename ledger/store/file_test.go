package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-ledger/ledger"
)

func roomStorePath(t *testing.T) string {
	return filepath.Join(t.TempDir(), RoomsFile)
}

func TestFileRoomStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileRoomStore(roomStorePath(t))
	rooms, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestFileRoomStoreSaveLoad(t *testing.T) {
	s := NewFileRoomStore(roomStorePath(t))
	want := []ledger.Room{
		{Number: 101, Type: ledger.Single, Available: true},
		{Number: 202, Type: ledger.Double, Available: false},
	}
	require.NoError(t, s.SaveAll(want))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileRoomStoreSkipsMalformedLines(t *testing.T) {
	path := roomStorePath(t)
	content := "101,Single,1\nnot a room\n202,Double,0\n303,Suite,maybe\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rooms, err := NewFileRoomStore(path).LoadAll()
	require.NoError(t, err)
	assert.Equal(t, []ledger.Room{
		{Number: 101, Type: ledger.Single, Available: true},
		{Number: 202, Type: ledger.Double, Available: false},
	}, rooms)
}

func TestFileRoomStoreCreate(t *testing.T) {
	s := NewFileRoomStore(roomStorePath(t))
	require.NoError(t, s.Create(ledger.Room{Number: 101, Type: ledger.Single, Available: true}))

	err := s.Create(ledger.Room{Number: 101, Type: ledger.Double, Available: true})
	assert.ErrorIs(t, err, ledger.ErrDuplicateRoomNumber)

	rooms, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, ledger.Single, rooms[0].Type)
}

func TestFileRoomStoreDelete(t *testing.T) {
	s := NewFileRoomStore(roomStorePath(t))
	require.NoError(t, s.Create(ledger.Room{Number: 101, Type: ledger.Single, Available: true}))

	assert.ErrorIs(t, s.Delete(999), ledger.ErrRoomNotFound)
	require.NoError(t, s.Delete(101))

	rooms, err := s.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestFileRoomStoreSetAvailability(t *testing.T) {
	s := NewFileRoomStore(roomStorePath(t))
	require.NoError(t, s.Create(ledger.Room{Number: 101, Type: ledger.Single, Available: true}))

	require.NoError(t, s.SetAvailability(101, false))
	rooms, err := s.LoadAll()
	require.NoError(t, err)
	assert.False(t, rooms[0].Available)

	assert.ErrorIs(t, s.SetAvailability(999, true), ledger.ErrRoomNotFound)
}

func TestFileBookingStoreSaveLoad(t *testing.T) {
	s := NewFileBookingStore(filepath.Join(t.TempDir(), BookingsFile))
	want := []ledger.Booking{
		{GuestName: "alice", RoomNumber: 101, Nights: 3, TotalCost: 300.00},
		{GuestName: "bob", RoomNumber: 202, Nights: 1, TotalCost: 150.00, ReferenceID: "REF1001"},
	}
	require.NoError(t, s.SaveAll(want))

	got, err := s.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileBookingStoreDropsDuplicateRoomBookings(t *testing.T) {
	path := filepath.Join(t.TempDir(), BookingsFile)
	content := "alice,101,3,300.00,\nbob,101,2,200.00,\ncarol,202,1,150.00,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	bookings, err := NewFileBookingStore(path).LoadAll()
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	// First record for the room wins.
	assert.Equal(t, "alice", bookings[0].GuestName)
	assert.Equal(t, "carol", bookings[1].GuestName)
}

func TestFileBookingStoreFinders(t *testing.T) {
	s := NewFileBookingStore(filepath.Join(t.TempDir(), BookingsFile))
	require.NoError(t, s.SaveAll([]ledger.Booking{
		{GuestName: "alice", RoomNumber: 101, Nights: 3, TotalCost: 300.00},
		{GuestName: "alice", RoomNumber: 303, Nights: 1, TotalCost: 250.00},
		{GuestName: "bob", RoomNumber: 202, Nights: 1, TotalCost: 150.00},
	}))

	owned, err := s.FindActiveForGuest("alice")
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	booking, err := s.FindByRoom(202)
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, "bob", booking.GuestName)

	booking, err = s.FindByRoom(999)
	require.NoError(t, err)
	assert.Nil(t, booking)
}

func TestFileCounterStoreMonotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), CounterFile)
	s := NewFileCounterStore(path)

	n, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, CounterSeed+1, n)

	n, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, CounterSeed+2, n)

	// A fresh store over the same file keeps counting, never resets.
	n, err = NewFileCounterStore(path).Next()
	require.NoError(t, err)
	assert.Equal(t, CounterSeed+3, n)
}

func TestFileCounterStoreGarbledFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), CounterFile)
	require.NoError(t, os.WriteFile(path, []byte("not a number\n"), 0644))

	_, err := NewFileCounterStore(path).Next()
	assert.ErrorIs(t, err, ledger.ErrStorageUnavailable)
}

func TestWriteLinesReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), RoomsFile)
	s := NewFileRoomStore(path)
	require.NoError(t, s.SaveAll([]ledger.Room{{Number: 101, Type: ledger.Single, Available: true}}))
	require.NoError(t, s.SaveAll([]ledger.Room{{Number: 202, Type: ledger.Double, Available: true}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "202,Double,1\n", string(data))
}
