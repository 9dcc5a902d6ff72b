// Package store implements the flat-file backends for the ledger: one
// newline-delimited file per collection, fully rewritten on every save.
// Malformed lines are skipped with a warning instead of failing the load, so
// a single bad record never takes the whole inventory down with it.
package store

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hotel-ledger/ledger"
	"hotel-ledger/ledger/codec"
)

// Default file names inside the data directory.
const (
	RoomsFile    = "rooms.txt"
	BookingsFile = "bookings.txt"
	CounterFile  = "ref_counter.txt"
)

// CounterSeed is the value the reference counter starts from when no counter
// file exists yet; the first issued reference number is CounterSeed+1.
const CounterSeed = 1000

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
}

// readLines returns the non-empty lines of path, or nil if the file does not
// exist yet.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, storageErr(err)
	}
	return lines, nil
}

// writeLines rewrites path with the given lines. The write goes to a
// temporary file in the same directory which is renamed over the target, so
// a reader never observes a partially written file.
func writeLines(path string, lines []string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return storageErr(err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(tmp, line); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return storageErr(err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return storageErr(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return storageErr(err)
	}
	return nil
}

// FileRoomStore keeps the room inventory in a single delimited text file.
type FileRoomStore struct {
	path string
}

func NewFileRoomStore(path string) *FileRoomStore {
	return &FileRoomStore{path: path}
}

func (s *FileRoomStore) LoadAll() ([]ledger.Room, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	var rooms []ledger.Room
	for i, line := range lines {
		room, err := codec.DecodeRoom(line)
		if err != nil {
			log.Printf("skipping room record %d in %s: %v", i+1, s.path, err)
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *FileRoomStore) SaveAll(rooms []ledger.Room) error {
	lines := make([]string, 0, len(rooms))
	for _, r := range rooms {
		lines = append(lines, codec.EncodeRoom(r))
	}
	return writeLines(s.path, lines)
}

func (s *FileRoomStore) Create(room ledger.Room) error {
	rooms, err := s.LoadAll()
	if err != nil {
		return err
	}
	for _, r := range rooms {
		if r.Number == room.Number {
			return fmt.Errorf("%w: room %d", ledger.ErrDuplicateRoomNumber, room.Number)
		}
	}
	return s.SaveAll(append(rooms, room))
}

func (s *FileRoomStore) Delete(roomNumber int) error {
	rooms, err := s.LoadAll()
	if err != nil {
		return err
	}
	kept := rooms[:0]
	found := false
	for _, r := range rooms {
		if r.Number == roomNumber {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return fmt.Errorf("%w: room %d", ledger.ErrRoomNotFound, roomNumber)
	}
	return s.SaveAll(kept)
}

func (s *FileRoomStore) SetAvailability(roomNumber int, available bool) error {
	rooms, err := s.LoadAll()
	if err != nil {
		return err
	}
	for i := range rooms {
		if rooms[i].Number == roomNumber {
			rooms[i].Available = available
			return s.SaveAll(rooms)
		}
	}
	return fmt.Errorf("%w: room %d", ledger.ErrRoomNotFound, roomNumber)
}

// FileBookingStore keeps booking records in a single delimited text file.
type FileBookingStore struct {
	path string
}

func NewFileBookingStore(path string) *FileBookingStore {
	return &FileBookingStore{path: path}
}

// LoadAll decodes every booking line. A room can hold only one active booking,
// so a second booking for the same room is data corruption: the first record
// wins and the rest are logged and dropped.
func (s *FileBookingStore) LoadAll() ([]ledger.Booking, error) {
	lines, err := readLines(s.path)
	if err != nil {
		return nil, err
	}
	var bookings []ledger.Booking
	seen := make(map[int]bool)
	for i, line := range lines {
		booking, err := codec.DecodeBooking(line)
		if err != nil {
			log.Printf("skipping booking record %d in %s: %v", i+1, s.path, err)
			continue
		}
		if seen[booking.RoomNumber] {
			log.Printf("dropping duplicate booking for room %d (record %d in %s)", booking.RoomNumber, i+1, s.path)
			continue
		}
		seen[booking.RoomNumber] = true
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func (s *FileBookingStore) SaveAll(bookings []ledger.Booking) error {
	lines := make([]string, 0, len(bookings))
	for _, b := range bookings {
		lines = append(lines, codec.EncodeBooking(b))
	}
	return writeLines(s.path, lines)
}

func (s *FileBookingStore) FindActiveForGuest(name string) ([]ledger.Booking, error) {
	bookings, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	var owned []ledger.Booking
	for _, b := range bookings {
		if b.GuestName == name {
			owned = append(owned, b)
		}
	}
	return owned, nil
}

func (s *FileBookingStore) FindByRoom(roomNumber int) (*ledger.Booking, error) {
	bookings, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.RoomNumber == roomNumber {
			return &b, nil
		}
	}
	return nil, nil
}

// FileCounterStore persists the last-issued reference number as a single
// integer in its own file. Missing file means the counter has never run and
// starts from the seed; the counter is never reset once the file exists.
type FileCounterStore struct {
	path string
	seed int
}

func NewFileCounterStore(path string) *FileCounterStore {
	return &FileCounterStore{path: path, seed: CounterSeed}
}

func (s *FileCounterStore) Next() (int, error) {
	last := s.seed
	lines, err := readLines(s.path)
	if err != nil {
		return 0, err
	}
	if len(lines) > 0 {
		parsed, err := strconv.Atoi(lines[0])
		if err != nil {
			// A garbled counter must not restart from the seed, that
			// would reissue old reference numbers.
			return 0, fmt.Errorf("%w: counter file %s holds %q", ledger.ErrStorageUnavailable, s.path, lines[0])
		}
		last = parsed
	}
	next := last + 1
	if err := writeLines(s.path, []string{strconv.Itoa(next)}); err != nil {
		return 0, err
	}
	return next, nil
}
