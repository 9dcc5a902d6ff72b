// Package codec converts rooms and bookings to and from the one-line
// comma-delimited form used by the flat-file stores. Decoding is strict about
// the fields it needs and indifferent to extra trailing fields, so records
// written by newer versions still load.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hotel-ledger/ledger"
)

const delimiter = ","

// ErrMalformedRecord marks a line that cannot be decoded. Stores catch it,
// log the line, and carry on; it never crosses the store boundary.
var ErrMalformedRecord = errors.New("malformed record")

// EncodeRoom renders a room as "number,type,available" with availability as
// 0 or 1.
func EncodeRoom(r ledger.Room) string {
	available := "0"
	if r.Available {
		available = "1"
	}
	return strings.Join([]string{strconv.Itoa(r.Number), string(r.Type), available}, delimiter)
}

// DecodeRoom parses a room line. Extra trailing fields are ignored.
func DecodeRoom(line string) (ledger.Room, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) < 3 {
		return ledger.Room{}, fmt.Errorf("%w: room line has %d fields, want 3", ErrMalformedRecord, len(fields))
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return ledger.Room{}, fmt.Errorf("%w: room number %q", ErrMalformedRecord, fields[0])
	}
	if fields[1] == "" {
		return ledger.Room{}, fmt.Errorf("%w: empty room type", ErrMalformedRecord)
	}
	var available bool
	switch fields[2] {
	case "1":
		available = true
	case "0":
		available = false
	default:
		return ledger.Room{}, fmt.Errorf("%w: availability flag %q", ErrMalformedRecord, fields[2])
	}
	return ledger.Room{
		Number:    number,
		Type:      ledger.RoomType(fields[1]),
		Available: available,
	}, nil
}

// EncodeBooking renders a booking as "guest,room,nights,total,reference" with
// the total at fixed two-decimal precision. The reference field is empty for
// unconfirmed bookings.
func EncodeBooking(b ledger.Booking) string {
	return fmt.Sprintf("%s%s%d%s%d%s%.2f%s%s",
		b.GuestName, delimiter,
		b.RoomNumber, delimiter,
		b.Nights, delimiter,
		b.TotalCost, delimiter,
		b.ReferenceID)
}

// DecodeBooking parses a booking line. The reference field may be empty or,
// in records written before references existed, missing entirely; both decode
// to an unconfirmed booking. Extra trailing fields are ignored.
func DecodeBooking(line string) (ledger.Booking, error) {
	fields := strings.Split(line, delimiter)
	if len(fields) < 4 {
		return ledger.Booking{}, fmt.Errorf("%w: booking line has %d fields, want at least 4", ErrMalformedRecord, len(fields))
	}
	if fields[0] == "" {
		return ledger.Booking{}, fmt.Errorf("%w: empty guest name", ErrMalformedRecord)
	}
	roomNumber, err := strconv.Atoi(fields[1])
	if err != nil {
		return ledger.Booking{}, fmt.Errorf("%w: room number %q", ErrMalformedRecord, fields[1])
	}
	nights, err := strconv.Atoi(fields[2])
	if err != nil {
		return ledger.Booking{}, fmt.Errorf("%w: nights %q", ErrMalformedRecord, fields[2])
	}
	totalCost, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return ledger.Booking{}, fmt.Errorf("%w: total cost %q", ErrMalformedRecord, fields[3])
	}
	var reference string
	if len(fields) > 4 {
		reference = fields[4]
	}
	return ledger.Booking{
		GuestName:   fields[0],
		RoomNumber:  roomNumber,
		Nights:      nights,
		TotalCost:   totalCost,
		ReferenceID: reference,
	}, nil
}
