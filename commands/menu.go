package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hotel-ledger/internal/config"
	"hotel-ledger/ledger"
)

// MenuCmd runs the interactive session: a login loop followed by the admin or
// guest menu. All prompting and parsing happens here; the ledger only ever
// sees validated arguments.
func MenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive hotel menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, cfg, err := openLedger()
			if err != nil {
				return err
			}
			s := &session{
				ledger: l,
				cfg:    cfg,
				in:     bufio.NewScanner(os.Stdin),
				out:    cmd.OutOrStdout(),
			}
			return s.run()
		},
	}
}

type session struct {
	ledger *ledger.Ledger
	cfg    config.Config
	in     *bufio.Scanner
	out    io.Writer
}

func (s *session) run() error {
	fmt.Fprintln(s.out, "HOTEL MANAGEMENT SYSTEM")
	for {
		actor, ok := s.login()
		if !ok {
			// Input exhausted, end the session.
			return nil
		}
		switch actor.Role {
		case ledger.RoleAdmin:
			fmt.Fprintf(s.out, "Admin: %s\n", actor.Name)
			if !s.adminMenu(actor) {
				return nil
			}
		case ledger.RoleGuest:
			fmt.Fprintf(s.out, "Guest: %s\n", actor.Name)
			if !s.guestMenu(actor) {
				return nil
			}
		}
	}
}

// login prompts until it has a valid actor. The second return value is false
// only when input runs out.
func (s *session) login() (ledger.Actor, bool) {
	for {
		choice, ok := s.promptInt("Login as: 1. Admin  2. Guest\nChoice: ")
		if !ok {
			return ledger.Actor{}, false
		}
		switch choice {
		case 1:
			user, ok := s.promptLine("Username: ")
			if !ok {
				return ledger.Actor{}, false
			}
			pass, ok := s.promptLine("Password: ")
			if !ok {
				return ledger.Actor{}, false
			}
			if s.cfg.Authenticate(user, pass) {
				return ledger.Actor{Role: ledger.RoleAdmin, Name: user}, true
			}
			fmt.Fprintln(s.out, "Invalid credentials.")
		case 2:
			name, ok := s.promptLine("Enter name: ")
			if !ok {
				return ledger.Actor{}, false
			}
			if name != "" {
				return ledger.Actor{Role: ledger.RoleGuest, Name: name}, true
			}
			fmt.Fprintln(s.out, "Name must not be empty.")
		default:
			fmt.Fprintln(s.out, "Invalid. Try again.")
		}
	}
}

// adminMenu returns false when input runs out, true on logout.
func (s *session) adminMenu(actor ledger.Actor) bool {
	for {
		choice, ok := s.promptInt("\nADMIN MENU\n1. View Rooms\n2. Cancel Booking\n3. View Bookings\n4. Add Room\n5. Delete Room\n6. Update Availability\n7. Logout\nChoice: ")
		if !ok {
			return false
		}
		switch choice {
		case 1:
			s.showRooms(actor)
		case 2:
			s.cancelBooking(actor)
		case 3:
			s.showAllBookings()
		case 4:
			s.addRoom()
		case 5:
			s.removeRoom()
		case 6:
			s.toggleAvailability()
		case 7:
			return true
		default:
			fmt.Fprintln(s.out, "Invalid. Try again.")
		}
	}
}

// guestMenu returns false when input runs out, true on logout.
func (s *session) guestMenu(actor ledger.Actor) bool {
	for {
		choice, ok := s.promptInt("\nGUEST MENU\n1. View Rooms\n2. Book Room\n3. Cancel Booking\n4. My Bookings\n5. Confirm Booking\n6. Logout\nChoice: ")
		if !ok {
			return false
		}
		switch choice {
		case 1:
			s.showRooms(actor)
		case 2:
			s.bookRoom(actor)
		case 3:
			s.cancelBooking(actor)
		case 4:
			s.showGuestBookings(actor)
		case 5:
			s.confirmBooking(actor)
		case 6:
			return true
		default:
			fmt.Fprintln(s.out, "Invalid. Try again.")
		}
	}
}

func (s *session) showRooms(viewer ledger.Actor) {
	available, err := s.ledger.ListAvailable()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "\nAvailable Rooms:")
	for _, r := range available {
		fmt.Fprintf(s.out, "Room %d (%s)\n", r.Number, r.Type)
	}
	occupied, err := s.ledger.ListOccupied(viewer)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "---\nOccupied Rooms:")
	for _, o := range occupied {
		if o.Occupant == "Occupied" {
			fmt.Fprintf(s.out, "Room %d (%s) - Occupied\n", o.Room.Number, o.Room.Type)
		} else {
			fmt.Fprintf(s.out, "Room %d (%s) - Occupied by %s\n", o.Room.Number, o.Room.Type, o.Occupant)
		}
	}
}

func (s *session) bookRoom(actor ledger.Actor) {
	roomNumber, ok := s.promptInt("Enter room number to book: ")
	if !ok {
		return
	}
	nights, ok := s.promptInt("Enter number of nights: ")
	if !ok {
		return
	}
	booking, err := s.ledger.Book(actor.Name, roomNumber, nights)
	if err != nil {
		fmt.Fprintf(s.out, "Booking failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Booking successful. Total: $%.2f\n", booking.TotalCost)
}

func (s *session) cancelBooking(actor ledger.Actor) {
	roomNumber, ok := s.promptInt("Enter room number to cancel (0 to return): ")
	if !ok || roomNumber == 0 {
		return
	}
	if err := s.ledger.Cancel(actor, roomNumber); err != nil {
		fmt.Fprintf(s.out, "Cancel failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Booking cancelled.")
}

func (s *session) confirmBooking(actor ledger.Actor) {
	roomNumber, ok := s.promptInt("Enter room number to confirm: ")
	if !ok {
		return
	}
	ref, err := s.ledger.Confirm(actor.Name, roomNumber)
	if err != nil {
		fmt.Fprintf(s.out, "Confirm failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Booking confirmed. Reference: %s\n", ref)
}

func (s *session) showGuestBookings(actor ledger.Actor) {
	bookings, err := s.ledger.ListBookingsFor(actor.Name)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(bookings) == 0 {
		fmt.Fprintln(s.out, "No bookings.")
		return
	}
	for _, b := range bookings {
		ref := b.ReferenceID
		if ref == "" {
			ref = "unconfirmed"
		}
		fmt.Fprintf(s.out, "Room %d, Nights: %d, Total: $%.2f, Reference: %s\n", b.RoomNumber, b.Nights, b.TotalCost, ref)
	}
}

func (s *session) showAllBookings() {
	bookings, err := s.ledger.ListAllBookings()
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(bookings) == 0 {
		fmt.Fprintln(s.out, "No bookings.")
		return
	}
	for _, b := range bookings {
		fmt.Fprintf(s.out, "Guest: %s, Room: %d, Nights: %d, Total: $%.2f\n", b.GuestName, b.RoomNumber, b.Nights, b.TotalCost)
	}
}

func (s *session) addRoom() {
	roomNumber, ok := s.promptInt("Enter room number (0 to cancel): ")
	if !ok || roomNumber == 0 {
		return
	}
	raw, ok := s.promptLine("Enter room type (Single/Double/Suite): ")
	if !ok {
		return
	}
	roomType, err := ledger.ParseRoomType(raw)
	if err != nil {
		fmt.Fprintf(s.out, "Add failed: %v\n", err)
		return
	}
	if _, err := s.ledger.AddRoom(roomNumber, roomType); err != nil {
		fmt.Fprintf(s.out, "Add failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Room added.")
}

func (s *session) removeRoom() {
	roomNumber, ok := s.promptInt("Enter room number to delete (0 to cancel): ")
	if !ok || roomNumber == 0 {
		return
	}
	if err := s.ledger.RemoveRoom(roomNumber); err != nil {
		fmt.Fprintf(s.out, "Delete failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "Room %d deleted.\n", roomNumber)
}

func (s *session) toggleAvailability() {
	roomNumber, ok := s.promptInt("Enter room number (0 to cancel): ")
	if !ok || roomNumber == 0 {
		return
	}
	raw, ok := s.promptLine("Set available? (1 = yes, 0 = no): ")
	if !ok {
		return
	}
	if raw != "0" && raw != "1" {
		fmt.Fprintln(s.out, "Invalid. Enter 0 or 1.")
		return
	}
	if err := s.ledger.SetAvailability(roomNumber, raw == "1"); err != nil {
		fmt.Fprintf(s.out, "Update failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Availability updated.")
}

// promptLine prints the prompt and reads one trimmed line. The second return
// value is false when input runs out.
func (s *session) promptLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

// promptInt keeps prompting until it reads an integer.
func (s *session) promptInt(prompt string) (int, bool) {
	for {
		line, ok := s.promptLine(prompt)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(s.out, "Enter a number.")
			continue
		}
		return n, true
	}
}
