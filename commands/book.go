package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hotel-ledger/ledger"
)

// BookCmd books a room for a guest.
func BookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book <guest> <room> <nights>",
		Short: "Book a room for a guest",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid room number %q", args[1])
			}
			nights, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid nights %q", args[2])
			}
			l, _, err := openLedger()
			if err != nil {
				return err
			}
			booking, err := l.Book(args[0], roomNumber, nights)
			if err != nil {
				return err
			}
			fmt.Printf("Booked room %d for %s, %d night(s), total $%.2f.\n",
				booking.RoomNumber, booking.GuestName, booking.Nights, booking.TotalCost)
			return nil
		},
	}
}

// CancelCmd cancels the active booking on a room. With --guest the cancel is
// subject to the ownership check; --admin cancels any booking.
func CancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <room>",
		Short: "Cancel the booking on a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomNumber, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid room number %q", args[0])
			}
			guest, _ := cmd.Flags().GetString("guest")
			asAdmin, _ := cmd.Flags().GetBool("admin")

			var actor ledger.Actor
			switch {
			case asAdmin:
				actor = ledger.Actor{Role: ledger.RoleAdmin}
			case guest != "":
				actor = ledger.Actor{Role: ledger.RoleGuest, Name: guest}
			default:
				return fmt.Errorf("pass --guest <name> or --admin")
			}

			l, _, err := openLedger()
			if err != nil {
				return err
			}
			if err := l.Cancel(actor, roomNumber); err != nil {
				return err
			}
			fmt.Printf("Booking for room %d cancelled.\n", roomNumber)
			return nil
		},
	}
	cmd.Flags().String("guest", "", "Cancel as this guest (ownership checked)")
	cmd.Flags().Bool("admin", false, "Cancel as admin (any booking)")
	return cmd
}

// ConfirmCmd issues a reference ID for a guest's booking.
func ConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <guest> <room>",
		Short: "Confirm a booking and issue its reference ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomNumber, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid room number %q", args[1])
			}
			l, _, err := openLedger()
			if err != nil {
				return err
			}
			ref, err := l.Confirm(args[0], roomNumber)
			if err != nil {
				return err
			}
			fmt.Printf("Booking confirmed. Reference: %s\n", ref)
			return nil
		},
	}
}

// BookingsCmd lists bookings, either all of them or one guest's.
func BookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			guest, _ := cmd.Flags().GetString("guest")

			l, _, err := openLedger()
			if err != nil {
				return err
			}
			var bookings []ledger.Booking
			if guest != "" {
				bookings, err = l.ListBookingsFor(guest)
			} else {
				bookings, err = l.ListAllBookings()
			}
			if err != nil {
				return err
			}
			printBookings(bookings)
			return nil
		},
	}
	cmd.Flags().String("guest", "", "Only this guest's bookings")
	return cmd
}
