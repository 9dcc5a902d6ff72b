package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"hotel-ledger/ledger"
)

// RoomsCmd groups the inventory-management subcommands.
func RoomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Manage the room inventory",
	}
	cmd.AddCommand(
		roomsListCmd(),
		roomsAddCmd(),
		roomsRemoveCmd(),
		roomsSetTypeCmd(),
		roomsSetAvailabilityCmd(),
	)
	return cmd
}

func roomsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available rooms (and occupied rooms with --occupied)",
		RunE: func(cmd *cobra.Command, args []string) error {
			occupied, _ := cmd.Flags().GetBool("occupied")

			l, _, err := openLedger()
			if err != nil {
				return err
			}
			if !occupied {
				rooms, err := l.ListAvailable()
				if err != nil {
					return err
				}
				printRooms(rooms)
				return nil
			}

			// Listing occupants is an admin view on the CLI.
			occupancies, err := l.ListOccupied(ledger.Actor{Role: ledger.RoleAdmin})
			if err != nil {
				return err
			}
			if len(occupancies) == 0 {
				fmt.Println("No occupied rooms.")
				return nil
			}
			fmt.Printf("%-8s  %-8s  %-16s\n", "Room", "Type", "Occupant")
			for _, o := range occupancies {
				fmt.Printf("%-8d  %-8s  %-16s\n", o.Room.Number, o.Room.Type, o.Occupant)
			}
			return nil
		},
	}
	cmd.Flags().Bool("occupied", false, "List occupied rooms instead")
	return cmd
}

func roomsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <number> <Single|Double|Suite>",
		Short: "Add a room to the inventory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid room number %q", args[0])
			}
			roomType, err := ledger.ParseRoomType(args[1])
			if err != nil {
				return err
			}
			l, _, err := openLedger()
			if err != nil {
				return err
			}
			room, err := l.AddRoom(number, roomType)
			if err != nil {
				return err
			}
			fmt.Printf("Added room %d (%s).\n", room.Number, room.Type)
			return nil
		},
	}
}

func roomsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove a room from the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid room number %q", args[0])
			}
			l, _, err := openLedger()
			if err != nil {
				return err
			}
			if err := l.RemoveRoom(number); err != nil {
				return err
			}
			fmt.Printf("Removed room %d.\n", number)
			return nil
		},
	}
}

func roomsSetTypeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-type <number> <Single|Double|Suite>",
		Short: "Change a room's type (affects new bookings only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid room number %q", args[0])
			}
			roomType, err := ledger.ParseRoomType(args[1])
			if err != nil {
				return err
			}
			l, _, err := openLedger()
			if err != nil {
				return err
			}
			if err := l.SetRoomType(number, roomType); err != nil {
				return err
			}
			fmt.Printf("Room %d is now a %s.\n", number, roomType)
			return nil
		},
	}
}

func roomsSetAvailabilityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-availability <number> <0|1>",
		Short: "Override a room's availability flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid room number %q", args[0])
			}
			var available bool
			switch args[1] {
			case "1":
				available = true
			case "0":
				available = false
			default:
				return fmt.Errorf("invalid availability %q, want 0 or 1", args[1])
			}
			l, _, err := openLedger()
			if err != nil {
				return err
			}
			if err := l.SetAvailability(number, available); err != nil {
				return err
			}
			fmt.Printf("Room %d availability set to %s.\n", number, args[1])
			return nil
		},
	}
}
