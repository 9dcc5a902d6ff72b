package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"hotel-ledger/internal/config"
	"hotel-ledger/ledger"
	"hotel-ledger/ledger/store"
	"hotel-ledger/ledger/store/gormstore"
)

// openLedger loads the configuration and wires the ledger to the configured
// storage backend.
func openLedger() (*ledger.Ledger, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	l, err := ledgerFor(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return l, cfg, nil
}

func ledgerFor(cfg config.Config) (*ledger.Ledger, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("data directory is not writable: %v", err)
	}

	switch cfg.Store {
	case config.StoreSQLite:
		db, err := gormstore.Open(filepath.Join(cfg.DataDir, "hotel.db"))
		if err != nil {
			return nil, err
		}
		return ledger.New(
			gormstore.NewRoomStore(db),
			gormstore.NewBookingStore(db),
			gormstore.NewCounterStore(db, store.CounterSeed),
			cfg.Rates,
		), nil
	default:
		return ledger.New(
			store.NewFileRoomStore(filepath.Join(cfg.DataDir, store.RoomsFile)),
			store.NewFileBookingStore(filepath.Join(cfg.DataDir, store.BookingsFile)),
			store.NewFileCounterStore(filepath.Join(cfg.DataDir, store.CounterFile)),
			cfg.Rates,
		), nil
	}
}

func roomStatus(r ledger.Room) string {
	if r.Available {
		return "Available"
	}
	return "Booked"
}

func printRooms(rooms []ledger.Room) {
	if len(rooms) == 0 {
		fmt.Println("No rooms.")
		return
	}
	fmt.Printf("%-8s  %-8s  %-10s\n", "Room", "Type", "Status")
	for _, r := range rooms {
		fmt.Printf("%-8d  %-8s  %-10s\n", r.Number, r.Type, roomStatus(r))
	}
}

func printBookings(bookings []ledger.Booking) {
	if len(bookings) == 0 {
		fmt.Println("No bookings.")
		return
	}
	fmt.Printf("%-16s  %-6s  %-6s  %-10s  %-10s\n", "Guest", "Room", "Nights", "Total", "Reference")
	for _, b := range bookings {
		ref := b.ReferenceID
		if ref == "" {
			ref = "-"
		}
		fmt.Printf("%-16s  %-6d  %-6d  $%-9.2f  %-10s\n", b.GuestName, b.RoomNumber, b.Nights, b.TotalCost, ref)
	}
}
