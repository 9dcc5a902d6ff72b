// Package gormstore is the embedded-database alternative to the flat-file
// stores: the same store interfaces backed by SQLite through GORM. The ledger
// is oblivious to which backend it runs on.
package gormstore

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-ledger/ledger"
)

// room mirrors ledger.Room as a table row.
type room struct {
	Number    int    `gorm:"primaryKey;column:room_number"`
	Type      string `gorm:"column:room_type;size:32;not null"`
	Available bool   `gorm:"column:is_available"`
}

func (room) TableName() string { return "rooms" }

// booking mirrors ledger.Booking. The unique index on room_number enforces
// the one-active-booking-per-room invariant at the storage layer.
type booking struct {
	ID          uint    `gorm:"primaryKey"`
	GuestName   string  `gorm:"column:guest_name;size:128;not null"`
	RoomNumber  int     `gorm:"column:room_number;uniqueIndex"`
	Nights      int     `gorm:"column:nights"`
	TotalCost   float64 `gorm:"column:total_cost"`
	ReferenceID string  `gorm:"column:reference_id;size:32"`
}

func (booking) TableName() string { return "bookings" }

// counter is a single-row table holding the last-issued reference number.
type counter struct {
	ID         uint `gorm:"primaryKey"`
	LastIssued int  `gorm:"column:last_issued"`
}

func (counter) TableName() string { return "ref_counter" }

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema. Use ":memory:" for a throwaway database in tests.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
	}
	if err := db.AutoMigrate(&room{}, &booking{}, &counter{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
	}
	return db, nil
}

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ledger.ErrStorageUnavailable, err)
}

// RoomStore implements ledger.RoomStore over a GORM database.
type RoomStore struct {
	db *gorm.DB
}

func NewRoomStore(db *gorm.DB) *RoomStore {
	return &RoomStore{db: db}
}

func (s *RoomStore) LoadAll() ([]ledger.Room, error) {
	var rows []room
	if err := s.db.Order("room_number").Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	rooms := make([]ledger.Room, 0, len(rows))
	for _, r := range rows {
		rooms = append(rooms, ledger.Room{
			Number:    r.Number,
			Type:      ledger.RoomType(r.Type),
			Available: r.Available,
		})
	}
	return rooms, nil
}

// SaveAll replaces the whole table, matching the full-rewrite contract of the
// flat-file store.
func (s *RoomStore) SaveAll(rooms []ledger.Room) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&room{}).Error; err != nil {
			return err
		}
		for _, r := range rooms {
			row := room{Number: r.Number, Type: string(r.Type), Available: r.Available}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *RoomStore) Create(r ledger.Room) error {
	var existing room
	err := s.db.First(&existing, "room_number = ?", r.Number).Error
	if err == nil {
		return fmt.Errorf("%w: room %d", ledger.ErrDuplicateRoomNumber, r.Number)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return storageErr(err)
	}
	row := room{Number: r.Number, Type: string(r.Type), Available: r.Available}
	if err := s.db.Create(&row).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *RoomStore) Delete(roomNumber int) error {
	res := s.db.Delete(&room{}, "room_number = ?", roomNumber)
	if res.Error != nil {
		return storageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: room %d", ledger.ErrRoomNotFound, roomNumber)
	}
	return nil
}

func (s *RoomStore) SetAvailability(roomNumber int, available bool) error {
	var row room
	if err := s.db.First(&row, "room_number = ?", roomNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: room %d", ledger.ErrRoomNotFound, roomNumber)
		}
		return storageErr(err)
	}
	row.Available = available
	if err := s.db.Save(&row).Error; err != nil {
		return storageErr(err)
	}
	return nil
}

// BookingStore implements ledger.BookingStore over a GORM database.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func (s *BookingStore) LoadAll() ([]ledger.Booking, error) {
	var rows []booking
	if err := s.db.Order("id").Find(&rows).Error; err != nil {
		return nil, storageErr(err)
	}
	bookings := make([]ledger.Booking, 0, len(rows))
	for _, b := range rows {
		bookings = append(bookings, toBooking(b))
	}
	return bookings, nil
}

func (s *BookingStore) SaveAll(bookings []ledger.Booking) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&booking{}).Error; err != nil {
			return err
		}
		for _, b := range bookings {
			row := booking{
				GuestName:   b.GuestName,
				RoomNumber:  b.RoomNumber,
				Nights:      b.Nights,
				TotalCost:   b.TotalCost,
				ReferenceID: b.ReferenceID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr(err)
	}
	return nil
}

func (s *BookingStore) FindActiveForGuest(name string) ([]ledger.Booking, error) {
	var rows []booking
	if err := s.db.Order("id").Find(&rows, "guest_name = ?", name).Error; err != nil {
		return nil, storageErr(err)
	}
	bookings := make([]ledger.Booking, 0, len(rows))
	for _, b := range rows {
		bookings = append(bookings, toBooking(b))
	}
	return bookings, nil
}

func (s *BookingStore) FindByRoom(roomNumber int) (*ledger.Booking, error) {
	var row booking
	err := s.db.First(&row, "room_number = ?", roomNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr(err)
	}
	b := toBooking(row)
	return &b, nil
}

func toBooking(b booking) ledger.Booking {
	return ledger.Booking{
		GuestName:   b.GuestName,
		RoomNumber:  b.RoomNumber,
		Nights:      b.Nights,
		TotalCost:   b.TotalCost,
		ReferenceID: b.ReferenceID,
	}
}

// CounterStore implements ledger.CounterStore as a single-row table.
type CounterStore struct {
	db   *gorm.DB
	seed int
}

func NewCounterStore(db *gorm.DB, seed int) *CounterStore {
	return &CounterStore{db: db, seed: seed}
}

func (s *CounterStore) Next() (int, error) {
	var next int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row := counter{ID: 1, LastIssued: s.seed}
		if err := tx.FirstOrCreate(&row, counter{ID: 1}).Error; err != nil {
			return err
		}
		row.LastIssued++
		next = row.LastIssued
		return tx.Save(&row).Error
	})
	if err != nil {
		return 0, storageErr(err)
	}
	return next, nil
}
