// Package config loads process-wide configuration once at startup. Values
// come from the environment (optionally seeded by a .env file loaded in main)
// and are passed explicitly to the ledger rather than read as globals.
package config

import (
	"fmt"
	"os"
	"strconv"

	"hotel-ledger/ledger"
)

// Store backend names accepted in HOTEL_STORE.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Config holds everything the tool needs to run: where state lives, which
// backend owns it, the admin credentials, and the nightly rate table.
type Config struct {
	DataDir   string
	Store     string
	AdminUser string
	AdminPass string
	Rates     ledger.RateTable
}

// Load reads configuration from the environment, falling back to defaults
// that match the original single-machine setup: flat files under ./data and
// the stock rate table.
func Load() (Config, error) {
	cfg := Config{
		DataDir:   getenv("HOTEL_DATA_DIR", "data"),
		Store:     getenv("HOTEL_STORE", StoreFile),
		AdminUser: getenv("HOTEL_ADMIN_USER", "admin"),
		AdminPass: getenv("HOTEL_ADMIN_PASS", "123"),
		Rates:     ledger.DefaultRates(),
	}

	if cfg.Store != StoreFile && cfg.Store != StoreSQLite {
		return Config{}, fmt.Errorf("invalid HOTEL_STORE %q, want %q or %q", cfg.Store, StoreFile, StoreSQLite)
	}

	overrides := map[ledger.RoomType]string{
		ledger.Single: "HOTEL_RATE_SINGLE",
		ledger.Double: "HOTEL_RATE_DOUBLE",
		ledger.Suite:  "HOTEL_RATE_SUITE",
	}
	for roomType, key := range overrides {
		raw := os.Getenv(key)
		if raw == "" {
			continue
		}
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil || rate <= 0 {
			return Config{}, fmt.Errorf("invalid %s %q, want a positive number", key, raw)
		}
		cfg.Rates[roomType] = rate
	}
	return cfg, nil
}

// Authenticate checks the static admin credentials.
func (c Config) Authenticate(user, pass string) bool {
	return user == c.AdminUser && pass == c.AdminPass
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
