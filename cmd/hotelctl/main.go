package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"hotel-ledger/commands"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hotelctl",
		Short: "Hotel room and booking ledger",
	}

	rootCmd.AddCommand(
		commands.MenuCmd(),
		commands.RoomsCmd(),
		commands.BookCmd(),
		commands.CancelCmd(),
		commands.ConfirmCmd(),
		commands.BookingsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
