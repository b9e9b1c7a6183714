package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Persist the current in-memory state to disk",
	RunE:  runFlush,
}

func runFlush(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Flush(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}

	fmt.Println("Flushed.")
	return nil
}
