package commands

import (
	"fmt"

	"github.com/anor-db/anor/pkg/anor"
	"github.com/anor-db/anor/pkg/config"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the configured data directory and report its status",
	RunE:  runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	store, err := anor.OpenWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	fmt.Printf("Opened %s\n", cfg.Storage.DataPath)
	fmt.Printf("Keys: %d\n", len(store.Keys()))
	return nil
}

// openStorage is the shared helper the remaining commands use to obtain a
// ready Storage from the resolved config.
func openStorage() (*anor.Storage, error) {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return nil, err
	}
	store, err := anor.OpenWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return store, nil
}
