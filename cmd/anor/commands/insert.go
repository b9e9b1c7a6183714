package commands

import (
	"fmt"

	"github.com/anor-db/anor/internal/cli/prompt"
	"github.com/anor-db/anor/pkg/anor"
	"github.com/spf13/cobra"
)

var insertValue string

var insertCmd = &cobra.Command{
	Use:   "insert <key>",
	Short: "Insert or overwrite the string value stored under a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runInsert,
}

func init() {
	insertCmd.Flags().StringVar(&insertValue, "value", "", "Value to store (prompted interactively if omitted)")
}

func runInsert(cmd *cobra.Command, args []string) error {
	key := args[0]

	value := insertValue
	if value == "" {
		v, err := prompt.InputRequired(fmt.Sprintf("Value for %q", key))
		if err != nil {
			if prompt.IsAborted(err) {
				return fmt.Errorf("insert aborted")
			}
			return err
		}
		value = v
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	item, err := anor.New(key, value, anor.CodecBincode)
	if err != nil {
		return fmt.Errorf("failed to encode value: %w", err)
	}

	store.Insert(item)
	if err := store.Flush(); err != nil {
		return fmt.Errorf("failed to persist: %w", err)
	}

	fmt.Printf("Inserted %q (id: %s)\n", key, item.ID)
	return nil
}
