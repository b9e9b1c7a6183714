package commands

import (
	"fmt"
	"os"

	"github.com/anor-db/anor/internal/cli/output"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the decoded value stored under a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	item, ok := store.Get(key)
	if !ok {
		return fmt.Errorf("no item found for key %q", key)
	}

	pairs := [][2]string{
		{"key", item.Key},
		{"id", item.ID},
		{"version", formatVersion(item.Version)},
		{"value", decodeForDisplay(store, key, item)},
	}
	if item.Description != nil {
		pairs = append(pairs, [2]string{"description", *item.Description})
	}

	return printPairs(os.Stdout, pairs)
}

func printPairs(w *os.File, pairs [][2]string) error {
	table := output.NewTableData("FIELD", "VALUE")
	for _, p := range pairs {
		table.AddRow(p[0], p[1])
	}
	return output.PrintTable(w, table)
}
