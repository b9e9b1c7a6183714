package commands

import (
	"os"
	"sort"

	"github.com/anor-db/anor/internal/cli/output"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every key stored in the data directory",
	RunE:  runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer store.Close()

	keys := store.Keys()
	sort.Strings(keys)

	table := output.NewTableData("KEY", "VERSION", "ID")
	for _, key := range keys {
		item, ok := store.Get(key)
		if !ok {
			continue
		}
		table.AddRow(key, formatVersion(item.Version), item.ID)
	}

	return output.PrintTable(os.Stdout, table)
}
