package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/huntdex/internal/engine"
)

// storeCmd and loadCmd expose StoreIx/LoadIx against an explicit path,
// distinct from the --ix lifecycle path every command already loads from
// and stores to: these are for snapshotting the live indexer elsewhere, or
// loading one built by another process.
var storeCmd = &cobra.Command{
	Use:   "store <path>",
	Short: "Persist the live indexer to path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := eng.Execute(cmd.Context(), engine.StoreIx{Path: args[0]})
		return err
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <path>",
	Short: "Replace the live indexer with the one persisted at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := eng.Execute(cmd.Context(), engine.LoadIx{Path: args[0]}); err != nil {
			return err
		}
		markDirty()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storeCmd, loadCmd)
}
