package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/huntdex/internal/engine"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report document count, known contexts, and job metrics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := eng.Execute(cmd.Context(), engine.Status{})
		if err != nil {
			return err
		}
		return printJSON(res)
	},
}

var noopCmd = &cobra.Command{
	Use:    "noop",
	Short:  "Liveness probe: always succeeds and mutates nothing",
	Args:   cobra.NoArgs,
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := eng.Execute(cmd.Context(), engine.NOOP{})
		return err
	},
}

func init() {
	rootCmd.AddCommand(statusCmd, noopCmd)
}
