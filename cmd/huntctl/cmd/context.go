package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/huntdex/internal/engine"
	"github.com/gcbaptista/huntdex/schema"
)

var (
	contextType    string
	contextWeight  float64
	contextDefault bool
)

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Manage the schema's named contexts",
}

var contextAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a named context bound to a registered type (409 if it exists, 410 if the type is unknown)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cs := schema.ContextSchema{
			Type:    schema.ContextType{Name: contextType},
			Weight:  contextWeight,
			Default: contextDefault,
		}
		if _, err := eng.Execute(cmd.Context(), engine.InsertContext{Name: args[0], Schema: cs}); err != nil {
			return err
		}
		markDirty()
		return nil
	},
}

var contextRemoveCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a named context (idempotent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := eng.Execute(cmd.Context(), engine.DeleteContext{Name: args[0]}); err != nil {
			return err
		}
		markDirty()
		return nil
	},
}

func init() {
	contextAddCmd.Flags().StringVar(&contextType, "type", schema.TypeText, "context type: text, keyword, or date")
	contextAddCmd.Flags().Float64Var(&contextWeight, "weight", 0, "BM25 field weight (0 picks the default)")
	contextAddCmd.Flags().BoolVar(&contextDefault, "default", false, "include this context in a query's active set by default")

	contextCmd.AddCommand(contextAddCmd, contextRemoveCmd)
	rootCmd.AddCommand(contextCmd)
}
