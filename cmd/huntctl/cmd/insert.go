package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gcbaptista/huntdex/internal/engine"
)

var insertCmd = &cobra.Command{
	Use:   "insert <document.json|->",
	Short: "Insert a new document (409 if its uri already exists)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		if _, err := eng.Execute(cmd.Context(), engine.Insert{Document: doc}); err != nil {
			return err
		}
		markDirty()
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <document.json|->",
	Short: "Replace an existing document (409 if its uri does not exist)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		if _, err := eng.Execute(cmd.Context(), engine.Update{Document: doc}); err != nil {
			return err
		}
		markDirty()
		return nil
	},
}

var bulkInsertCmd = &cobra.Command{
	Use:   "bulk-insert <documents.json|->",
	Short: "Insert many documents from a JSON array in one write transition",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docs, err := readDocuments(args[0])
		if err != nil {
			return err
		}
		if err := eng.BulkInsert(docs); err != nil {
			return err
		}
		markDirty()
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <uri...>",
	Short: "Delete documents by uri, ignoring any that are missing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := eng.Execute(cmd.Context(), engine.BatchDelete{URIs: args}); err != nil {
			return err
		}
		markDirty()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insertCmd, updateCmd, bulkInsertCmd, deleteCmd)
}
