// Package cmd builds the huntctl command tree. root.go defines the root
// command, the persistent --ix flag, and the load/store-around-a-command
// lifecycle: a fresh process has no state, so huntctl loads the indexer
// persisted at --ix before running a command and stores it back after any
// command that mutated the live indexer.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	apperrors "github.com/gcbaptista/huntdex/internal/errors"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/huntdex/internal/engine"
)

var (
	ixPath string
	eng    *engine.Engine
	dirty  bool
)

var rootCmd = &cobra.Command{
	Use:   "huntctl",
	Short: "Control plane for a single-indexer search engine",
	Long:  `huntctl issues commands against one embedded indexer: insert and update documents, declare contexts, run queries, and persist or reload the live index.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		eng = engine.New()
		if _, statErr := os.Stat(ixPath); statErr == nil {
			if err := eng.LoadIx(ixPath); err != nil {
				return fmt.Errorf("load %q: %w", ixPath, err)
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		defer eng.Close()
		if !dirty {
			return nil
		}
		if err := eng.StoreIx(ixPath); err != nil {
			return fmt.Errorf("store %q: %w", ixPath, err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ixPath, "ix", "huntdex.gob", "path to the persisted indexer")
}

// Execute runs the root command. A command failure is printed to stderr,
// prefixed with its taxonomy code where known, and ends the process with
// exit status 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			fmt.Fprintf(os.Stderr, "error (%d): %v\n", appErr.Code(), appErr)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// markDirty flags that the live indexer changed and must be stored back on
// exit. Read-only commands (search, completion, status) never call this.
func markDirty() { dirty = true }

// printJSON writes v to stdout as indented JSON, the uniform output shape
// for every huntctl subcommand.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
