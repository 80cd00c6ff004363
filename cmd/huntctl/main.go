// Command huntctl is the control-plane CLI over the single live indexer
// (internal/engine): a single-shot process that loads the persisted
// indexer at start (if one exists at --ix) and stores it back after any
// command that mutated state. See cmd/huntctl/cmd for the command tree.
package main

import "github.com/gcbaptista/huntdex/cmd/huntctl/cmd"

func main() {
	cmd.Execute()
}
