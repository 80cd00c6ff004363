package engine

import (
	"github.com/gcbaptista/huntdex/model"
	"github.com/gcbaptista/huntdex/query"
	"github.com/gcbaptista/huntdex/schema"
)

// Command is one row of the engine's command surface, issued by the
// external control plane (huntctl). The core consumes values, never
// strings: cmd/huntctl builds one of these from flags/args and hands it
// to Engine.Execute.
type Command interface{ isCommand() }

// Search executes a query and returns a page of ranked hits.
type Search struct {
	Query  query.Query
	Offset int
	Limit  int
}

func (Search) isCommand() {}

// Completion executes a query and returns its top word completions.
type Completion struct {
	Query query.Query
	Limit int
}

func (Completion) isCommand() {}

// Insert adds a new document. The URI must not already exist, and every context
// the document mentions must be present in the schema.
type Insert struct {
	Document model.Document
}

func (Insert) isCommand() {}

// Update replaces an existing document. The URI must already exist.
type Update struct {
	Document model.Document
}

func (Update) isCommand() {}

// BatchDelete removes every document named by URI. Missing URIs are silently
// ignored.
type BatchDelete struct {
	URIs []string
}

func (BatchDelete) isCommand() {}

// InsertContext adds a new named context to the schema. 409 if it already
// exists, 410 if Schema.Type names an unregistered type.
type InsertContext struct {
	Name   string
	Schema schema.ContextSchema
}

func (InsertContext) isCommand() {}

// DeleteContext removes a named context. Idempotent.
type DeleteContext struct {
	Name string
}

func (DeleteContext) isCommand() {}

// StoreIx persists the whole live indexer to path.
type StoreIx struct {
	Path string
}

func (StoreIx) isCommand() {}

// LoadIx replaces the live indexer with the one persisted at path.
type LoadIx struct {
	Path string
}

func (LoadIx) isCommand() {}

// Sequence executes its children in order, aborting on the first error without
// partially applying the failing child.
type Sequence struct {
	Commands []Command
}

func (Sequence) isCommand() {}

// NOOP is a liveness probe: it always succeeds and mutates nothing.
type NOOP struct{}

func (NOOP) isCommand() {}

// Status reports liveness/metrics.
type Status struct{}

func (Status) isCommand() {}
