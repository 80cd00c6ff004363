package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gcbaptista/huntdex/model"
)

// readDocument parses one JSON document from path, or from stdin when path is
// "-". The document is an arbitrary JSON object carrying a "uri" field; huntctl
// leaves validation of that shape to the engine.
func readDocument(path string) (model.Document, error) {
	raw, err := readAll(path)
	if err != nil {
		return nil, err
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse document %q: %w", path, err)
	}
	return doc, nil
}

// readDocuments parses a JSON array of documents from path, or stdin when
// path is "-", the input shape for bulk-insert.
func readDocuments(path string) ([]model.Document, error) {
	raw, err := readAll(path)
	if err != nil {
		return nil, err
	}
	var docs []model.Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("parse document array %q: %w", path, err)
	}
	return docs, nil
}

func readAll(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
