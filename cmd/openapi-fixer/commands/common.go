// Package commands provides CLI command handlers for openapi-fixer.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rafactx/openapi-fixer-v2/document"
	"github.com/rafactx/openapi-fixer-v2/internal/cliutil"
)

// newLogger returns the progress logger for a command run. Verbose mode
// installs a text slog handler at debug level on stderr; otherwise progress
// is discarded and only the summary report is printed.
func newLogger(verbose bool) document.Logger {
	if !verbose {
		return document.NopLogger{}
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return document.NewSlogAdapter(slog.New(handler))
}

// loadDocument loads the OpenAPI document named by the single positional
// argument.
func loadDocument(path string) (*document.Document, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading document: %w", err)
	}
	return doc, nil
}

// saveDocument writes the document back, in place unless an output path was
// given.
func saveDocument(doc *document.Document, output string) error {
	target := doc.SourcePath
	if output != "" {
		target = output
	}
	if err := doc.SaveTo(target); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	cliutil.Writef(os.Stdout, "Output written to: %s\n", target)
	return nil
}
