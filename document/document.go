package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// OwnerReadWrite is the file permission mode for saved documents
// containing potentially sensitive API data (owner read/write only).
const OwnerReadWrite os.FileMode = 0o600

// SourceFormat identifies the serialization format of a document source.
type SourceFormat int

const (
	// SourceFormatUnknown indicates the format could not be determined
	SourceFormatUnknown SourceFormat = iota
	// SourceFormatJSON indicates a JSON source
	SourceFormatJSON
	// SourceFormatYAML indicates a YAML source
	SourceFormatYAML
)

// String returns the string representation of a SourceFormat.
func (f SourceFormat) String() string {
	switch f {
	case SourceFormatJSON:
		return "JSON"
	case SourceFormatYAML:
		return "YAML"
	default:
		return "unknown"
	}
}

// Document is the root mutable tree of an OpenAPI document.
//
// Data holds the parsed tree as nested map[string]any, []any and scalar
// values. The tree is mutated in place by the transformation packages and
// written back with Save.
type Document struct {
	// Data is the root mapping of the parsed document.
	Data map[string]any
	// SourcePath is the path the document was loaded from.
	SourcePath string
	// SourceFormat is the detected format of the source file (JSON or YAML).
	SourceFormat SourceFormat
	// SourceSize is the size of the source file in bytes.
	SourceSize int64
}

// ParseError represents an error while loading or parsing a document.
type ParseError struct {
	// Path is the file path or source identifier.
	Path string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("document: failed to parse %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("document: failed to parse: %v", e.Cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Load reads and parses an OpenAPI document from a file path.
//
// The format is detected from the file extension first, then from the
// content (JSON documents start with '{' or '['). Both JSON and YAML
// sources are supported.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	format := detectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}

	root, err := Parse(data, format)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	return &Document{
		Data:         root,
		SourcePath:   path,
		SourceFormat: format,
		SourceSize:   int64(len(data)),
	}, nil
}

// Parse parses document bytes in the given format into the root mapping.
func Parse(data []byte, format SourceFormat) (map[string]any, error) {
	var root map[string]any
	if format == SourceFormatJSON {
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, err
		}
		return root, nil
	}
	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return root, nil
}

// Marshal serializes the document tree in its source format.
//
// JSON output is indented with two spaces and has sorted object keys, so
// repeated transform/save cycles over an unchanged tree produce identical
// bytes.
func (d *Document) Marshal() ([]byte, error) {
	if d.SourceFormat == SourceFormatJSON {
		return json.MarshalIndent(d.Data, "", "  ")
	}
	return yaml.Marshal(d.Data)
}

// Save writes the document back to its original path, overwriting it.
func (d *Document) Save() error {
	return d.SaveTo(d.SourcePath)
}

// SaveTo writes the document to the given path in its source format.
func (d *Document) SaveTo(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return fmt.Errorf("document: failed to marshal %s: %w", d.SourcePath, err)
	}
	if err := os.WriteFile(path, data, OwnerReadWrite); err != nil {
		return fmt.Errorf("document: failed to write %s: %w", path, err)
	}
	return nil
}

// detectFormatFromPath detects the source format from a file path
func detectFormatFromPath(path string) SourceFormat {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content bytes
// JSON typically starts with '{' or '[', while YAML does not
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")

	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}

	// Otherwise assume YAML (could be more sophisticated, but this covers most cases)
	return SourceFormatYAML
}
