// Package renamer renames component schemas whose names contain whitespace
// and rewrites every reference that points at them.
//
// Renaming runs in three phases over the document tree:
//
//  1. Plan: scan components.schemas for names containing whitespace and build
//     an old-to-new rename map with the configured normalizer. A new name that
//     collides with another planned name or an existing untouched schema is
//     recorded as a CollisionError and that entry is skipped.
//  2. Rewrite: move the schema definitions to their new keys and rewrite every
//     "#/components/schemas/..." string in the tree accordingly.
//  3. Validate: collect every schema reference and verify it resolves to a
//     defined schema, reporting any dangling references.
//
// Collisions and dangling references are reported in the Result rather than
// returned as errors, so a partially renameable document still gets as many
// safe renames as possible.
package renamer

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/rafactx/openapi-fixer-v2/document"
)

// CollisionError records a rename that was skipped because its target name
// was already taken.
type CollisionError struct {
	// OldName is the whitespace-bearing schema name that was not renamed
	OldName string
	// NewName is the normalized name that collided
	NewName string
	// TakenBy is the schema name (planned or existing) that owns NewName
	TakenBy string
}

// Error implements the error interface.
func (e *CollisionError) Error() string {
	return fmt.Sprintf("renamer: cannot rename %q to %q: name already used by %q", e.OldName, e.NewName, e.TakenBy)
}

// Result contains the results of a rename operation.
type Result struct {
	// RenameMap maps each renamed schema's old name to its new name
	RenameMap map[string]string
	// RenamedCount is the number of schemas renamed
	RenamedCount int
	// RefsUpdated is the number of reference strings rewritten
	RefsUpdated int
	// Collisions contains the skipped renames
	Collisions []CollisionError
	// DanglingRefs lists references that do not resolve to a defined schema,
	// deduplicated and sorted
	DanglingRefs []string
	// Success is true when no dangling references remain
	Success bool
}

// Renamer renames whitespace-bearing component schemas.
type Renamer struct {
	// Normalizer derives the new name from the old one.
	// Defaults to StripWhitespace.
	Normalizer Normalizer
	// Logger receives step-by-step progress. Defaults to a no-op logger.
	Logger document.Logger
}

// New creates a new Renamer with default settings.
func New() *Renamer {
	return &Renamer{
		Normalizer: StripWhitespace,
		Logger:     document.NopLogger{},
	}
}

// Option is a function that configures a rename operation
type Option func(*renameConfig) error

// renameConfig holds configuration for a rename operation
type renameConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	doc      *document.Document

	normalizer Normalizer
	logger     document.Logger
}

// RenameWithOptions renames schemas using functional options.
//
// Example:
//
//	result, err := renamer.RenameWithOptions(
//	    renamer.WithFilePath("openapi.json"),
//	    renamer.WithNormalizer(renamer.PascalCase),
//	)
func RenameWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("renamer: invalid options: %w", err)
	}

	r := New()
	if cfg.normalizer != nil {
		r.Normalizer = cfg.normalizer
	}
	if cfg.logger != nil {
		r.Logger = cfg.logger
	}

	doc := cfg.doc
	if cfg.filePath != nil {
		doc, err = document.Load(*cfg.filePath)
		if err != nil {
			return nil, fmt.Errorf("renamer: failed to load document: %w", err)
		}
	}

	result := r.Rename(doc)

	if cfg.filePath != nil {
		if err := doc.Save(); err != nil {
			return nil, fmt.Errorf("renamer: failed to save document: %w", err)
		}
	}

	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*renameConfig, error) {
	cfg := &renameConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.doc != nil {
		sources++
	}
	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithFilePath or WithDocument")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithFilePath or WithDocument")
	}

	return cfg, nil
}

// WithFilePath specifies the document file to rename in place.
func WithFilePath(path string) Option {
	return func(cfg *renameConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithDocument specifies an already-loaded document to rename.
// The document is mutated but not saved.
func WithDocument(doc *document.Document) Option {
	return func(cfg *renameConfig) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithNormalizer sets the name normalizer.
func WithNormalizer(n Normalizer) Option {
	return func(cfg *renameConfig) error {
		if n == nil {
			return fmt.Errorf("normalizer cannot be nil")
		}
		cfg.normalizer = n
		return nil
	}
}

// WithLogger sets the progress logger.
func WithLogger(logger document.Logger) Option {
	return func(cfg *renameConfig) error {
		cfg.logger = logger
		return nil
	}
}

// Rename renames whitespace-bearing schemas in the document tree.
// The tree is mutated in place.
func (r *Renamer) Rename(doc *document.Document) *Result {
	result := &Result{
		RenameMap: map[string]string{},
	}

	schemas := componentSchemas(doc.Data)

	// Phase 1: plan the renames.
	r.plan(schemas, result)

	// Phase 2: move definitions and rewrite references.
	r.apply(doc.Data, schemas, result)

	// Phase 3: verify reference integrity.
	r.validate(doc.Data, result)

	result.Success = len(result.DanglingRefs) == 0
	return result
}

// plan builds the rename map for whitespace-bearing schema names, skipping
// entries whose normalized name is already taken.
func (r *Renamer) plan(schemas map[string]any, result *Result) {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	// taken tracks every name that will exist after the rename: schemas we
	// are not touching plus the new names planned so far.
	taken := make(map[string]string, len(schemas))
	for _, name := range names {
		if !hasWhitespace(name) {
			taken[name] = name
		}
	}

	for _, name := range names {
		if !hasWhitespace(name) {
			continue
		}

		newName := r.Normalizer(name)
		if owner, exists := taken[newName]; exists {
			r.Logger.Warn("rename collision, skipping schema", "old", name, "new", newName, "taken_by", owner)
			result.Collisions = append(result.Collisions, CollisionError{
				OldName: name,
				NewName: newName,
				TakenBy: owner,
			})
			continue
		}

		r.Logger.Debug("planning rename", "old", name, "new", newName)
		taken[newName] = name
		result.RenameMap[name] = newName
	}
}

// apply moves the planned schemas to their new keys and rewrites every
// schema reference in the tree.
func (r *Renamer) apply(root map[string]any, schemas map[string]any, result *Result) {
	if len(result.RenameMap) == 0 {
		return
	}

	for oldName, newName := range result.RenameMap {
		schemas[newName] = schemas[oldName]
		delete(schemas, oldName)
		result.RenamedCount++
	}

	refRenames := make(map[string]string, len(result.RenameMap))
	for oldName, newName := range result.RenameMap {
		refRenames[document.SchemaRefPrefix+oldName] = document.SchemaRefPrefix + newName
	}

	result.RefsUpdated = document.RewriteStrings(root, func(s string) (string, bool) {
		if replacement, ok := refRenames[s]; ok {
			return replacement, true
		}
		return "", false
	})

	r.Logger.Info("schemas renamed", "renamed", result.RenamedCount, "refs_updated", result.RefsUpdated)
}

// validate reports schema references that no longer resolve.
func (r *Renamer) validate(root map[string]any, result *Result) {
	schemas := componentSchemas(root)

	seen := map[string]bool{}
	for _, ref := range document.CollectSchemaRefs(root) {
		name, _ := document.SchemaRefName(ref)
		if _, defined := schemas[name]; defined || seen[ref] {
			continue
		}
		seen[ref] = true
		result.DanglingRefs = append(result.DanglingRefs, ref)
	}
	sort.Strings(result.DanglingRefs)

	for _, ref := range result.DanglingRefs {
		r.Logger.Error("dangling schema reference", "ref", ref)
	}
}

// componentSchemas returns the components.schemas mapping, or an empty map
// when the document has none.
func componentSchemas(root map[string]any) map[string]any {
	components, ok := document.GetMap(root, "components")
	if !ok {
		return map[string]any{}
	}
	schemas, ok := document.GetMap(components, "schemas")
	if !ok {
		return map[string]any{}
	}
	return schemas
}

// hasWhitespace reports whether the name contains any Unicode whitespace.
func hasWhitespace(name string) bool {
	return strings.ContainsFunc(name, unicode.IsSpace)
}
