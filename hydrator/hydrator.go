// Package hydrator enriches a bare OpenAPI document with the metadata,
// security configuration, shared schemas, translations, summaries, default
// error responses, global parameters and tag ordering described by a YAML
// configuration.
//
// The eight steps run in a fixed order because later steps rely on
// structures earlier ones put in place (translations run before summaries so
// summaries key on translated operationIds, global parameters are declared
// before they are referenced). Every step is idempotent: hydrating an
// already-hydrated document reports zero additions and leaves the tree
// unchanged.
package hydrator

import (
	"sort"

	"dario.cat/mergo"

	"github.com/rafactx/openapi-fixer-v2/document"
)

// Result contains per-step counters for one hydration run.
type Result struct {
	// SchemesAdded is the number of security schemes copied in
	SchemesAdded int
	// SchemasAdded is the number of common schemas copied in
	SchemasAdded int
	// Substitutions is the number of translated keys and string values
	Substitutions int
	// SummariesSet is the number of operation summaries set
	SummariesSet int
	// ResponsesAdded is the number of default error responses added
	ResponsesAdded int
	// ParametersInjected is the number of global parameter references
	// appended to operations
	ParametersInjected int
	// TagsOrdered is the number of tags in the emitted tags array
	TagsOrdered int
}

// Hydrator applies a hydration config to documents.
type Hydrator struct {
	cfg *Config

	// Logger receives step-by-step progress. Defaults to a no-op logger.
	Logger document.Logger
}

// New creates a Hydrator for the given config. A nil config hydrates
// nothing.
func New(cfg *Config) *Hydrator {
	if cfg == nil {
		cfg = &Config{ModernPathPrefixes: defaultModernPathPrefixes}
	}
	return &Hydrator{cfg: cfg, Logger: document.NopLogger{}}
}

// Hydrate runs every hydration step over the document in order. The tree is
// mutated in place; steps whose config section is empty change nothing.
func (h *Hydrator) Hydrate(doc *document.Document) (*Result, error) {
	result := &Result{}

	if err := h.applyMetadata(doc.Data); err != nil {
		return nil, err
	}
	h.applySecurity(doc.Data, result)
	h.applyCommonSchemas(doc.Data, result)
	h.applyTranslations(doc.Data, result)
	h.applySummaries(doc.Data, result)
	h.applyErrorResponses(doc.Data, result)
	h.applyGlobalParameters(doc.Data, result)
	h.applyTagOrdering(doc.Data, result)

	return result, nil
}

// applyMetadata deep-merges the configured info over the document's and
// replaces the servers array.
func (h *Hydrator) applyMetadata(root map[string]any) error {
	if len(h.cfg.Metadata.Info) > 0 {
		info, ok := document.EnsureMap(root, "info")
		if !ok {
			info = map[string]any{}
			root["info"] = info
		}
		if err := mergo.Merge(&info, h.cfg.Metadata.Info, mergo.WithOverride); err != nil {
			return err
		}
		root["info"] = info
		h.Logger.Debug("info metadata merged")
	}

	if len(h.cfg.Metadata.Servers) > 0 {
		root["servers"] = h.cfg.Metadata.Servers
		h.Logger.Debug("servers replaced", "count", len(h.cfg.Metadata.Servers))
	}
	return nil
}

// applySecurity copies the configured security schemes into
// components.securitySchemes and sets the global security requirement.
func (h *Hydrator) applySecurity(root map[string]any, result *Result) {
	if len(h.cfg.SecuritySchemes) == 0 {
		return
	}

	components := ensureChildMap(root, "components")
	schemes := ensureChildMap(components, "securitySchemes")

	for _, name := range sortedKeys(h.cfg.SecuritySchemes) {
		if _, exists := schemes[name]; !exists {
			result.SchemesAdded++
		}
		schemes[name] = h.cfg.SecuritySchemes[name]
		h.Logger.Debug("security scheme set", "name", name)
	}

	if len(h.cfg.Security) > 0 {
		root["security"] = h.cfg.Security
	} else {
		root["security"] = []any{map[string]any{"BasicAuth": []any{}}}
	}
}

// applyCommonSchemas copies the configured schemas into components.schemas.
func (h *Hydrator) applyCommonSchemas(root map[string]any, result *Result) {
	if len(h.cfg.CommonSchemas) == 0 {
		return
	}

	components := ensureChildMap(root, "components")
	schemas := ensureChildMap(components, "schemas")

	for _, name := range sortedKeys(h.cfg.CommonSchemas) {
		if _, exists := schemas[name]; !exists {
			result.SchemasAdded++
		}
		schemas[name] = h.cfg.CommonSchemas[name]
		h.Logger.Debug("common schema set", "name", name)
	}
}

// applySummaries sets operation summaries from the configured operationId
// index.
func (h *Hydrator) applySummaries(root map[string]any, result *Result) {
	if len(h.cfg.Summaries) == 0 {
		return
	}

	document.EachOperation(root, func(template, method string, op map[string]any) {
		id, ok := op["operationId"].(string)
		if !ok {
			return
		}
		text, configured := h.cfg.Summaries[id]
		if !configured || op["summary"] == text {
			return
		}
		op["summary"] = text
		result.SummariesSet++
		h.Logger.Debug("summary set", "operation", id)
	})
}

// ensureChildMap returns the mapping under key, replacing a non-mapping
// value if one is in the way.
func ensureChildMap(m map[string]any, key string) map[string]any {
	child, ok := document.EnsureMap(m, key)
	if !ok {
		child = map[string]any{}
		m[key] = child
	}
	return child
}

// sortedKeys returns the map's keys in sorted order for deterministic
// application.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
