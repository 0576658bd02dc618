package hydrator

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

// defaultModernPathPrefixes selects the modern error-response set when the
// config does not name its own prefixes.
var defaultModernPathPrefixes = []string{"/v3", "/environments"}

// Config is the hydration configuration. Every section is optional; a
// missing or empty section makes the corresponding step a no-op.
type Config struct {
	// Metadata replaces the document's info and servers
	Metadata Metadata `yaml:"metadata"`
	// SecuritySchemes are copied into components.securitySchemes by name
	SecuritySchemes map[string]any `yaml:"security_schemes"`
	// Security is the global security requirement list. When schemes are
	// configured but this is empty, [{BasicAuth: []}] is assumed.
	Security []any `yaml:"security"`
	// CommonSchemas are copied into components.schemas by name
	CommonSchemas map[string]any `yaml:"common_schemas"`
	// Translations maps placeholder tokens to their replacements
	Translations map[string]Translation `yaml:"translations"`
	// Summaries maps operationId to the summary text to set
	Summaries map[string]string `yaml:"summaries"`
	// DefaultErrorResponses holds the per-family error response sets
	DefaultErrorResponses ErrorResponses `yaml:"default_error_responses"`
	// ModernPathPrefixes selects which path templates get the modern set.
	// Defaults to /v3 and /environments.
	ModernPathPrefixes []string `yaml:"modern_path_prefixes"`
	// GlobalParameters are copied into components.parameters and referenced
	// from every operation
	GlobalParameters map[string]any `yaml:"global_parameters"`
	// UIOrdering controls documentation-UI tag and operation ordering
	UIOrdering UIOrdering `yaml:"ui_ordering"`
}

// Metadata is the config's metadata section.
type Metadata struct {
	// Info is deep-merged over the document's info object
	Info map[string]any `yaml:"info"`
	// Servers replaces the document's servers array when non-empty
	Servers []any `yaml:"servers"`
}

// ErrorResponses holds the default error responses per path family, keyed by
// status code.
type ErrorResponses struct {
	// Modern applies to templates starting with a modern path prefix
	Modern map[string]any `yaml:"modern"`
	// Legacy applies to every other template
	Legacy map[string]any `yaml:"legacy"`
}

// UIOrdering is the config's ui_ordering section.
type UIOrdering struct {
	// TagOrder lists tag names in their desired display order
	TagOrder []string `yaml:"tag_order"`
	// OperationOrder lists operationIds in their desired display order
	OperationOrder []string `yaml:"operation_order"`
}

// Translation is one dictionary entry. In YAML it is either a plain string,
// used everywhere the token appears, or a mapping with name and description,
// where description replaces tokens sitting under a description key:
//
//	translations:
//	  "%%ORDERS%%": Pedidos
//	  "%%BANNERS%%":
//	    name: Banners
//	    description: Banners promocionais exibidos na vitrine.
type Translation struct {
	// Name replaces the token in keys and general strings
	Name string
	// Description replaces the token in description values; empty falls
	// back to Name
	Description string
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (t *Translation) UnmarshalYAML(node *yaml.Node) error {
	var plain string
	if err := node.Decode(&plain); err == nil {
		t.Name = plain
		t.Description = ""
		return nil
	}

	var full struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	if err := node.Decode(&full); err != nil {
		return fmt.Errorf("translation entry must be a string or a name/description mapping: %w", err)
	}
	t.Name = full.Name
	t.Description = full.Description
	return nil
}

// replacementFor returns the replacement text for a token appearing under
// the given key.
func (t Translation) replacementFor(key string) string {
	if key == "description" && t.Description != "" {
		return t.Description
	}
	return t.Name
}

// ParseConfig parses hydration config bytes. YAML and JSON are both
// accepted. Unknown sections are ignored.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("hydrator: failed to parse config: %w", err)
	}
	if len(cfg.ModernPathPrefixes) == 0 {
		cfg.ModernPathPrefixes = defaultModernPathPrefixes
	}
	return &cfg, nil
}

// ParseConfigFile reads and parses a hydration config file.
func ParseConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hydrator: failed to read config file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// MergeTranslationsFile loads a standalone dictionary file and merges its
// entries over the config's translations section.
func (c *Config) MergeTranslationsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("hydrator: failed to read translations file %s: %w", path, err)
	}

	var entries map[string]Translation
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("hydrator: failed to parse translations file %s: %w", path, err)
	}

	if c.Translations == nil {
		c.Translations = map[string]Translation{}
	}
	for token, entry := range entries {
		c.Translations[token] = entry
	}
	return nil
}

// MergeSummariesFile loads a standalone summaries file and merges its
// entries over the config's summaries section.
func (c *Config) MergeSummariesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("hydrator: failed to read summaries file %s: %w", path, err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("hydrator: failed to parse summaries file %s: %w", path, err)
	}

	if c.Summaries == nil {
		c.Summaries = map[string]string{}
	}
	for id, text := range entries {
		c.Summaries[id] = text
	}
	return nil
}
