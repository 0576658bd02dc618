// Package correction applies an ordered list of declarative correction rules
// to an OpenAPI document tree and runs semantic checks afterwards.
//
// A rule names a target location in the document and an action to take there.
// Rules apply strictly in file order, and a rule that cannot apply (its path
// does not resolve, its details are malformed) is reported as failed without
// stopping the run. Actions are written so that re-running a rule file over an
// already-corrected document reports every rule as satisfied and changes
// nothing.
//
// # Rule files
//
// A rule file is a YAML (or JSON) sequence of records:
//
//	- id: remove-scheduledvisits-delete-body
//	  action: delete-key
//	  path: paths./environments/{environmentId}/employees/{employeeId}/scheduledvisits/delete
//	  details:
//	    key_to_delete: requestBody
//
// See ExportConfig for a complete annotated template.
package correction

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"go.yaml.in/yaml/v4"
)

// Action identifies what a correction rule does at its target location.
type Action string

const (
	// ActionDeleteKey removes a key from the target mapping
	ActionDeleteKey Action = "delete-key"
	// ActionAddParameterIfMissing appends a parameter to the target
	// operation unless one with the same name and location exists
	ActionAddParameterIfMissing Action = "add-parameter-if-missing"
	// ActionRemoveParameter removes parameters with a given name from the
	// target operation
	ActionRemoveParameter Action = "remove-parameter"
	// ActionSetKeyIfMissing sets a key on the target mapping unless present
	ActionSetKeyIfMissing Action = "set-key-if-missing"
)

// knownActions is the closed set of actions the engine interprets.
var knownActions = map[Action]bool{
	ActionDeleteKey:             true,
	ActionAddParameterIfMissing: true,
	ActionRemoveParameter:       true,
	ActionSetKeyIfMissing:       true,
}

// Rule is a single declarative correction.
type Rule struct {
	// ID identifies the rule in reports
	ID string `yaml:"id" json:"id"`
	// Action selects the correction behavior
	Action Action `yaml:"action" json:"action"`
	// Path locates the target node (docpath expression)
	Path string `yaml:"path" json:"path"`
	// Details carries the action-specific parameters
	Details map[string]any `yaml:"details" json:"details"`
}

// RuleError describes a rule that is structurally invalid before any
// application is attempted.
type RuleError struct {
	// RuleID identifies the offending rule ("" when the id itself is missing)
	RuleID string
	// Index is the rule's position in the file, starting at 0
	Index int
	// Message describes the problem
	Message string
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.RuleID == "" {
		return fmt.Sprintf("correction: rule %d: %s", e.Index, e.Message)
	}
	return fmt.Sprintf("correction: rule %d (%s): %s", e.Index, e.RuleID, e.Message)
}

// ParseRules parses rule file bytes into the ordered rule list.
// YAML and JSON are both accepted.
func ParseRules(data []byte) ([]Rule, error) {
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("correction: failed to parse rules: %w", err)
	}

	for i, rule := range rules {
		if rule.ID == "" {
			return nil, &RuleError{Index: i, Message: "missing id"}
		}
		if !knownActions[rule.Action] {
			return nil, &RuleError{RuleID: rule.ID, Index: i, Message: fmt.Sprintf("unknown action %q", rule.Action)}
		}
		if rule.Path == "" {
			return nil, &RuleError{RuleID: rule.ID, Index: i, Message: "missing path"}
		}
	}
	return rules, nil
}

// ParseRulesFile reads and parses a rule file.
func ParseRulesFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("correction: failed to read rules file %s: %w", path, err)
	}
	return ParseRules(data)
}

// stringDetail extracts a required string detail from a rule.
func stringDetail(details map[string]any, key string) (string, error) {
	raw, ok := details[key]
	if !ok {
		return "", fmt.Errorf("details missing %q", key)
	}
	s, err := cast.ToStringE(raw)
	if err != nil || s == "" {
		return "", fmt.Errorf("details %q must be a non-empty string", key)
	}
	return s, nil
}

// mapDetail extracts a required mapping detail from a rule.
func mapDetail(details map[string]any, key string) (map[string]any, error) {
	raw, ok := details[key]
	if !ok {
		return nil, fmt.Errorf("details missing %q", key)
	}
	m, err := cast.ToStringMapE(raw)
	if err != nil {
		return nil, fmt.Errorf("details %q must be a mapping", key)
	}
	return m, nil
}
