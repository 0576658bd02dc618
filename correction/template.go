package correction

import (
	"fmt"
	"os"

	"github.com/rafactx/openapi-fixer-v2/document"
)

// DefaultRules returns the built-in correction list used when no rule file is
// given. It covers the known defects of the upstream API export: a DELETE
// operation with a request body, a query parameter the backend never reads,
// and two operations missing their environmentId path parameter.
func DefaultRules() []Rule {
	environmentIDParam := func() map[string]any {
		return map[string]any{
			"name":        "environmentId",
			"in":          "path",
			"required":    true,
			"description": "ID do Environment (ambiente).",
			"schema":      map[string]any{"type": "string"},
		}
	}

	return []Rule{
		{
			ID:     "remove-scheduledvisits-delete-body",
			Action: ActionDeleteKey,
			Path:   "paths./environments/{environmentId}/employees/{employeeId}/scheduledvisits/delete",
			Details: map[string]any{
				"key_to_delete": "requestBody",
			},
		},
		{
			ID:     "remove-brands-name-parameter",
			Action: ActionRemoveParameter,
			Path:   "paths./environments/{environmentId}/brands/get",
			Details: map[string]any{
				"parameter_name": "name",
			},
		},
		{
			ID:     "add-formfields-environment-id",
			Action: ActionAddParameterIfMissing,
			Path:   "paths./v1/{environmentId}/form/formFields/{formId}/get",
			Details: map[string]any{
				"parameter": environmentIDParam(),
			},
		},
		{
			ID:     "add-shoppingcenter-environment-id",
			Action: ActionAddParameterIfMissing,
			Path:   "paths./v1/{environmentId}/shoppingcenter/{id}/get",
			Details: map[string]any{
				"parameter": environmentIDParam(),
			},
		},
	}
}

// configTemplate is the annotated rule file written by ExportConfig.
// It mirrors DefaultRules so users can start from the built-in list.
const configTemplate = `# Correction rules, applied in order.
#
# Each rule names a target location and an action:
#   delete-key                details: key_to_delete
#   remove-parameter          details: parameter_name
#   add-parameter-if-missing  details: parameter (mapping with name and in)
#   set-key-if-missing        details: key, value
#
# Paths use dotted segments; operations use the slash form where the last
# segment is the HTTP method:
#   paths./environments/{environmentId}/brands/get
#   info.title

- id: remove-scheduledvisits-delete-body
  action: delete-key
  path: paths./environments/{environmentId}/employees/{employeeId}/scheduledvisits/delete
  details:
    key_to_delete: requestBody

- id: remove-brands-name-parameter
  action: remove-parameter
  path: paths./environments/{environmentId}/brands/get
  details:
    parameter_name: name

- id: add-formfields-environment-id
  action: add-parameter-if-missing
  path: paths./v1/{environmentId}/form/formFields/{formId}/get
  details:
    parameter:
      name: environmentId
      in: path
      required: true
      description: ID do Environment (ambiente).
      schema:
        type: string

- id: add-shoppingcenter-environment-id
  action: add-parameter-if-missing
  path: paths./v1/{environmentId}/shoppingcenter/{id}/get
  details:
    parameter:
      name: environmentId
      in: path
      required: true
      description: ID do Environment (ambiente).
      schema:
        type: string
`

// ExportConfig writes the annotated default rule file to path.
func ExportConfig(path string) error {
	if err := os.WriteFile(path, []byte(configTemplate), document.OwnerReadWrite); err != nil {
		return fmt.Errorf("correction: failed to write config template %s: %w", path, err)
	}
	return nil
}
