package hydrator

import (
	"github.com/rafactx/openapi-fixer-v2/document"
)

// applyGlobalParameters declares the configured parameters under
// components.parameters and appends a $ref to each of them on every
// operation that does not reference it yet.
func (h *Hydrator) applyGlobalParameters(root map[string]any, result *Result) {
	if len(h.cfg.GlobalParameters) == 0 {
		return
	}

	components := ensureChildMap(root, "components")
	declared := ensureChildMap(components, "parameters")

	names := sortedKeys(h.cfg.GlobalParameters)
	for _, name := range names {
		declared[name] = h.cfg.GlobalParameters[name]
	}

	document.EachOperation(root, func(template, method string, op map[string]any) {
		params, _ := op["parameters"].([]any)

		existing := map[string]bool{}
		for _, entry := range params {
			if p, ok := entry.(map[string]any); ok {
				if ref, ok := p["$ref"].(string); ok {
					existing[ref] = true
				}
			}
		}

		for _, name := range names {
			ref := "#/components/parameters/" + name
			if existing[ref] {
				continue
			}
			params = append(params, map[string]any{"$ref": ref})
			result.ParametersInjected++
			h.Logger.Debug("global parameter referenced", "template", template, "method", method, "parameter", name)
		}
		op["parameters"] = params
	})
}
