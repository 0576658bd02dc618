package hydrator

import (
	"sort"
	"strings"

	"github.com/rafactx/openapi-fixer-v2/document"
)

// applyErrorResponses adds the default error responses to every operation.
// Templates starting with a modern path prefix get the modern set, all
// others the legacy set. A status code already present on an operation is
// never touched.
func (h *Hydrator) applyErrorResponses(root map[string]any, result *Result) {
	if len(h.cfg.DefaultErrorResponses.Modern) == 0 && len(h.cfg.DefaultErrorResponses.Legacy) == 0 {
		return
	}

	document.EachOperation(root, func(template, method string, op map[string]any) {
		defaults := h.cfg.DefaultErrorResponses.Legacy
		if h.isModernPath(template) {
			defaults = h.cfg.DefaultErrorResponses.Modern
		}
		if len(defaults) == 0 {
			return
		}

		responses := ensureChildMap(op, "responses")

		statuses := make([]string, 0, len(defaults))
		for status := range defaults {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)

		for _, status := range statuses {
			if _, exists := responses[status]; exists {
				continue
			}
			responses[status] = defaults[status]
			result.ResponsesAdded++
			h.Logger.Debug("default error response added", "template", template, "method", method, "status", status)
		}
	})
}

// isModernPath reports whether the template belongs to the modern API
// family.
func (h *Hydrator) isModernPath(template string) bool {
	for _, prefix := range h.cfg.ModernPathPrefixes {
		if strings.HasPrefix(template, prefix) {
			return true
		}
	}
	return false
}
