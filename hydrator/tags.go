package hydrator

import (
	"slices"
	"strings"

	"github.com/rafactx/openapi-fixer-v2/document"
)

// applyTagOrdering rebuilds the document's tags array in the configured
// order. Tags not listed in the config come after the listed ones, in the
// order operations use them. Existing tag descriptions are kept; tags
// without one get a generated description. When an operation order is
// configured, each tag carries an x-operationOrder extension listing its
// operationIds in display order, since documentation UIs cannot rely on key
// order inside the paths object.
func (h *Hydrator) applyTagOrdering(root map[string]any, result *Result) {
	ordering := h.cfg.UIOrdering
	if len(ordering.TagOrder) == 0 && len(ordering.OperationOrder) == 0 {
		return
	}

	used, opsByTag := collectTagUsage(root)
	if len(used) == 0 {
		return
	}

	listed := map[string]bool{}
	var ordered []string
	for _, name := range ordering.TagOrder {
		if slices.Contains(used, name) && !listed[name] {
			listed[name] = true
			ordered = append(ordered, name)
		}
	}
	for _, name := range used {
		if !listed[name] {
			listed[name] = true
			ordered = append(ordered, name)
		}
	}

	descriptions := existingTagDescriptions(root)

	tags := make([]any, 0, len(ordered))
	for _, name := range ordered {
		tag := map[string]any{"name": name}

		if desc, ok := descriptions[name]; ok {
			tag["description"] = desc
		} else {
			tag["description"] = "Operações relacionadas a " + strings.ToLower(name)
		}

		if len(ordering.OperationOrder) > 0 {
			tag["x-operationOrder"] = orderOperations(opsByTag[name], ordering.OperationOrder)
		}

		tags = append(tags, tag)
	}

	root["tags"] = tags
	result.TagsOrdered = len(tags)
	h.Logger.Debug("tags ordered", "count", len(tags))
}

// collectTagUsage returns the tag names operations use, in first-use order,
// plus each tag's operationIds in the same traversal order.
func collectTagUsage(root map[string]any) ([]string, map[string][]string) {
	var used []string
	seen := map[string]bool{}
	opsByTag := map[string][]string{}

	document.EachOperation(root, func(template, method string, op map[string]any) {
		tagList, _ := op["tags"].([]any)
		id, _ := op["operationId"].(string)

		for _, raw := range tagList {
			name, ok := raw.(string)
			if !ok {
				continue
			}
			if !seen[name] {
				seen[name] = true
				used = append(used, name)
			}
			if id != "" {
				opsByTag[name] = append(opsByTag[name], id)
			}
		}
	})

	return used, opsByTag
}

// existingTagDescriptions indexes the document's current tags array by name.
func existingTagDescriptions(root map[string]any) map[string]string {
	out := map[string]string{}
	tags, ok := document.GetSlice(root, "tags")
	if !ok {
		return out
	}
	for _, raw := range tags {
		tag, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		name, _ := tag["name"].(string)
		desc, _ := tag["description"].(string)
		if name != "" && desc != "" {
			out[name] = desc
		}
	}
	return out
}

// orderOperations sorts a tag's operationIds: ids named by the configured
// preference first, in preference order, then the rest in traversal order.
func orderOperations(ids []string, preference []string) []any {
	inTag := map[string]bool{}
	for _, id := range ids {
		inTag[id] = true
	}

	placed := map[string]bool{}
	ordered := make([]any, 0, len(ids))
	for _, id := range preference {
		if inTag[id] && !placed[id] {
			placed[id] = true
			ordered = append(ordered, id)
		}
	}
	for _, id := range ids {
		if !placed[id] {
			placed[id] = true
			ordered = append(ordered, id)
		}
	}
	return ordered
}
