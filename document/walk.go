package document

import (
	"sort"
	"strings"
)

// SchemaRefPrefix is the fragment pointer prefix of a schema reference.
const SchemaRefPrefix = "#/components/schemas/"

// IsSchemaRef reports whether s is a reference string pointing into the
// document's schema container. References are identified structurally, by
// their value, since they can appear at arbitrary depth.
func IsSchemaRef(s string) bool {
	return strings.HasPrefix(s, SchemaRefPrefix)
}

// SchemaRefName extracts the schema name from a schema reference string.
// Returns false if s is not a schema reference.
func SchemaRefName(s string) (string, bool) {
	return strings.CutPrefix(s, SchemaRefPrefix)
}

// Walk performs a depth-first traversal of a document tree, calling visit
// for every node: mappings, sequences and scalars alike.
func Walk(node any, visit func(node any)) {
	visit(node)
	switch v := node.(type) {
	case map[string]any:
		for _, val := range v {
			Walk(val, visit)
		}
	case []any:
		for _, elem := range v {
			Walk(elem, visit)
		}
	}
}

// RewriteStrings replaces string values throughout the tree in place.
//
// The rewrite function receives each string value and returns the
// replacement together with true when a substitution should happen. The
// return value is the number of substitutions performed. Mapping keys are
// snapshotted before mutation so the collection being iterated is never
// modified mid-iteration.
func RewriteStrings(node any, rewrite func(s string) (string, bool)) int {
	count := 0
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		for _, k := range keys {
			if s, ok := v[k].(string); ok {
				if replaced, changed := rewrite(s); changed {
					v[k] = replaced
					count++
				}
				continue
			}
			count += RewriteStrings(v[k], rewrite)
		}
	case []any:
		for i, elem := range v {
			if s, ok := elem.(string); ok {
				if replaced, changed := rewrite(s); changed {
					v[i] = replaced
					count++
				}
				continue
			}
			count += RewriteStrings(elem, rewrite)
		}
	}
	return count
}

// CollectSchemaRefs returns every schema reference string found anywhere in
// the tree, in no particular order. Duplicates are preserved.
func CollectSchemaRefs(node any) []string {
	var refs []string
	Walk(node, func(n any) {
		if s, ok := n.(string); ok && IsSchemaRef(s) {
			refs = append(refs, s)
		}
	})
	return refs
}

// httpMethods is the set of path item keys treated as operations.
var httpMethods = []string{"get", "put", "post", "delete", "options", "head", "patch"}

// IsHTTPMethod reports whether the given path item key names an operation.
func IsHTTPMethod(key string) bool {
	lower := strings.ToLower(key)
	for _, m := range httpMethods {
		if lower == m {
			return true
		}
	}
	return false
}

// EachOperation calls fn for every operation mapping under the document's
// paths object, in sorted path and method order for deterministic output.
// Path items and operations that are not mappings are skipped.
func EachOperation(root map[string]any, fn func(pathTemplate, method string, op map[string]any)) {
	paths, ok := root["paths"].(map[string]any)
	if !ok {
		return
	}

	templates := make([]string, 0, len(paths))
	for tpl := range paths {
		templates = append(templates, tpl)
	}
	sort.Strings(templates)

	for _, tpl := range templates {
		item, ok := paths[tpl].(map[string]any)
		if !ok {
			continue
		}

		methods := make([]string, 0, len(item))
		for key := range item {
			if IsHTTPMethod(key) {
				methods = append(methods, key)
			}
		}
		sort.Strings(methods)

		for _, method := range methods {
			if op, ok := item[method].(map[string]any); ok {
				fn(tpl, method, op)
			}
		}
	}
}

// GetMap returns the mapping stored under key, if present and a mapping.
func GetMap(m map[string]any, key string) (map[string]any, bool) {
	child, ok := m[key].(map[string]any)
	return child, ok
}

// EnsureMap returns the mapping stored under key, creating it if absent.
// Returns false if the key exists but holds something other than a mapping.
func EnsureMap(m map[string]any, key string) (map[string]any, bool) {
	if existing, ok := m[key]; ok {
		child, isMap := existing.(map[string]any)
		return child, isMap
	}
	child := make(map[string]any)
	m[key] = child
	return child, true
}

// GetSlice returns the sequence stored under key, if present and a sequence.
func GetSlice(m map[string]any, key string) ([]any, bool) {
	child, ok := m[key].([]any)
	return child, ok
}
