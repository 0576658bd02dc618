package hydrator

import (
	"sort"
)

// applyTranslations replaces dictionary tokens everywhere in the tree: in
// string values, in strings inside sequences, and in mapping keys. Strings
// sitting under a description key take the entry's description text when it
// has one.
func (h *Hydrator) applyTranslations(root map[string]any, result *Result) {
	if len(h.cfg.Translations) == 0 {
		return
	}
	result.Substitutions += h.translateMap(root)
	h.Logger.Debug("translations applied", "substitutions", result.Substitutions)
}

// translateMap translates the mapping's values, then its keys, returning the
// substitution count.
func (h *Hydrator) translateMap(m map[string]any) int {
	count := 0

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch value := m[key].(type) {
		case string:
			if entry, ok := h.cfg.Translations[value]; ok {
				if replacement := entry.replacementFor(key); replacement != value {
					m[key] = replacement
					count++
				}
			}
		case map[string]any:
			count += h.translateMap(value)
		case []any:
			count += h.translateSlice(value, key)
		}

		if entry, ok := h.cfg.Translations[key]; ok && entry.Name != "" && entry.Name != key {
			m[entry.Name] = m[key]
			delete(m, key)
			count++
		}
	}
	return count
}

// translateSlice translates the sequence's elements in place. parentKey is
// the mapping key the sequence sits under, carried so description text
// applies inside description arrays too.
func (h *Hydrator) translateSlice(s []any, parentKey string) int {
	count := 0
	for i, elem := range s {
		switch value := elem.(type) {
		case string:
			if entry, ok := h.cfg.Translations[value]; ok {
				if replacement := entry.replacementFor(parentKey); replacement != value {
					s[i] = replacement
					count++
				}
			}
		case map[string]any:
			count += h.translateMap(value)
		case []any:
			count += h.translateSlice(value, parentKey)
		}
	}
	return count
}
