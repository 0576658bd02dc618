package correction

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/rafactx/openapi-fixer-v2/internal/docpath"
)

// applyRule resolves the rule's target and dispatches on its action.
func (e *Engine) applyRule(root map[string]any, rule Rule) Outcome {
	path, err := docpath.Parse(rule.Path)
	if err != nil {
		return failed(rule, err.Error())
	}

	node, err := path.Resolve(root)
	if err != nil {
		return failed(rule, err.Error())
	}

	switch rule.Action {
	case ActionDeleteKey:
		return e.deleteKey(rule, node)
	case ActionAddParameterIfMissing:
		return e.addParameterIfMissing(rule, node)
	case ActionRemoveParameter:
		return e.removeParameter(rule, node)
	case ActionSetKeyIfMissing:
		return e.setKeyIfMissing(rule, node)
	default:
		return failed(rule, fmt.Sprintf("unknown action %q", rule.Action))
	}
}

func failed(rule Rule, reason string) Outcome {
	return Outcome{RuleID: rule.ID, Status: StatusFailed, Reason: reason}
}

func applied(rule Rule) Outcome {
	return Outcome{RuleID: rule.ID, Status: StatusApplied}
}

func satisfied(rule Rule, reason string) Outcome {
	return Outcome{RuleID: rule.ID, Status: StatusSatisfied, Reason: reason}
}

// deleteKey removes details.key_to_delete from the target mapping.
func (e *Engine) deleteKey(rule Rule, node any) Outcome {
	target, ok := node.(map[string]any)
	if !ok {
		return failed(rule, fmt.Sprintf("target is %T, not a mapping", node))
	}

	key, err := stringDetail(rule.Details, "key_to_delete")
	if err != nil {
		return failed(rule, err.Error())
	}

	if _, exists := target[key]; !exists {
		return satisfied(rule, fmt.Sprintf("key %q already absent", key))
	}
	delete(target, key)
	return applied(rule)
}

// addParameterIfMissing appends details.parameter to the target's parameters
// sequence unless a parameter with the same name and location is present.
func (e *Engine) addParameterIfMissing(rule Rule, node any) Outcome {
	target, ok := node.(map[string]any)
	if !ok {
		return failed(rule, fmt.Sprintf("target is %T, not a mapping", node))
	}

	param, err := mapDetail(rule.Details, "parameter")
	if err != nil {
		return failed(rule, err.Error())
	}
	name := cast.ToString(param["name"])
	in := cast.ToString(param["in"])
	if name == "" || in == "" {
		return failed(rule, `details "parameter" must carry "name" and "in"`)
	}

	params, _ := target["parameters"].([]any)
	for _, existing := range params {
		p, isMap := existing.(map[string]any)
		if !isMap {
			continue
		}
		if cast.ToString(p["name"]) == name && cast.ToString(p["in"]) == in {
			return satisfied(rule, fmt.Sprintf("parameter %q in %q already present", name, in))
		}
	}

	target["parameters"] = append(params, param)
	return applied(rule)
}

// removeParameter filters the target's parameters sequence, dropping entries
// named details.parameter_name.
func (e *Engine) removeParameter(rule Rule, node any) Outcome {
	target, ok := node.(map[string]any)
	if !ok {
		return failed(rule, fmt.Sprintf("target is %T, not a mapping", node))
	}

	name, err := stringDetail(rule.Details, "parameter_name")
	if err != nil {
		return failed(rule, err.Error())
	}

	params, ok := target["parameters"].([]any)
	if !ok {
		return satisfied(rule, "target has no parameters")
	}

	kept := make([]any, 0, len(params))
	for _, existing := range params {
		if p, isMap := existing.(map[string]any); isMap && cast.ToString(p["name"]) == name {
			continue
		}
		kept = append(kept, existing)
	}

	if len(kept) == len(params) {
		return satisfied(rule, fmt.Sprintf("parameter %q already absent", name))
	}
	target["parameters"] = kept
	return applied(rule)
}

// setKeyIfMissing sets details.key to details.value on the target mapping
// unless the key is already present.
func (e *Engine) setKeyIfMissing(rule Rule, node any) Outcome {
	target, ok := node.(map[string]any)
	if !ok {
		return failed(rule, fmt.Sprintf("target is %T, not a mapping", node))
	}

	key, err := stringDetail(rule.Details, "key")
	if err != nil {
		return failed(rule, err.Error())
	}
	value, ok := rule.Details["value"]
	if !ok {
		return failed(rule, `details missing "value"`)
	}

	if _, exists := target[key]; exists {
		return satisfied(rule, fmt.Sprintf("key %q already present", key))
	}
	target[key] = value
	return applied(rule)
}
