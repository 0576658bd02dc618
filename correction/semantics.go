package correction

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cast"

	"github.com/rafactx/openapi-fixer-v2/document"
)

// Check identifies a semantic check.
type Check string

const (
	// CheckDeleteRequestBody flags DELETE operations carrying a requestBody
	CheckDeleteRequestBody Check = "delete-request-body"
	// CheckUndeclaredPathParameter flags template placeholders with no
	// declared path parameter
	CheckUndeclaredPathParameter Check = "undeclared-path-parameter"
	// CheckOrphanPathParameter flags declared path parameters missing from
	// the template
	CheckOrphanPathParameter Check = "orphan-path-parameter"
)

// Finding is one semantic check violation. Findings never stop a run; they
// are reported and drive the process exit code.
type Finding struct {
	// Check identifies which check fired
	Check Check
	// Location is the operation, as "paths.<template>.<method>"
	Location string
	// Detail describes the violation
	Detail string
}

// pathParamRegex matches path parameters in URL templates like {userId}
var pathParamRegex = regexp.MustCompile(`\{([^}]+)\}`)

// extractPathParameters extracts parameter names from a path template.
// For example, "/users/{userId}/posts/{postId}" returns ["userId", "postId"].
func extractPathParameters(pathTemplate string) []string {
	matches := pathParamRegex.FindAllStringSubmatch(pathTemplate, -1)
	params := make([]string, 0, len(matches))
	for _, match := range matches {
		params = append(params, match[1])
	}
	return params
}

// runChecks runs every semantic check over the document's operations.
func (e *Engine) runChecks(root map[string]any) []Finding {
	var findings []Finding
	document.EachOperation(root, func(template, method string, op map[string]any) {
		location := fmt.Sprintf("paths.%s.%s", template, method)

		if method == "delete" {
			if _, has := op["requestBody"]; has {
				findings = append(findings, Finding{
					Check:    CheckDeleteRequestBody,
					Location: location,
					Detail:   "DELETE operation declares a requestBody",
				})
			}
		}

		findings = append(findings, checkPathParameters(root, template, location, op)...)
	})
	return findings
}

// checkPathParameters verifies that template placeholders and declared path
// parameters match both ways for one operation.
func checkPathParameters(root map[string]any, template, location string, op map[string]any) []Finding {
	placeholders := extractPathParameters(template)

	declared := map[string]bool{}
	paths, _ := document.GetMap(root, "paths")
	if item, ok := document.GetMap(paths, template); ok {
		collectPathParams(root, item, declared)
	}
	collectPathParams(root, op, declared)

	var findings []Finding
	inTemplate := map[string]bool{}
	for _, name := range placeholders {
		inTemplate[name] = true
		if !declared[name] {
			findings = append(findings, Finding{
				Check:    CheckUndeclaredPathParameter,
				Location: location,
				Detail:   fmt.Sprintf("path parameter %q appears in the template but is not declared", name),
			})
		}
	}
	var orphans []string
	for name := range declared {
		if !inTemplate[name] {
			orphans = append(orphans, name)
		}
	}
	sort.Strings(orphans)
	for _, name := range orphans {
		findings = append(findings, Finding{
			Check:    CheckOrphanPathParameter,
			Location: location,
			Detail:   fmt.Sprintf("parameter %q is declared with in: path but missing from the template", name),
		})
	}
	return findings
}

// collectPathParams records the names of in: path parameters declared on the
// given node, resolving local #/components/parameters refs.
func collectPathParams(root, node map[string]any, out map[string]bool) {
	params, ok := node["parameters"].([]any)
	if !ok {
		return
	}
	for _, entry := range params {
		p, isMap := entry.(map[string]any)
		if !isMap {
			continue
		}
		if ref := cast.ToString(p["$ref"]); ref != "" {
			p = resolveParameterRef(root, ref)
			if p == nil {
				continue
			}
		}
		if cast.ToString(p["in"]) == "path" {
			if name := cast.ToString(p["name"]); name != "" {
				out[name] = true
			}
		}
	}
}

// resolveParameterRef resolves a local "#/components/parameters/<name>" ref.
func resolveParameterRef(root map[string]any, ref string) map[string]any {
	name, ok := strings.CutPrefix(ref, "#/components/parameters/")
	if !ok {
		return nil
	}
	components, ok := document.GetMap(root, "components")
	if !ok {
		return nil
	}
	params, ok := document.GetMap(components, "parameters")
	if !ok {
		return nil
	}
	p, _ := document.GetMap(params, name)
	return p
}
