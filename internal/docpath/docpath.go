// Package docpath resolves dotted location expressions against a generic
// OpenAPI document tree (map[string]any).
//
// An expression is a sequence of dot-separated segments navigating mappings,
// with one special form for the paths object: because path templates contain
// both dots and slashes, an expression beginning with "paths./" treats
// everything after "paths." as a slash path whose final slash segment is the
// HTTP method:
//
//	paths./v3/orders/{orderId}/delete  ->  ["paths", "/v3/orders/{orderId}", "delete"]
//	info.title                          ->  ["info", "title"]
//	servers.0.url                       ->  ["servers", "0", "url"]
//
// A segment consisting only of digits indexes into a sequence node.
package docpath

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError describes an invalid location expression.
type ParseError struct {
	// Expr is the expression that failed to parse
	Expr string
	// Message describes what is wrong with it
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("docpath: invalid expression %q: %s", e.Expr, e.Message)
}

// ResolveError describes a resolution failure against a document tree.
type ResolveError struct {
	// Expr is the expression being resolved
	Expr string
	// Segment is the segment that failed to resolve
	Segment string
	// Message describes the failure
	Message string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	return fmt.Sprintf("docpath: cannot resolve %q at segment %q: %s", e.Expr, e.Segment, e.Message)
}

// Path is a parsed location expression.
type Path struct {
	raw      string
	segments []string
}

// httpMethods are the operation keys recognized in the paths slash form.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true,
}

// Parse parses a location expression into a Path.
func Parse(expr string) (*Path, error) {
	if expr == "" {
		return nil, &ParseError{Expr: expr, Message: "empty expression"}
	}

	if rest, ok := strings.CutPrefix(expr, "paths./"); ok {
		rest = "/" + rest
		segments := []string{"paths"}
		if i := strings.LastIndex(rest, "/"); i > 0 && httpMethods[strings.ToLower(rest[i+1:])] {
			segments = append(segments, rest[:i], strings.ToLower(rest[i+1:]))
		} else {
			segments = append(segments, rest)
		}
		return &Path{raw: expr, segments: segments}, nil
	}

	segments := strings.Split(expr, ".")
	for _, seg := range segments {
		if seg == "" {
			return nil, &ParseError{Expr: expr, Message: "empty segment"}
		}
	}
	return &Path{raw: expr, segments: segments}, nil
}

// String returns the original expression.
func (p *Path) String() string { return p.raw }

// Segments returns the parsed segments in navigation order.
func (p *Path) Segments() []string {
	out := make([]string, len(p.segments))
	copy(out, p.segments)
	return out
}

// Resolve evaluates the path against root and returns the node it addresses.
func (p *Path) Resolve(root map[string]any) (any, error) {
	var node any = root
	for _, seg := range p.segments {
		next, err := p.step(node, seg)
		if err != nil {
			return nil, err
		}
		node = next
	}
	return node, nil
}

// ResolveParent evaluates all but the final segment and returns the container
// holding it together with the final segment itself. The container is either a
// map[string]any or a []any. Callers use this to mutate the addressed slot.
func (p *Path) ResolveParent(root map[string]any) (container any, key string, err error) {
	var node any = root
	for _, seg := range p.segments[:len(p.segments)-1] {
		next, err := p.step(node, seg)
		if err != nil {
			return nil, "", err
		}
		node = next
	}

	last := p.segments[len(p.segments)-1]
	switch node.(type) {
	case map[string]any, []any:
		return node, last, nil
	default:
		return nil, "", &ResolveError{
			Expr:    p.raw,
			Segment: last,
			Message: fmt.Sprintf("parent is a scalar %T, not a container", node),
		}
	}
}

// step navigates one segment from node.
func (p *Path) step(node any, seg string) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		child, ok := v[seg]
		if !ok {
			return nil, &ResolveError{Expr: p.raw, Segment: seg, Message: "key not found"}
		}
		return child, nil
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil {
			return nil, &ResolveError{Expr: p.raw, Segment: seg, Message: "sequence index is not a number"}
		}
		if idx < 0 || idx >= len(v) {
			return nil, &ResolveError{Expr: p.raw, Segment: seg, Message: fmt.Sprintf("index out of range (len %d)", len(v))}
		}
		return v[idx], nil
	default:
		return nil, &ResolveError{Expr: p.raw, Segment: seg, Message: fmt.Sprintf("cannot descend into %T", node)}
	}
}
