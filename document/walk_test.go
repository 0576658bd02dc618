package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSchemaRef(t *testing.T) {
	assert.True(t, IsSchemaRef("#/components/schemas/Order"))
	assert.False(t, IsSchemaRef("#/components/parameters/locale"))
	assert.False(t, IsSchemaRef("Order"))
	assert.False(t, IsSchemaRef(""))
}

func TestSchemaRefName(t *testing.T) {
	name, ok := SchemaRefName("#/components/schemas/Order Response")
	require.True(t, ok)
	assert.Equal(t, "Order Response", name)

	_, ok = SchemaRefName("#/components/responses/NotFound")
	assert.False(t, ok)
}

func TestWalkVisitsAllNodes(t *testing.T) {
	tree := map[string]any{
		"a": "one",
		"b": []any{"two", map[string]any{"c": "three"}},
	}

	var strs []string
	Walk(tree, func(n any) {
		if s, ok := n.(string); ok {
			strs = append(strs, s)
		}
	})

	assert.ElementsMatch(t, []string{"one", "two", "three"}, strs)
}

func TestRewriteStrings(t *testing.T) {
	tree := map[string]any{
		"$ref": "#/components/schemas/Order Response",
		"properties": map[string]any{
			"items": map[string]any{
				"items": map[string]any{"$ref": "#/components/schemas/Order Response"},
			},
		},
		"allOf": []any{
			map[string]any{"$ref": "#/components/schemas/Order Response"},
			map[string]any{"$ref": "#/components/schemas/Customer"},
		},
		"count": 3,
	}

	n := RewriteStrings(tree, func(s string) (string, bool) {
		if s == "#/components/schemas/Order Response" {
			return "#/components/schemas/OrderResponse", true
		}
		return "", false
	})

	assert.Equal(t, 3, n)
	assert.Equal(t, "#/components/schemas/OrderResponse", tree["$ref"])

	allOf := tree["allOf"].([]any)
	assert.Equal(t, "#/components/schemas/OrderResponse", allOf[0].(map[string]any)["$ref"])
	assert.Equal(t, "#/components/schemas/Customer", allOf[1].(map[string]any)["$ref"])
}

func TestRewriteStringsNoMatches(t *testing.T) {
	tree := map[string]any{"a": "x", "b": 1}
	n := RewriteStrings(tree, func(s string) (string, bool) { return "", false })
	assert.Zero(t, n)
	assert.Equal(t, "x", tree["a"])
}

func TestCollectSchemaRefs(t *testing.T) {
	tree := map[string]any{
		"paths": map[string]any{
			"/orders": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{
							"$ref": "#/components/schemas/OrderList",
						},
					},
				},
			},
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"OrderList": map[string]any{
					"items": map[string]any{"$ref": "#/components/schemas/Order"},
				},
			},
		},
	}

	refs := CollectSchemaRefs(tree)
	assert.ElementsMatch(t, []string{
		"#/components/schemas/OrderList",
		"#/components/schemas/Order",
	}, refs)
}

func TestIsHTTPMethod(t *testing.T) {
	for _, m := range []string{"get", "put", "post", "delete", "options", "head", "patch", "GET", "Post"} {
		assert.True(t, IsHTTPMethod(m), m)
	}
	for _, k := range []string{"parameters", "summary", "description", "x-internal", "trace"} {
		assert.False(t, IsHTTPMethod(k), k)
	}
}

func TestEachOperation(t *testing.T) {
	root := map[string]any{
		"paths": map[string]any{
			"/v3/orders": map[string]any{
				"get":        map[string]any{"operationId": "listOrders"},
				"post":       map[string]any{"operationId": "createOrder"},
				"parameters": []any{},
			},
			"/v3/orders/{id}": map[string]any{
				"delete": map[string]any{"operationId": "deleteOrder"},
			},
		},
	}

	var visited []string
	EachOperation(root, func(tpl, method string, op map[string]any) {
		visited = append(visited, tpl+" "+method+" "+op["operationId"].(string))
	})

	// Path templates and methods come back in deterministic sorted order.
	assert.Equal(t, []string{
		"/v3/orders get listOrders",
		"/v3/orders post createOrder",
		"/v3/orders/{id} delete deleteOrder",
	}, visited)
}

func TestEachOperationNoPaths(t *testing.T) {
	called := false
	EachOperation(map[string]any{"openapi": "3.0.3"}, func(string, string, map[string]any) {
		called = true
	})
	assert.False(t, called)
}

func TestGetMap(t *testing.T) {
	m := map[string]any{
		"info":  map[string]any{"title": "x"},
		"count": 1,
	}

	child, ok := GetMap(m, "info")
	require.True(t, ok)
	assert.Equal(t, "x", child["title"])

	_, ok = GetMap(m, "count")
	assert.False(t, ok)

	_, ok = GetMap(m, "missing")
	assert.False(t, ok)
}

func TestEnsureMap(t *testing.T) {
	t.Run("creates missing child", func(t *testing.T) {
		m := map[string]any{}
		child, ok := EnsureMap(m, "components")
		require.True(t, ok)
		child["schemas"] = map[string]any{}
		assert.Contains(t, m, "components")
	})

	t.Run("returns existing child", func(t *testing.T) {
		existing := map[string]any{"a": 1}
		m := map[string]any{"components": existing}
		child, ok := EnsureMap(m, "components")
		require.True(t, ok)
		assert.Equal(t, 1, child["a"])
	})

	t.Run("refuses non-mapping child", func(t *testing.T) {
		m := map[string]any{"components": "oops"}
		_, ok := EnsureMap(m, "components")
		assert.False(t, ok)
		assert.Equal(t, "oops", m["components"])
	})
}

func TestGetSlice(t *testing.T) {
	m := map[string]any{
		"tags": []any{"a", "b"},
		"info": map[string]any{},
	}

	s, ok := GetSlice(m, "tags")
	require.True(t, ok)
	assert.Len(t, s, 2)

	_, ok = GetSlice(m, "info")
	assert.False(t, ok)
}

func TestRewriteStringsSequenceOfStrings(t *testing.T) {
	tree := map[string]any{
		"required": []any{"old name", "kept"},
	}
	n := RewriteStrings(tree, func(s string) (string, bool) {
		if strings.Contains(s, " ") {
			return strings.ReplaceAll(s, " ", ""), true
		}
		return "", false
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, []any{"oldname", "kept"}, tree["required"])
}
