package docpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "dotted",
			expr: "info.title",
			want: []string{"info", "title"},
		},
		{
			name: "single segment",
			expr: "openapi",
			want: []string{"openapi"},
		},
		{
			name: "numeric index",
			expr: "servers.0.url",
			want: []string{"servers", "0", "url"},
		},
		{
			name: "paths slash form with method",
			expr: "paths./v3/orders/{orderId}/delete",
			want: []string{"paths", "/v3/orders/{orderId}", "delete"},
		},
		{
			name: "paths slash form uppercase method",
			expr: "paths./v3/orders/GET",
			want: []string{"paths", "/v3/orders", "get"},
		},
		{
			name: "paths slash form without method",
			expr: "paths./v3/orders",
			want: []string{"paths", "/v3/orders"},
		},
		{
			name: "paths slash form where last segment is not a method",
			expr: "paths./environments/{environmentId}/carriers",
			want: []string{"paths", "/environments/{environmentId}/carriers"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Segments())
			assert.Equal(t, tt.expr, p.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{"", "info..title", ".info", "info."} {
		t.Run(expr, func(t *testing.T) {
			_, err := Parse(expr)
			require.Error(t, err)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, expr, parseErr.Expr)
		})
	}
}

func testDoc() map[string]any {
	return map[string]any{
		"info": map[string]any{"title": "Test API"},
		"servers": []any{
			map[string]any{"url": "https://api.example.com"},
		},
		"paths": map[string]any{
			"/v3/orders/{orderId}": map[string]any{
				"get": map[string]any{"operationId": "getOrder"},
				"delete": map[string]any{
					"operationId": "deleteOrder",
					"requestBody": map[string]any{},
				},
			},
		},
	}
}

func TestResolve(t *testing.T) {
	doc := testDoc()

	t.Run("dotted", func(t *testing.T) {
		p, err := Parse("info.title")
		require.NoError(t, err)

		node, err := p.Resolve(doc)
		require.NoError(t, err)
		assert.Equal(t, "Test API", node)
	})

	t.Run("sequence index", func(t *testing.T) {
		p, err := Parse("servers.0.url")
		require.NoError(t, err)

		node, err := p.Resolve(doc)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", node)
	})

	t.Run("operation via slash form", func(t *testing.T) {
		p, err := Parse("paths./v3/orders/{orderId}/delete")
		require.NoError(t, err)

		node, err := p.Resolve(doc)
		require.NoError(t, err)

		op, isMap := node.(map[string]any)
		require.True(t, isMap)
		assert.Equal(t, "deleteOrder", op["operationId"])
	})

	t.Run("missing key", func(t *testing.T) {
		p, err := Parse("components.schemas.Order")
		require.NoError(t, err)

		_, err = p.Resolve(doc)
		require.Error(t, err)

		var resErr *ResolveError
		require.ErrorAs(t, err, &resErr)
		assert.Equal(t, "components", resErr.Segment)
	})

	t.Run("index out of range", func(t *testing.T) {
		p, err := Parse("servers.5")
		require.NoError(t, err)

		_, err = p.Resolve(doc)
		require.Error(t, err)
	})

	t.Run("non-numeric sequence index", func(t *testing.T) {
		p, err := Parse("servers.first")
		require.NoError(t, err)

		_, err = p.Resolve(doc)
		require.Error(t, err)
	})

	t.Run("scalar in the middle", func(t *testing.T) {
		p, err := Parse("info.title.length")
		require.NoError(t, err)

		_, err = p.Resolve(doc)
		require.Error(t, err)
	})
}

func TestResolveParent(t *testing.T) {
	doc := testDoc()

	t.Run("mutating through the parent", func(t *testing.T) {
		p, err := Parse("paths./v3/orders/{orderId}/delete")
		require.NoError(t, err)

		container, key, err := p.ResolveParent(doc)
		require.NoError(t, err)
		assert.Equal(t, "delete", key)

		item, isMap := container.(map[string]any)
		require.True(t, isMap)

		op := item[key].(map[string]any)
		delete(op, "requestBody")

		node, err := p.Resolve(doc)
		require.NoError(t, err)
		assert.NotContains(t, node.(map[string]any), "requestBody")
	})

	t.Run("parent is a sequence", func(t *testing.T) {
		p, err := Parse("servers.0")
		require.NoError(t, err)

		container, key, err := p.ResolveParent(doc)
		require.NoError(t, err)
		assert.Equal(t, "0", key)
		assert.IsType(t, []any{}, container)
	})

	t.Run("missing intermediate", func(t *testing.T) {
		p, err := Parse("components.schemas.Order")
		require.NoError(t, err)

		_, _, err = p.ResolveParent(doc)
		require.Error(t, err)
	})

	t.Run("scalar parent", func(t *testing.T) {
		p, err := Parse("info.title.length")
		require.NoError(t, err)

		_, _, err = p.ResolveParent(doc)
		require.Error(t, err)
	})

	t.Run("single segment resolves against root", func(t *testing.T) {
		p, err := Parse("openapi")
		require.NoError(t, err)

		container, key, err := p.ResolveParent(doc)
		require.NoError(t, err)
		assert.Equal(t, "openapi", key)
		assert.IsType(t, map[string]any{}, container)
	})
}
