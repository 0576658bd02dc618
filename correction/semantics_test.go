package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findingsFor(t *testing.T, root map[string]any) []Finding {
	t.Helper()
	report := New().Apply(newDoc(root), nil)
	return report.Findings
}

func TestCheckDeleteRequestBody(t *testing.T) {
	findings := findingsFor(t, map[string]any{
		"paths": map[string]any{
			"/v3/orders/{orderId}": map[string]any{
				"parameters": []any{pathParam("orderId")},
				"delete": map[string]any{
					"requestBody": map[string]any{},
				},
				"get": map[string]any{},
			},
		},
	})

	require.Len(t, findings, 1)
	assert.Equal(t, CheckDeleteRequestBody, findings[0].Check)
	assert.Equal(t, "paths./v3/orders/{orderId}.delete", findings[0].Location)
}

func TestCheckUndeclaredPathParameter(t *testing.T) {
	findings := findingsFor(t, map[string]any{
		"paths": map[string]any{
			"/v3/orders/{orderId}": map[string]any{
				"get": map[string]any{},
			},
		},
	})

	require.Len(t, findings, 1)
	assert.Equal(t, CheckUndeclaredPathParameter, findings[0].Check)
	assert.Contains(t, findings[0].Detail, "orderId")
}

func TestCheckOrphanPathParameter(t *testing.T) {
	findings := findingsFor(t, map[string]any{
		"paths": map[string]any{
			"/v3/orders": map[string]any{
				"get": map[string]any{
					"parameters": []any{pathParam("orderId")},
				},
			},
		},
	})

	require.Len(t, findings, 1)
	assert.Equal(t, CheckOrphanPathParameter, findings[0].Check)
	assert.Contains(t, findings[0].Detail, "orderId")
}

func TestCheckPathItemLevelParameters(t *testing.T) {
	// Parameters declared at the path item level cover every operation.
	findings := findingsFor(t, map[string]any{
		"paths": map[string]any{
			"/v3/orders/{orderId}": map[string]any{
				"parameters": []any{pathParam("orderId")},
				"get":        map[string]any{},
				"put":        map[string]any{},
			},
		},
	})

	assert.Empty(t, findings)
}

func TestCheckResolvesParameterRefs(t *testing.T) {
	root := map[string]any{
		"components": map[string]any{
			"parameters": map[string]any{
				"environmentId": pathParam("environmentId"),
			},
		},
		"paths": map[string]any{
			"/environments/{environmentId}/brands": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"$ref": "#/components/parameters/environmentId"},
					},
				},
			},
		},
	}

	assert.Empty(t, findingsFor(t, root))
}

func TestCheckIgnoresQueryParameters(t *testing.T) {
	findings := findingsFor(t, map[string]any{
		"paths": map[string]any{
			"/v3/orders": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "page", "in": "query"},
					},
				},
			},
		},
	})

	assert.Empty(t, findings)
}

func TestCheckCleanDocument(t *testing.T) {
	findings := findingsFor(t, map[string]any{
		"openapi": "3.0.3",
		"paths": map[string]any{
			"/v3/orders/{orderId}": map[string]any{
				"get": map[string]any{
					"parameters": []any{pathParam("orderId")},
				},
			},
		},
	})

	assert.Empty(t, findings)
}

func TestExtractPathParameters(t *testing.T) {
	tests := []struct {
		template string
		want     []string
	}{
		{"/users/{userId}/posts/{postId}", []string{"userId", "postId"}},
		{"/environments/{environmentId}/brands", []string{"environmentId"}},
		{"/v3/orders", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, extractPathParameters(tt.template))
		})
	}
}
