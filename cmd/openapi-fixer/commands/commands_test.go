package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func readJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))
	return root
}

func TestHandleRename(t *testing.T) {
	t.Run("renames in place", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "openapi.json",
			`{"components": {"schemas": {"Order Response": {"type": "object"}}}, "openapi": "3.0.3"}`)

		require.NoError(t, HandleRename([]string{path}))

		root := readJSON(t, path)
		schemas := root["components"].(map[string]any)["schemas"].(map[string]any)
		assert.Contains(t, schemas, "OrderResponse")
		assert.NotContains(t, schemas, "Order Response")
	})

	t.Run("output flag leaves the input alone", func(t *testing.T) {
		dir := t.TempDir()
		input := writeFile(t, dir, "openapi.json",
			`{"components": {"schemas": {"Order Response": {}}}, "openapi": "3.0.3"}`)
		output := filepath.Join(dir, "out.json")

		require.NoError(t, HandleRename([]string{"-o", output, input}))

		assert.Contains(t, readJSON(t, output)["components"].(map[string]any)["schemas"], "OrderResponse")
		assert.Contains(t, readJSON(t, input)["components"].(map[string]any)["schemas"], "Order Response")
	})

	t.Run("dangling refs exit non-zero", func(t *testing.T) {
		dir := t.TempDir()
		path := writeFile(t, dir, "openapi.json",
			`{"openapi": "3.0.3", "paths": {"/x": {"get": {"responses": {"200": {"schema": {"$ref": "#/components/schemas/Missing"}}}}}}}`)

		err := HandleRename([]string{path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dangling")

		// The document is still saved before the failure is reported.
		assert.Contains(t, readJSON(t, path), "paths")
	})

	t.Run("missing input", func(t *testing.T) {
		err := HandleRename([]string{filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})

	t.Run("no arguments", func(t *testing.T) {
		require.Error(t, HandleRename(nil))
	})
}

func TestHandleCorrect(t *testing.T) {
	ruleFile := func(t *testing.T, dir string) string {
		return writeFile(t, dir, "rules.yaml", `
- id: drop-body
  action: delete-key
  path: paths./v3/orders/{orderId}/delete
  details:
    key_to_delete: requestBody
`)
	}
	docContent := `{
  "openapi": "3.0.3",
  "paths": {
    "/v3/orders/{orderId}": {
      "delete": {
        "parameters": [{"name": "orderId", "in": "path", "required": true}],
        "requestBody": {"content": {}}
      }
    }
  }
}`

	t.Run("applies rules and saves", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "openapi.json", docContent)

		require.NoError(t, HandleCorrect([]string{"--config", ruleFile(t, dir), doc}))

		root := readJSON(t, doc)
		op := root["paths"].(map[string]any)["/v3/orders/{orderId}"].(map[string]any)["delete"].(map[string]any)
		assert.NotContains(t, op, "requestBody")
	})

	t.Run("failed rule exits non-zero but saves", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "openapi.json", docContent)
		rules := writeFile(t, dir, "rules.yaml", `
- id: bad
  action: delete-key
  path: paths./missing/get
  details:
    key_to_delete: requestBody
- id: drop-body
  action: delete-key
  path: paths./v3/orders/{orderId}/delete
  details:
    key_to_delete: requestBody
`)

		err := HandleCorrect([]string{"--config", rules, doc})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed rule")

		op := readJSON(t, doc)["paths"].(map[string]any)["/v3/orders/{orderId}"].(map[string]any)["delete"].(map[string]any)
		assert.NotContains(t, op, "requestBody", "later rules still apply and the result is saved")
	})

	t.Run("export config", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "rules.yaml")

		require.NoError(t, HandleCorrect([]string{"--export-config", out}))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "delete-key")
	})

	t.Run("invalid rule file", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "openapi.json", docContent)
		rules := writeFile(t, dir, "rules.yaml", `- action: delete-key`)

		require.Error(t, HandleCorrect([]string{"--config", rules, doc}))
	})

	t.Run("no arguments", func(t *testing.T) {
		require.Error(t, HandleCorrect(nil))
	})
}

func TestHandleHydrate(t *testing.T) {
	docContent := `{
  "openapi": "3.0.3",
  "paths": {
    "/v3/orders": {
      "get": {"operationId": "listOrders", "tags": ["%%ORDERS%%"]}
    }
  }
}`
	configContent := `
metadata:
  info:
    title: Test API
    version: 1.0.0
translations:
  "%%ORDERS%%": Pedidos
summaries:
  listOrders: Lista os pedidos.
ui_ordering:
  tag_order: [Pedidos]
`

	t.Run("hydrates in place", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "openapi.json", docContent)
		cfg := writeFile(t, dir, "config.yaml", configContent)

		require.NoError(t, HandleHydrate([]string{"--config", cfg, doc}))

		root := readJSON(t, doc)
		assert.Equal(t, "Test API", root["info"].(map[string]any)["title"])

		op := root["paths"].(map[string]any)["/v3/orders"].(map[string]any)["get"].(map[string]any)
		assert.Equal(t, "Lista os pedidos.", op["summary"])
		assert.Equal(t, []any{"Pedidos"}, op["tags"])
	})

	t.Run("extra translation and summary files", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "openapi.json", docContent)
		cfg := writeFile(t, dir, "config.yaml", "metadata:\n  info:\n    title: T\n")
		dict := writeFile(t, dir, "dictionary.json", `{"%%ORDERS%%": "Pedidos"}`)
		summaries := writeFile(t, dir, "summaries.json", `{"listOrders": "Lista."}`)

		require.NoError(t, HandleHydrate([]string{"--config", cfg, "--translations", dict, "--summaries", summaries, doc}))

		op := readJSON(t, doc)["paths"].(map[string]any)["/v3/orders"].(map[string]any)["get"].(map[string]any)
		assert.Equal(t, "Lista.", op["summary"])
		assert.Equal(t, []any{"Pedidos"}, op["tags"])
	})

	t.Run("config is required", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "openapi.json", docContent)

		err := HandleHydrate([]string{doc})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config")
	})

	t.Run("missing config file", func(t *testing.T) {
		dir := t.TempDir()
		doc := writeFile(t, dir, "openapi.json", docContent)

		require.Error(t, HandleHydrate([]string{"--config", filepath.Join(dir, "nope.yaml"), doc}))
	})
}
