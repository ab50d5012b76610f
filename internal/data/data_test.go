package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeTempFile(t, "data.yaml", `
CustomerName: Jane Doe
Customer:
  Address:
    City: Munich
Products:
  - Name: Widget
    Price: 19.99
  - Name: Gadget
    Price: 5
`)

	bindings, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", bindings["CustomerName"])

	customer, ok := bindings["Customer"].(map[string]interface{})
	require.True(t, ok, "nested mappings must decode as string-keyed maps")
	address := customer["Address"].(map[string]interface{})
	assert.Equal(t, "Munich", address["City"])

	products, ok := bindings["Products"].([]interface{})
	require.True(t, ok)
	require.Len(t, products, 2)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "Widget", first["Name"])
	assert.Equal(t, 19.99, first["Price"])
}

func TestLoadFileJSON(t *testing.T) {
	path := writeTempFile(t, "data.json", `{
  "name": "World",
  "Items": ["a", "b"],
  "Count": 3
}`)

	bindings, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "World", bindings["name"])
	assert.Equal(t, []interface{}{"a", "b"}, bindings["Items"])
	assert.Equal(t, float64(3), bindings["Count"])
}

func TestLoadFileUnsupportedExtension(t *testing.T) {
	path := writeTempFile(t, "data.toml", `name = "x"`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported data format")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFileInvalidYAML(t *testing.T) {
	path := writeTempFile(t, "broken.yaml", "key: [unclosed")

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestLoadFileInvalidJSON(t *testing.T) {
	path := writeTempFile(t, "broken.json", "{not json")

	_, err := LoadFile(path)
	require.Error(t, err)
}
