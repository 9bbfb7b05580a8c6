package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navmenu/internal/menu"
)

const yamlList = `
- code: settings
  name: Settings
  path: "#"
  icon: gear
  children:
    - code: billing
      name: Billing
      path: /billing
    -
- code: help
  name: Help
`

const yamlItems = `
items:
  - code: settings
    name: Settings
    children:
      - code: billing
        name: Billing
        path: /billing
`

const jsonList = `[
  {"code": "settings", "name": "Settings", "children": [
    {"code": "billing", "name": "Billing", "path": "/billing"}
  ]},
  null
]`

const jsonItems = `{"items": [{"code": "settings", "name": "Settings", "children": [
  {"code": "billing", "name": "Billing", "path": "/billing"}
]}]}`

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		roots  []string
	}{
		{"yaml list", yamlList, FormatYAML, []string{"settings", "help"}},
		{"yaml items", yamlItems, FormatYAML, []string{"settings"}},
		{"json list", jsonList, FormatJSON, []string{"settings"}},
		{"json items", jsonItems, FormatJSON, []string{"settings"}},
		{"empty yaml", "", FormatYAML, []string{}},
		{"empty json", "  \n", FormatJSON, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.NotNil(t, tree)

			roots := make([]string, 0, len(tree))
			for _, n := range tree {
				roots = append(roots, n.Code)
			}
			assert.Equal(t, tt.roots, roots)

			if len(tree) > 0 {
				billing := menu.Find(tree, "billing")
				require.NotNil(t, billing)
				assert.Equal(t, "/billing", billing.Path)
				assert.Len(t, tree[0].Children, 1)
			}
		})
	}
}

func TestParseKeepsIcon(t *testing.T) {
	tree, err := Parse([]byte(yamlList), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "gear", tree[0].Icon)
	assert.Nil(t, tree[1].Children)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(yamlList), Format("toml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Parse([]byte(`[{"name": "no code"}]`), FormatJSON)
	assert.ErrorIs(t, err, ErrMissingCode)
	assert.Contains(t, err.Error(), "items[0]")

	_, err = Parse([]byte("items:\n  - code: a\n    children:\n      - name: b\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrMissingCode)
	assert.Contains(t, err.Error(), "items[0].children[0]")

	_, err = Parse([]byte(`{"items": [`), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("items: [\n"), FormatYAML)
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("menu.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("/etc/MENU.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("menu.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("menu.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("menu"))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(jsonItems), 0o644))

	tree, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, menu.Count(tree))

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDuplicateCodes(t *testing.T) {
	tree := []*menu.Node{
		{Code: "b", Children: []*menu.Node{{Code: "a"}, {Code: "b"}}},
		{Code: "a"},
		{Code: "c"},
	}
	assert.Equal(t, []string{"a", "b"}, DuplicateCodes(tree))
	assert.Empty(t, DuplicateCodes(tree[2:]))
}
