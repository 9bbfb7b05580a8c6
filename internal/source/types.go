package source

import (
	"path/filepath"
	"strings"

	"navmenu/internal/menu"
)

// Format is the encoding of a menu document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension. Anything that is
// not .json is read as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Event reports a (re)load of the menu source
type Event struct {
	Path  string       // File the tree came from
	Tree  []*menu.Node // Latest good tree; kept from the previous load on error
	State menu.SourceState
}

// document is the object form of a menu file.
type document struct {
	Items []*menu.Node `yaml:"items" json:"items"`
}
