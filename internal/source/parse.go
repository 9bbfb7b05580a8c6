package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"navmenu/internal/menu"
)

var (
	ErrUnknownFormat = errors.New("unknown menu format")
	ErrMissingCode   = errors.New("menu node has no code")
)

// Parse decodes a menu document. The document is either a bare list of
// nodes or an object with an "items" list. Null entries are dropped and
// every remaining node must carry a code.
func Parse(data []byte, format Format) ([]*menu.Node, error) {
	var (
		tree []*menu.Node
		err  error
	)

	switch format {
	case FormatYAML:
		tree, err = parseYAML(data)
	case FormatJSON:
		tree, err = parseJSON(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return compact(tree, "items")
}

// LoadFile reads and parses a menu file.
func LoadFile(path string) ([]*menu.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read menu file: %w", err)
	}

	tree, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

func parseYAML(data []byte) ([]*menu.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse yaml menu: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		var items []*menu.Node
		if err := root.Decode(&items); err != nil {
			return nil, fmt.Errorf("failed to decode yaml menu: %w", err)
		}
		return items, nil
	}

	var d document
	if err := root.Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode yaml menu: %w", err)
	}
	return d.Items, nil
}

func parseJSON(data []byte) ([]*menu.Node, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var items []*menu.Node
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("failed to parse json menu: %w", err)
		}
		return items, nil
	}

	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse json menu: %w", err)
	}
	return d.Items, nil
}

// compact drops null entries and checks codes. where locates errors.
func compact(nodes []*menu.Node, where string) ([]*menu.Node, error) {
	out := make([]*menu.Node, 0, len(nodes))
	for i, n := range nodes {
		if n == nil {
			continue
		}
		at := fmt.Sprintf("%s[%d]", where, i)
		if n.Code == "" {
			return nil, fmt.Errorf("%w at %s", ErrMissingCode, at)
		}

		children, err := compact(n.Children, at+".children")
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			children = nil
		}
		n.Children = children
		out = append(out, n)
	}
	return out, nil
}

// DuplicateCodes returns the codes used by more than one node, sorted.
// Expansion state is keyed on codes, so duplicates expand together.
func DuplicateCodes(tree []*menu.Node) []string {
	seen := make(map[string]int)
	menu.Walk(tree, func(n *menu.Node, _ int) bool {
		seen[n.Code]++
		return true
	})

	var dups []string
	for code, count := range seen {
		if count > 1 {
			dups = append(dups, code)
		}
	}
	sort.Strings(dups)
	return dups
}
