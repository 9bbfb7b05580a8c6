package tui

import (
	"testing"

	"navmenu/internal/menu"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		width    int
		expected string
	}{
		{"Dashboards", 20, "Dashboards"},
		{"Dashboards", 5, "Dash…"},
		{"Dashboards", 1, "…"},
		{"Dashboards", 0, ""},
		{"Übersicht", 4, "Übe…"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.expected)
		}
	}
}

func TestCollapsedLabel(t *testing.T) {
	tests := []struct {
		node     *menu.Node
		expected string
	}{
		{&menu.Node{Name: "billing"}, "B"},
		{&menu.Node{Name: "Billing", Icon: "$ card"}, "$"},
		{&menu.Node{Name: ""}, "?"},
	}

	for _, tt := range tests {
		if got := collapsedLabel(tt.node); got != tt.expected {
			t.Errorf("collapsedLabel(%+v) = %q, want %q", tt.node, got, tt.expected)
		}
	}
}

func TestRowIndicator(t *testing.T) {
	leaf := &menu.FilteredNode{Node: &menu.Node{Code: "x"}}
	parent := &menu.FilteredNode{Node: &menu.Node{Code: "y"}, HasChildren: true}

	if got := rowIndicator(menu.Row{Item: leaf}); got != indicatorLeaf {
		t.Errorf("leaf indicator = %q", got)
	}
	if got := rowIndicator(menu.Row{Item: parent}); got != indicatorCollapsed {
		t.Errorf("collapsed indicator = %q", got)
	}
	if got := rowIndicator(menu.Row{Item: parent, Expanded: true}); got != indicatorExpanded {
		t.Errorf("expanded indicator = %q", got)
	}
}

func TestFlavorByName(t *testing.T) {
	if FlavorByName("Latte").Base().Hex == FlavorByName("mocha").Base().Hex {
		t.Error("latte and mocha should differ")
	}
	if FlavorByName("unknown").Base().Hex != FlavorByName("mocha").Base().Hex {
		t.Error("unknown themes should fall back to mocha")
	}
}
