package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"navmenu/internal/menu"
)

// renderDetailPanel renders the side panel for the row under the cursor
func (m Model) renderDetailPanel(width, height int) string {
	var b strings.Builder

	b.WriteString(DetailHeaderStyle(width - 2).Render("Details"))
	b.WriteString("\n")

	row, ok := m.selectedRow()
	if !ok {
		b.WriteString(MutedStyle().Render("Nothing selected"))
		return DetailPanelStyle(width, height).Render(b.String())
	}
	node := row.Item.Node

	path := node.Path
	if !node.HasPath() {
		path = MutedStyle().Render("none")
	}

	fields := []struct {
		label string
		value string
	}{
		{"Code", node.Code},
		{"Name", node.Name},
		{"Path", path},
		{"Icon", node.Icon},
		{"Children", strconv.Itoa(len(node.Children))},
		{"Expansion", expansionReason(m.engine, node.Code)},
		{"Action", clickAction(node)},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString(DetailLabelStyle().Render(f.label))
		b.WriteString(lipgloss.NewStyle().Width(width - 14).Render(f.value))
		b.WriteString("\n")
	}

	if row.Active {
		b.WriteString(ActiveRowStyle().Render("current route"))
	}

	return DetailPanelStyle(width, height).Render(b.String())
}

// expansionReason explains why code renders open or closed
func expansionReason(e *menu.Engine, code string) string {
	expanded := e.IsExpanded(code)
	switch {
	case expanded && e.Manual().Has(code):
		return "open (manual)"
	case expanded:
		return "open (search)"
	case e.CollapseOverrides().Has(code):
		return "closed (hidden during search)"
	default:
		return "closed"
	}
}

// clickAction describes what enter does on the node
func clickAction(n *menu.Node) string {
	switch {
	case n.HasChildren():
		return "toggle"
	case n.IsClickable():
		return "navigate"
	default:
		return "none"
	}
}
