package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"navmenu/internal/menu"
)

// rowItem wraps a menu row for the list component
type rowItem struct {
	row menu.Row
}

func (i rowItem) FilterValue() string { return i.row.Item.Node.Name }
func (i rowItem) Code() string        { return i.row.Item.Code() }

// rowDelegate renders menu rows
type rowDelegate struct {
	width     int
	collapsed bool
	query     string
}

func newRowDelegate() *rowDelegate {
	return &rowDelegate{width: ExpandedSidebarWidth}
}

// SetWidth updates the width used for truncation
func (d *rowDelegate) SetWidth(width int) {
	d.width = width
}

// SetCollapsed switches between full rows and icon-only rows
func (d *rowDelegate) SetCollapsed(collapsed bool) {
	d.collapsed = collapsed
}

// SetQuery sets the committed query to highlight
func (d *rowDelegate) SetQuery(query string) {
	d.query = query
}

func (d *rowDelegate) Height() int                             { return 1 }
func (d *rowDelegate) Spacing() int                            { return 0 }
func (d *rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d *rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(rowItem)
	if !ok {
		return
	}
	row := i.row
	node := row.Item.Node

	style := NormalRowStyle()
	switch {
	case row.Active:
		style = ActiveRowStyle()
	case node.IsInert():
		style = InertRowStyle()
	}
	selected := index == m.Index()
	if selected {
		style = SelectedRowStyle()
	}

	if d.collapsed {
		fmt.Fprint(w, style.Render(" "+collapsedLabel(node)+" "))
		return
	}

	indent := strings.Repeat("  ", row.Depth)
	indicator := IndicatorStyle().Render(rowIndicator(row))

	avail := d.width - lipgloss.Width(indent) - 2
	name := truncate(node.Name, avail)

	var label string
	if selected {
		label = style.Render(name)
	} else {
		label = highlightMatch(name, d.query, style)
	}

	fmt.Fprintf(w, "%s%s %s", indent, indicator, label)
}

// rowIndicator shows whether a row can expand and whether it is expanded
func rowIndicator(row menu.Row) string {
	switch {
	case !row.Item.HasChildren:
		return indicatorLeaf
	case row.Expanded:
		return indicatorExpanded
	default:
		return indicatorCollapsed
	}
}

// collapsedLabel is the icon, or the first letter of the name
func collapsedLabel(n *menu.Node) string {
	if n.Icon != "" {
		r, _ := utf8.DecodeRuneInString(n.Icon)
		return string(r)
	}
	r, _ := utf8.DecodeRuneInString(n.Name)
	if r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}

// highlightMatch renders name with the first occurrence of query
// emphasized. Names whose lowercase form changes length are not split.
func highlightMatch(name, query string, base lipgloss.Style) string {
	if query == "" {
		return base.Render(name)
	}
	lower := strings.ToLower(name)
	idx := strings.Index(lower, query)
	end := idx + len(query)
	if idx < 0 || end > len(name) || len(lower) != len(name) {
		return base.Render(name)
	}
	return base.Render(name[:idx]) + MatchStyle().Render(name[idx:end]) + base.Render(name[end:])
}

// truncate shortens s to width runes, adding an ellipsis
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
