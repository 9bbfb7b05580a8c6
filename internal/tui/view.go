package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"navmenu/internal/menu"
)

// Placeholder texts shown instead of rows
const (
	textLoadFailed = "Failed to load menu"
	textNoMenu     = "No menu available"
	textNoMatches  = "No matches found"
)

// View renders the UI based on the model state
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.sidebarOpen {
		b.WriteString(SearchStyle(m.search.Focused()).Width(m.sidebarWidth() - 2).Render(m.search.View()))
		b.WriteString("\n")
	}

	body := m.renderBody()
	if m.detailPanelOpen && m.sidebarOpen {
		width := max(20, m.width-m.sidebarWidth()-2)
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.sidebarWidth()).Render(body),
			m.renderDetailPanel(width, m.rowList.Height()),
		)
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderHeader renders the top header bar
func (m Model) renderHeader() string {
	if !m.sidebarOpen {
		return TitleStyle().Render(" ≡ ")
	}

	title := TitleStyle().Render("Menu")

	var status string
	switch {
	case m.engine.TreeLen() == 0:
		status = ""
	case m.engine.QueryActive():
		status = fmt.Sprintf("%d/%d items", countVisible(m.engine.VisibleTree()), menu.Count(m.engine.Tree()))
	default:
		status = fmt.Sprintf("%d items", menu.Count(m.engine.Tree()))
	}
	status = StatusStyle().Render(status)

	spacing := m.sidebarWidth() - lipgloss.Width(title) - lipgloss.Width(status)
	if spacing < 1 {
		spacing = 1
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, title, strings.Repeat(" ", spacing), status)
}

// renderBody renders the rows, or the placeholder for the engine status.
// The collapsed sidebar shows no placeholder text.
func (m Model) renderBody() string {
	status := m.engine.Status()
	switch status {
	case menu.StatusLoading:
		return renderSkeleton(m.sidebarOpen)
	case menu.StatusReady:
		return m.rowList.View()
	}
	if !m.sidebarOpen {
		return ""
	}

	switch status {
	case menu.StatusError:
		msg := ErrorStyle().Render(textLoadFailed)
		if err := m.engine.SourceState().Err; err != nil {
			msg += "\n" + MutedStyle().Width(m.sidebarWidth()).Render(err.Error())
		}
		return msg
	case menu.StatusEmpty:
		return MutedStyle().Render(textNoMenu)
	default:
		return MutedStyle().Render(textNoMatches)
	}
}

// renderSkeleton draws placeholder rows while the menu loads
func renderSkeleton(open bool) string {
	widths := []int{18, 12, 22, 15}
	lines := make([]string, len(widths))
	for i, w := range widths {
		if !open {
			w = 3
		}
		lines[i] = SkeletonStyle().Render(" " + strings.Repeat("▂", w))
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help footer
func (m Model) renderHelp() string {
	var help []string

	switch {
	case !m.sidebarOpen:
		help = []string{"j/k", "enter", "[:open"}
	case m.search.Focused():
		help = []string{
			"type:search",
			"enter:apply",
			"esc:clear",
		}
	default:
		help = []string{
			"j/k:navigate",
			"enter:open",
			"h/l:fold",
			"/:search",
			"[:collapse",
			"d:details",
			"r:reload",
			"q:quit",
		}
	}

	footer := HelpStyle().Render(strings.Join(help, " | "))
	if m.lastAction != "" && m.sidebarOpen {
		footer = StatusStyle().Render(m.lastAction) + "\n" + footer
	}
	return footer
}

// countVisible counts the nodes of a filtered tree
func countVisible(tree []*menu.FilteredNode) int {
	n := 0
	menu.WalkFiltered(tree, func(*menu.FilteredNode, int) { n++ })
	return n
}
