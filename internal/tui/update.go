package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"navmenu/internal/menu"
	"navmenu/internal/source"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateListSizes(), nil

	case sourceEventMsg:
		m = m.applySourceEvent(source.Event(msg))
		return m, m.waitForSourceCmd()

	case commandLoadedMsg:
		if msg.err != nil {
			m.log.Warn("menu command failed", zap.Strings("command", m.command), zap.Error(msg.err))
			m.engine.SetSourceState(menu.SourceState{Err: msg.err})
		} else {
			m.engine.Load(msg.tree)
			m.engine.SetSourceState(menu.SourceState{})
		}
		return m.refreshRows(), nil

	case queryCommittedMsg:
		// A value superseded by newer input is dropped; the newer one follows.
		if string(msg) == m.search.Value() {
			m.engine.SetQuery(string(msg))
			m = m.refreshRows()
		}
		return m, m.waitForQueryCmd()

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// applySourceEvent installs a reloaded tree, or records the failure
func (m Model) applySourceEvent(ev source.Event) Model {
	if ev.State.Err != nil {
		m.engine.SetSourceState(ev.State)
		return m.refreshRows()
	}
	m.engine.Load(ev.Tree)
	m.engine.SetSourceState(menu.SourceState{})
	return m.refreshRows()
}

// updateSearch handles keys while the search box has focus
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.search.Value() == "" {
			m.search.Blur()
			return m, nil
		}
		m.search.SetValue("")
		return m.commitQuery(""), nil

	case "enter", "tab", "down":
		m.search.Blur()
		return m.commitQuery(m.search.Value()), nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.debouncer.Push(value)
	}
	return m, cmd
}

// commitQuery applies a query right away, dropping any pending value
func (m Model) commitQuery(query string) Model {
	m.debouncer.Cancel()
	m.engine.SetQuery(query)
	return m.refreshRows()
}

// handleKey handles keys while the row list has focus
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "/":
		if !m.sidebarOpen {
			m = m.setSidebarOpen(true)
		}
		cmd := m.search.Focus()
		return m, cmd

	case "esc":
		switch {
		case m.detailPanelOpen:
			m.detailPanelOpen = false
		case m.engine.QueryActive():
			m.search.SetValue("")
			m = m.commitQuery("")
		}
		return m, nil

	case "up", "k":
		m.rowList.CursorUp()
		return m, nil

	case "down", "j":
		m.rowList.CursorDown()
		return m, nil

	case "enter", " ":
		return m.activateSelected(), nil

	case "right", "l":
		if row, ok := m.selectedRow(); ok && row.Item.HasChildren && !row.Expanded && m.sidebarOpen {
			m.engine.Toggle(row.Item.Code())
			m = m.refreshRows()
		}
		return m, nil

	case "left", "h":
		return m.collapseOrParent(), nil

	case "[":
		return m.setSidebarOpen(!m.sidebarOpen), nil

	case "d":
		if m.sidebarOpen {
			m.detailPanelOpen = !m.detailPanelOpen
		}
		return m, nil

	case "r":
		cmd := m.reloadCmd()
		return m.refreshRows(), cmd
	}

	var cmd tea.Cmd
	m.rowList, cmd = m.rowList.Update(msg)
	return m, cmd
}

// activateSelected applies a click on the row under the cursor
func (m Model) activateSelected() Model {
	row, ok := m.selectedRow()
	if !ok {
		return m
	}

	code := row.Item.Code()
	action := m.engine.Activate(code, m.sidebarOpen)
	m.log.Debug("row activated", zap.String("code", code), zap.Stringer("action", action))

	switch action {
	case menu.ActionNavigate:
		m.lastAction = "→ " + m.engine.ActivePath()
	case menu.ActionOpenSidebar:
		m.lastAction = ""
		return m.setSidebarOpen(true)
	}
	return m.refreshRows()
}

// collapseOrParent closes an expanded row, or moves to its parent
func (m Model) collapseOrParent() Model {
	row, ok := m.selectedRow()
	if !ok || !m.sidebarOpen {
		return m
	}
	if row.Item.HasChildren && row.Expanded {
		m.engine.Toggle(row.Item.Code())
		return m.refreshRows()
	}

	items := m.rowList.Items()
	for i := m.rowList.Index() - 1; i >= 0; i-- {
		if parent, ok := items[i].(rowItem); ok && parent.row.Depth < row.Depth {
			m.rowList.Select(i)
			break
		}
	}
	return m
}

// setSidebarOpen switches between the full and the collapsed sidebar
func (m Model) setSidebarOpen(open bool) Model {
	m.sidebarOpen = open
	if !open {
		m.search.Blur()
		m.detailPanelOpen = false
	}
	return m.updateListSizes().refreshRows()
}
