package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"navmenu/internal/menu"
	"navmenu/internal/source"
)

// ModelOptions configures NewModel. At most one of Watcher, Command and
// Tree is expected; with none the sidebar shows an empty menu.
type ModelOptions struct {
	Watcher *source.Watcher // Menu file to follow
	Command []string        // Command printing a JSON menu
	Tree    []*menu.Node    // Fixed menu

	ActivePath  string
	Query       string
	SidebarOpen bool
	Debounce    time.Duration
	Theme       string

	Logger   *zap.Logger
	Recorder menu.Recorder
}

// Model represents the application state
type Model struct {
	// Core state
	engine  *menu.Engine
	watcher *source.Watcher
	command []string
	log     *zap.Logger

	// Search state
	search    textinput.Model
	debouncer *menu.QueryDebouncer

	// UI components
	rowList     list.Model
	rowDelegate *rowDelegate

	sidebarOpen     bool
	detailPanelOpen bool

	// lastAction describes the most recent activation for the footer
	lastAction string

	// UI dimensions
	width  int
	height int
}

// NewModel creates a new Model with initialized state
func NewModel(opts ModelOptions) Model {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Theme != "" {
		SetTheme(opts.Theme)
	}

	engineOpts := []menu.Option{menu.WithLogger(log)}
	if opts.Recorder != nil {
		engineOpts = append(engineOpts, menu.WithRecorder(opts.Recorder))
	}
	engine := menu.NewEngine(engineOpts...)
	engine.SetActivePath(opts.ActivePath)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search menu"
	search.CharLimit = 64
	search.SetValue(opts.Query)

	delegate := newRowDelegate()

	m := Model{
		engine:      engine,
		watcher:     opts.Watcher,
		command:     opts.Command,
		log:         log,
		search:      search,
		debouncer:   menu.NewQueryDebouncer(opts.Debounce),
		rowDelegate: delegate,
		sidebarOpen: opts.SidebarOpen,
	}

	m.rowList = list.New([]list.Item{}, delegate, 0, 0)
	m.rowList.SetShowTitle(false)
	m.rowList.SetShowHelp(false)
	m.rowList.SetShowStatusBar(false)
	m.rowList.SetFilteringEnabled(false)
	m.rowList.DisableQuitKeybindings()

	engine.SetQuery(opts.Query)
	switch {
	case m.watcher != nil || len(m.command) > 0:
		engine.SetSourceState(menu.SourceState{Loading: true})
	case opts.Tree != nil:
		engine.Load(opts.Tree)
	}

	return m.refreshRows()
}

// Engine exposes the expansion engine, mainly for tests and the CLI
func (m Model) Engine() *menu.Engine {
	return m.engine
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForQueryCmd()}
	switch {
	case m.watcher != nil:
		cmds = append(cmds, m.waitForSourceCmd())
	case len(m.command) > 0:
		cmds = append(cmds, m.loadCommandCmd())
	}
	return tea.Batch(cmds...)
}

// Message types
type (
	sourceEventMsg    source.Event
	queryCommittedMsg string
	commandLoadedMsg  struct {
		tree []*menu.Node
		err  error
	}
)

// waitForSourceCmd returns a command that waits for the next menu reload
func (m Model) waitForSourceCmd() tea.Cmd {
	return func() tea.Msg {
		if m.watcher == nil {
			return nil
		}
		return sourceEventMsg(<-m.watcher.Events())
	}
}

// waitForQueryCmd returns a command that waits for the debounced query
func (m Model) waitForQueryCmd() tea.Cmd {
	return func() tea.Msg {
		return queryCommittedMsg(<-m.debouncer.C())
	}
}

// loadCommandCmd runs the menu command in the background
func (m Model) loadCommandCmd() tea.Cmd {
	command := m.command
	return func() tea.Msg {
		tree, err := source.FromCommand(context.Background(), command)
		return commandLoadedMsg{tree: tree, err: err}
	}
}

// reloadCmd asks the source for a fresh menu
func (m Model) reloadCmd() tea.Cmd {
	switch {
	case m.watcher != nil:
		w := m.watcher
		return func() tea.Msg {
			_ = w.Reload()
			return nil
		}
	case len(m.command) > 0:
		m.engine.SetSourceState(menu.SourceState{Fetching: true})
		return m.loadCommandCmd()
	default:
		return nil
	}
}

// refreshRows rebuilds the row list, keeping the cursor on the same code
func (m Model) refreshRows() Model {
	selected := m.SelectedCode()

	rows := m.engine.Rows(m.sidebarOpen)
	items := make([]list.Item, len(rows))
	cursor := 0
	for i, r := range rows {
		items[i] = rowItem{row: r}
		if r.Item.Code() == selected {
			cursor = i
		}
	}
	m.rowList.SetItems(items)
	m.rowList.Select(cursor)

	m.rowDelegate.SetCollapsed(!m.sidebarOpen)
	m.rowDelegate.SetQuery(m.engine.Query())
	return m
}

// updateListSizes updates list dimensions based on terminal size
func (m Model) updateListSizes() Model {
	// Reserve space for header (1), search box (3), help (2)
	listHeight := m.height - 6
	if !m.sidebarOpen {
		listHeight = m.height - 3
	}
	if listHeight < 3 {
		listHeight = 3
	}

	listWidth := m.sidebarWidth()
	m.rowDelegate.SetWidth(listWidth)
	m.rowList.SetSize(listWidth, listHeight)
	m.search.Width = listWidth - 6

	return m
}

// sidebarWidth is the width of the row list for the current mode
func (m Model) sidebarWidth() int {
	if !m.sidebarOpen {
		return CollapsedSidebarWidth
	}
	width := ExpandedSidebarWidth
	if m.width > 0 && m.width < width {
		width = m.width
	}
	return width
}

// SelectedCode returns the code under the cursor, or ""
func (m Model) SelectedCode() string {
	if item, ok := m.rowList.SelectedItem().(rowItem); ok {
		return item.Code()
	}
	return ""
}

// selectedRow returns the row under the cursor
func (m Model) selectedRow() (menu.Row, bool) {
	item, ok := m.rowList.SelectedItem().(rowItem)
	if !ok {
		return menu.Row{}, false
	}
	return item.row, true
}
