package menu

// Row is one rendered line of the sidebar.
type Row struct {
	Item     *FilteredNode
	Depth    int
	Expanded bool
	Active   bool
}

// Rows flattens the visible tree in display order. Children are listed only
// under expanded nodes, and only while the sidebar is open.
func (e *Engine) Rows(sidebarOpen bool) []Row {
	expanded := e.Expanded()
	var rows []Row

	var appendVisible func(nodes []*FilteredNode, depth int)
	appendVisible = func(nodes []*FilteredNode, depth int) {
		for _, f := range nodes {
			isExpanded := expanded.Has(f.Code())
			rows = append(rows, Row{
				Item:     f,
				Depth:    depth,
				Expanded: isExpanded,
				Active:   f.Node.HasPath() && f.Node.Path == e.activePath,
			})
			if f.HasChildren && isExpanded && sidebarOpen {
				appendVisible(f.Children, depth+1)
			}
		}
	}
	appendVisible(e.VisibleTree(), 0)
	return rows
}

// Action is what activating a node asks of the surrounding UI.
type Action int

const (
	ActionNone        Action = iota // Inert node or unknown code
	ActionToggle                    // Node expansion flipped
	ActionNavigate                  // Navigate to the node's path
	ActionOpenSidebar               // Expand the collapsed sidebar
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionToggle:
		return "toggle"
	case ActionNavigate:
		return "navigate"
	case ActionOpenSidebar:
		return "open_sidebar"
	default:
		return "none"
	}
}

// Activate applies a click on code and returns what the UI should do next.
//
// With the sidebar open, nodes with children toggle and clickable leaves
// navigate. With the sidebar collapsed, anything with a path navigates and
// everything else asks for the sidebar to open; manual state is left alone.
// Navigation updates the active path, which reveals the node's ancestors.
func (e *Engine) Activate(code string, sidebarOpen bool) Action {
	n := e.Find(code)
	if n == nil {
		return ActionNone
	}

	if !sidebarOpen {
		if n.HasPath() {
			e.SetActivePath(n.Path)
			return ActionNavigate
		}
		return ActionOpenSidebar
	}

	switch {
	case n.HasChildren():
		e.Toggle(code)
		return ActionToggle
	case n.IsClickable():
		e.SetActivePath(n.Path)
		return ActionNavigate
	default:
		return ActionNone
	}
}
