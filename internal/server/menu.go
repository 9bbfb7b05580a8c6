package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"navmenu/internal/menu"
	"navmenu/internal/source"
)

// ErrNotLoaded is reported by readiness until a menu has loaded once.
var ErrNotLoaded = errors.New("menu not loaded")

// MenuState holds the latest tree from the data source. It is shared by
// request handlers and the goroutine that follows the source.
type MenuState struct {
	mu     sync.RWMutex
	tree   []*menu.Node
	state  menu.SourceState
	loaded bool
}

// NewMenuState creates a state that reports loading until the first update.
func NewMenuState() *MenuState {
	return &MenuState{state: menu.SourceState{Loading: true}}
}

// Update records a source event. A failed load keeps the previous tree.
func (m *MenuState) Update(ev source.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.State.Err == nil {
		m.loaded = true
	}
	m.tree = ev.Tree
	m.state = ev.State
}

// Snapshot returns the current tree and source flags.
func (m *MenuState) Snapshot() ([]*menu.Node, menu.SourceState) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree, m.state
}

// Ready implements ReadinessChecker.
func (m *MenuState) Ready(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.loaded {
		return ErrNotLoaded
	}
	return nil
}

// Item is the JSON view of a visible node.
type Item struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Path        string `json:"path,omitempty"`
	Icon        string `json:"icon,omitempty"`
	HasChildren bool   `json:"has_children"`
	AutoExpand  bool   `json:"auto_expand"`
	Expanded    bool   `json:"expanded"`
	Active      bool   `json:"active,omitempty"`
	Children    []Item `json:"children,omitempty"`
}

// MenuResponse is the JSON view of an engine.
type MenuResponse struct {
	Status     string   `json:"status"`
	Error      string   `json:"error,omitempty"`
	Query      string   `json:"query"`
	ActivePath string   `json:"active_path,omitempty"`
	Items      []Item   `json:"items"`
	Expanded   []string `json:"expanded"`
	Manual     []string `json:"manual"`
}

// BuildResponse renders the engine. Children are listed under expanded
// nodes only, and only when the sidebar is open.
func BuildResponse(e *menu.Engine, sidebarOpen bool) MenuResponse {
	expanded := e.Expanded()
	active := e.ActivePath()

	var build func(nodes []*menu.FilteredNode) []Item
	build = func(nodes []*menu.FilteredNode) []Item {
		items := make([]Item, 0, len(nodes))
		for _, f := range nodes {
			item := Item{
				Code:        f.Node.Code,
				Name:        f.Node.Name,
				Path:        f.Node.Path,
				Icon:        f.Node.Icon,
				HasChildren: f.HasChildren,
				AutoExpand:  f.ShouldAutoExpand,
				Expanded:    expanded.Has(f.Code()),
				Active:      f.Node.HasPath() && f.Node.Path == active,
			}
			if item.HasChildren && item.Expanded && sidebarOpen {
				item.Children = build(f.Children)
			}
			items = append(items, item)
		}
		return items
	}

	resp := MenuResponse{
		Status:     e.Status().String(),
		Query:      e.Query(),
		ActivePath: active,
		Items:      build(e.VisibleTree()),
		Expanded:   expanded.Sorted(),
		Manual:     e.Manual().Sorted(),
	}
	if err := e.SourceState().Err; err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// MenuRequest is the client state replayed onto a fresh engine.
type MenuRequest struct {
	Query       string
	ActivePath  string
	Expanded    []string
	Collapsed   []string
	SidebarOpen bool
}

// ParseMenuRequest reads q, active, expanded, collapsed and sidebar from
// the query string. Code lists are comma separated.
func ParseMenuRequest(r *http.Request) MenuRequest {
	q := r.URL.Query()
	return MenuRequest{
		Query:       q.Get("q"),
		ActivePath:  q.Get("active"),
		Expanded:    splitCodes(q.Get("expanded")),
		Collapsed:   splitCodes(q.Get("collapsed")),
		SidebarOpen: q.Get("sidebar") != "closed",
	}
}

func splitCodes(s string) []string {
	var codes []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return menu.NewCodeSet(codes...).Sorted()
}

// Replay builds an engine over tree in the state the client described:
// manual expansion of known codes first, then the query, then collapse overrides for
// codes the query auto-expands, then the active route.
func Replay(tree []*menu.Node, state menu.SourceState, req MenuRequest, opts ...menu.Option) *menu.Engine {
	e := menu.NewEngine(opts...)
	e.Load(tree)
	e.SetSourceState(state)

	for _, code := range req.Expanded {
		if e.Find(code) != nil {
			e.Toggle(code)
		}
	}
	e.SetQuery(req.Query)

	auto := e.SearchAutoExpanded()
	for _, code := range req.Collapsed {
		if auto.Has(code) {
			e.Toggle(code)
		}
	}

	e.SetActivePath(req.ActivePath)
	return e
}

// MenuHandler answers GET /api/menu from the current state.
func MenuHandler(state *MenuState, log *zap.Logger, opts ...menu.Option) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := ParseMenuRequest(r)
		tree, srcState := state.Snapshot()
		e := Replay(tree, srcState, req, opts...)

		body, err := json.Marshal(BuildResponse(e, req.SidebarOpen))
		if err != nil {
			log.Error("failed to encode menu response", zap.Error(err))
			http.Error(w, "failed to encode menu", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	})
}
