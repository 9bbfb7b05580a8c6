package menu

import (
	"go.uber.org/zap"
)

// SourceState mirrors the flags of the menu data source.
type SourceState struct {
	Loading  bool
	Fetching bool
	Err      error
}

// Status classifies what a renderer should show instead of, or along with, the tree.
type Status int

const (
	StatusReady     Status = iota // Tree with at least one visible node
	StatusLoading                 // Source is loading or refetching
	StatusError                   // Source failed
	StatusEmpty                   // No menu loaded
	StatusNoMatches               // Menu loaded, query matched nothing
)

// String returns the status name used in logs and JSON.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	case StatusNoMatches:
		return "no_matches"
	default:
		return "unknown"
	}
}

// Recorder receives engine counters. See metric.EngineRecorder.
type Recorder interface {
	FilterPass(result string)
	Toggle(target string)
	Reveal(added int)
}

type nopRecorder struct{}

func (nopRecorder) FilterPass(string) {}
func (nopRecorder) Toggle(string)     {}
func (nopRecorder) Reveal(int)        {}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.rec = r
		}
	}
}

// Engine owns the expansion state of one rendered sidebar.
// It is not safe for concurrent use; drive it from a single event loop.
type Engine struct {
	tree       []*Node
	state      SourceState
	activePath string

	filtered []*FilteredNode
	store    *ExpansionStore
	overlay  *SearchOverlay

	// resolved caches ResolveExpanded until state changes
	resolved CodeSet

	log *zap.Logger
	rec Recorder
}

// NewEngine creates an engine with no menu loaded.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		store:    NewExpansionStore(),
		overlay:  NewSearchOverlay(),
		filtered: []*FilteredNode{},
		log:      zap.NewNop(),
		rec:      nopRecorder{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load installs a new tree. Manual and search state belong to the previous
// tree and are discarded; the committed query and active path are kept.
func (e *Engine) Load(tree []*Node) {
	e.tree = tree
	e.store.Reset()

	query := e.overlay.Query()
	e.overlay.Reset()
	e.refilter(query)

	added := RevealActive(e.tree, e.activePath, e.store.Set())
	e.resolved = nil

	e.log.Debug("menu loaded",
		zap.Int("nodes", Count(tree)),
		zap.String("query", query),
		zap.Int("revealed", added),
	)
}

// Tree returns the raw tree.
func (e *Engine) Tree() []*Node {
	return e.tree
}

// TreeLen returns the number of root entries in the raw tree.
func (e *Engine) TreeLen() int {
	return len(e.tree)
}

// Find looks up a node of the raw tree by code.
func (e *Engine) Find(code string) *Node {
	return Find(e.tree, code)
}

// SetSourceState records the data source flags.
func (e *Engine) SetSourceState(s SourceState) {
	e.state = s
}

// SourceState returns the last recorded data source flags.
func (e *Engine) SourceState() SourceState {
	return e.state
}

// SetQuery commits a query. Callers debounce raw input first
// (see QueryDebouncer). A value equal to the committed one is a no-op.
func (e *Engine) SetQuery(text string) {
	query := NormalizeQuery(text)
	if query == e.overlay.Query() {
		return
	}
	e.refilter(query)
	e.resolved = nil
}

// refilter runs one filter pass and feeds the overlay.
func (e *Engine) refilter(query string) {
	e.filtered = Filter(e.tree, query)
	e.overlay.Commit(query, e.filtered)

	result := "all"
	if query != "" {
		result = "match"
		if len(e.filtered) == 0 {
			result = "none"
		}
	}
	e.rec.FilterPass(result)
}

// Query returns the committed query.
func (e *Engine) Query() string {
	return e.overlay.Query()
}

// QueryActive reports whether a non-empty query is committed.
func (e *Engine) QueryActive() bool {
	return e.overlay.Active()
}

// VisibleTree returns the filtered tree, or nothing while the source is
// loading or failing.
func (e *Engine) VisibleTree() []*FilteredNode {
	if e.state.Loading || e.state.Fetching || e.state.Err != nil {
		return []*FilteredNode{}
	}
	return e.filtered
}

// Status tells renderers which placeholder, if any, to show.
func (e *Engine) Status() Status {
	switch {
	case e.state.Loading || e.state.Fetching:
		return StatusLoading
	case e.state.Err != nil:
		return StatusError
	case len(e.tree) == 0:
		return StatusEmpty
	case len(e.filtered) == 0:
		return StatusNoMatches
	default:
		return StatusReady
	}
}

// Expanded returns the reconciled expanded set. The result is shared until
// the next state change; do not modify it.
func (e *Engine) Expanded() CodeSet {
	if e.resolved == nil {
		e.resolved = ResolveExpanded(
			e.store.Set(),
			e.overlay.AutoExpanded(),
			e.overlay.Overrides(),
			e.overlay.Active(),
		)
	}
	return e.resolved
}

// IsExpanded reports whether code renders expanded.
func (e *Engine) IsExpanded(code string) bool {
	return e.Expanded().Has(code)
}

// Toggle flips the expansion of code. While a search is auto-expanding the
// node the flip is recorded as a search override; otherwise it goes to the
// manual store.
func (e *Engine) Toggle(code string) {
	target := "manual"
	if e.overlay.ToggleUnderSearch(code) {
		target = "override"
	} else {
		e.store.Toggle(code)
	}
	e.resolved = nil
	e.rec.Toggle(target)
	e.log.Debug("menu toggled", zap.String("code", code), zap.String("target", target))
}

// ActivePath returns the current navigation path.
func (e *Engine) ActivePath() string {
	return e.activePath
}

// SetActivePath records the navigated path and reveals its ancestors.
// It reports how many ancestors were newly expanded.
func (e *Engine) SetActivePath(path string) int {
	if path == e.activePath {
		return 0
	}
	e.activePath = path
	return e.Reveal()
}

// Reveal expands the ancestors of the active node in the manual store.
func (e *Engine) Reveal() int {
	added := RevealActive(e.tree, e.activePath, e.store.Set())
	if added > 0 {
		e.resolved = nil
		e.log.Debug("active route revealed",
			zap.String("path", e.activePath),
			zap.Int("added", added),
		)
	}
	e.rec.Reveal(added)
	return added
}

// Manual returns a copy of the manual expansion set.
func (e *Engine) Manual() CodeSet {
	return e.store.Set().Clone()
}

// SearchAutoExpanded returns a copy of the search-driven expansion set.
func (e *Engine) SearchAutoExpanded() CodeSet {
	return e.overlay.AutoExpanded().Clone()
}

// CollapseOverrides returns a copy of the search collapse overrides.
func (e *Engine) CollapseOverrides() CodeSet {
	return e.overlay.Overrides().Clone()
}
