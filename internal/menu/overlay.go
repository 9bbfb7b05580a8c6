package menu

// SearchOverlay tracks expansion forced by an active search and the
// collapses the user applied on top of it.
type SearchOverlay struct {
	query     string
	auto      CodeSet
	overrides CodeSet
}

// NewSearchOverlay returns an overlay with no active query.
func NewSearchOverlay() *SearchOverlay {
	return &SearchOverlay{auto: CodeSet{}, overrides: CodeSet{}}
}

// CollectAutoExpanded returns every code on the path from a root to a match.
// Only nodes flagged ShouldAutoExpand are collected and descended into.
func CollectAutoExpanded(filtered []*FilteredNode) CodeSet {
	codes := CodeSet{}
	var collect func(nodes []*FilteredNode)
	collect = func(nodes []*FilteredNode) {
		for _, f := range nodes {
			if f.ShouldAutoExpand && len(f.Children) > 0 {
				codes.Add(f.Code())
				collect(f.Children)
			}
		}
	}
	collect(filtered)
	return codes
}

// Commit installs the result of a filter pass for a committed query.
// Overrides belong to the query they were made under, so any change of the
// committed query drops them; clearing the query always does.
func (o *SearchOverlay) Commit(query string, filtered []*FilteredNode) {
	query = NormalizeQuery(query)
	if query != o.query || query == "" {
		o.overrides = CodeSet{}
	}
	o.query = query

	if query == "" {
		o.auto = CodeSet{}
		return
	}
	o.auto = CollectAutoExpanded(filtered)
}

// ToggleUnderSearch flips the override for code when the active search is
// auto-expanding it. It returns false when the toggle does not belong to the
// overlay and should go to the manual store instead.
func (o *SearchOverlay) ToggleUnderSearch(code string) bool {
	if !o.Active() || !o.auto.Has(code) {
		return false
	}
	o.overrides.Toggle(code)
	return true
}

// Active reports whether a non-empty query is committed.
func (o *SearchOverlay) Active() bool {
	return o.query != ""
}

// Query returns the committed, normalized query.
func (o *SearchOverlay) Query() string {
	return o.query
}

// AutoExpanded exposes the live auto-expand set. Callers must not keep it.
func (o *SearchOverlay) AutoExpanded() CodeSet {
	return o.auto
}

// Overrides exposes the live override set. Callers must not keep it.
func (o *SearchOverlay) Overrides() CodeSet {
	return o.overrides
}

// Reset drops all search state.
func (o *SearchOverlay) Reset() {
	o.query = ""
	o.auto = CodeSet{}
	o.overrides = CodeSet{}
}
