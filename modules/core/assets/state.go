package assets

import (
	"parttrack/modules/platform/viewstate"
	"parttrack/modules/ui/core"
)

// State owns the asset screen cells. Every data setter goes through the
// assembler before writing.
type State struct {
	asset     *viewstate.ViewState[core.View[Node]]
	children  *viewstate.ViewState[core.View[[]Node]]
	child     *viewstate.ViewState[core.View[Node]]
	changelog *viewstate.ViewState[core.View[[]ChangelogEntry]]
}

// NewState creates empty asset cells
func NewState() *State {
	return &State{
		asset:     viewstate.New(core.View[Node]{}),
		children:  viewstate.New(core.View[[]Node]{}),
		child:     viewstate.New(core.View[Node]{}),
		changelog: viewstate.New(core.View[[]ChangelogEntry]{}),
	}
}

// Asset returns the cell holding the reconciled asset
func (s *State) Asset() *viewstate.ViewState[core.View[Node]] { return s.asset }

// Children returns the cell holding the reconciled direct children
func (s *State) Children() *viewstate.ViewState[core.View[[]Node]] { return s.children }

// Child returns the cell holding the last child fetched by serial number
func (s *State) Child() *viewstate.ViewState[core.View[Node]] { return s.child }

// Changelog returns the cell holding the asset timeline
func (s *State) Changelog() *viewstate.ViewState[core.View[[]ChangelogEntry]] { return s.changelog }

// SetAssetLoading marks the asset as in flight, keeping displayed data
func (s *State) SetAssetLoading() {
	s.asset.Update(core.Refreshing(s.asset.Snapshot()))
}

// SetAsset reconciles raw and replaces the asset and its children
func (s *State) SetAsset(raw Asset) Node {
	node := Reconcile(raw)
	s.asset.Update(core.Loaded(node))
	s.children.Update(core.Loaded(ReconcileChildren(node)))
	return node
}

// SetAssetError records a failure without clearing displayed data
func (s *State) SetAssetError(err error) {
	s.asset.Update(core.FailedWith(s.asset.Snapshot(), err))
}

// SetChildLoading marks a child fetch as in flight
func (s *State) SetChildLoading() {
	s.child.Update(core.Refreshing(s.child.Snapshot()))
}

// SetChild reconciles a fetched child and swaps it into the children list
func (s *State) SetChild(raw Asset) Node {
	node := Reconcile(raw)
	s.child.Update(core.Loaded(node))

	children := s.children.Snapshot()
	if children.HasData() {
		s.children.Update(core.Loaded(ReplaceChild(children.Value(), node)))
	}
	return node
}

// SetChildError records a failed child fetch
func (s *State) SetChildError(err error) {
	s.child.Update(core.FailedWith(s.child.Snapshot(), err))
}

// SetChangelogLoading marks the timeline as in flight
func (s *State) SetChangelogLoading() {
	s.changelog.Update(core.Refreshing(s.changelog.Snapshot()))
}

// SetChangelog assembles and stores the timeline
func (s *State) SetChangelog(asset Asset, transactions []Transaction) {
	s.changelog.Update(core.Loaded(AssembleChangelog(asset, transactions)))
}

// SetChangelogError records a failed timeline fetch
func (s *State) SetChangelogError(err error) {
	s.changelog.Update(core.FailedWith(s.changelog.Snapshot(), err))
}

// Reset restores every cell to its empty state
func (s *State) Reset() {
	s.asset.Reset()
	s.children.Reset()
	s.child.Reset()
	s.changelog.Reset()
}

// Close detaches every subscriber, ending the screen session
func (s *State) Close() {
	s.asset.Close()
	s.children.Close()
	s.child.Close()
	s.changelog.Close()
}
