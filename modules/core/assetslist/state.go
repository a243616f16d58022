package assetslist

import (
	"parttrack/modules/core/assets"
	"parttrack/modules/platform/transport"
	"parttrack/modules/platform/viewstate"
	"parttrack/modules/ui/core"
)

// State owns the assets list cells
type State struct {
	assets     *viewstate.ViewState[core.View[[]assets.Asset]]
	pagination *viewstate.ViewState[Pagination]
	filter     *viewstate.ViewState[Filter]
	export     *viewstate.ViewState[core.View[[][]string]]
}

// NewState creates empty list cells
func NewState() *State {
	return &State{
		assets:     viewstate.New(core.View[[]assets.Asset]{}),
		pagination: viewstate.New(Pagination{}),
		filter:     viewstate.New(Filter{}),
		export:     viewstate.New(core.View[[][]string]{}),
	}
}

// Assets returns the cell holding the rows of the current page
func (s *State) Assets() *viewstate.ViewState[core.View[[]assets.Asset]] { return s.assets }

// Pagination returns the cell holding the current window
func (s *State) Pagination() *viewstate.ViewState[Pagination] { return s.pagination }

// Filter returns the cell holding the active filter
func (s *State) Filter() *viewstate.ViewState[Filter] { return s.filter }

// Export returns the cell holding the last export
func (s *State) Export() *viewstate.ViewState[core.View[[][]string]] { return s.export }

// SetFilter replaces the active filter
func (s *State) SetFilter(f Filter) {
	s.filter.Update(f)
}

// SetAssetsLoading marks the list as refreshing, rows stay on display
func (s *State) SetAssetsLoading() {
	s.assets.Update(core.Refreshing(s.assets.Snapshot()))
}

// SetPage computes the next window and stores the page rows. The window
// is written first so a list subscriber always sees a matching footer.
func (s *State) SetPage(direction Direction, currentPage int, page transport.ListResponse[[]assets.Asset]) error {
	next, err := Paginate(direction, currentPage, page, s.pagination.Snapshot())
	if err != nil {
		return err
	}
	s.pagination.Update(next)
	s.assets.Update(core.Loaded(page.Data))
	return nil
}

// SetNoResults clears rows and window after an empty first page
func (s *State) SetNoResults(page transport.ListResponse[[]assets.Asset]) {
	s.pagination.Update(SetInitialPagination(1, page))
	s.assets.Update(core.Failed[[]assets.Asset](ErrNoResults))
}

// SetAssetsError records a failure without clearing displayed rows
func (s *State) SetAssetsError(err error) {
	s.assets.Update(core.FailedWith(s.assets.Snapshot(), err))
}

// SetExportLoading marks an export as in flight
func (s *State) SetExportLoading() {
	s.export.Update(core.Loading[[][]string]())
}

// SetExport shapes rows for export
func (s *State) SetExport(list []assets.Asset) {
	s.export.Update(core.Loaded(ExportRows(list)))
}

// SetExportError records a failed export
func (s *State) SetExportError(err error) {
	s.export.Update(core.Failed[[][]string](err))
}

// Reset restores every cell to its empty state
func (s *State) Reset() {
	s.assets.Reset()
	s.pagination.Reset()
	s.filter.Reset()
	s.export.Reset()
}

// Close detaches every subscriber, ending the screen session
func (s *State) Close() {
	s.assets.Close()
	s.pagination.Close()
	s.filter.Close()
	s.export.Close()
}
