package assetslist

import (
	"context"
	"fmt"

	"parttrack/modules/core/feature"
	"parttrack/modules/platform/config"
	"parttrack/modules/platform/metrics"
)

// Facade sequences list requests and drives the list State
type Facade struct {
	feature.Base
	service   Service
	state     *State
	pageLimit int
}

// NewFacade creates a list facade requesting pageLimit rows per page
func NewFacade(service Service, state *State, pageLimit int, opts ...feature.Option) *Facade {
	if pageLimit <= 0 {
		pageLimit = config.DefaultPageLimit
	}
	return &Facade{
		Base:      feature.NewBase("assetslist", opts...),
		service:   service,
		state:     state,
		pageLimit: pageLimit,
	}
}

// State returns the state driven by this facade
func (f *Facade) State() *State { return f.state }

// LoadFirstPage applies filter and fetches its first page
func (f *Facade) LoadFirstPage(ctx context.Context, filter Filter) {
	f.state.SetFilter(filter)
	f.fetch(ctx, DirectionFirst, 1)
}

// NextPage fetches the page after the current window, if any
func (f *Facade) NextPage(ctx context.Context) {
	p := f.state.Pagination().Snapshot()
	if !HasNext(p) {
		return
	}
	f.fetch(ctx, DirectionNext, p.CurrentPage+1)
}

// PreviousPage fetches the page before the current window, if any
func (f *Facade) PreviousPage(ctx context.Context) {
	p := f.state.Pagination().Snapshot()
	if !HasPrevious(p) {
		return
	}
	f.fetch(ctx, DirectionPrevious, p.CurrentPage-1)
}

func (f *Facade) fetch(ctx context.Context, direction Direction, page int) {
	done := f.Track(string(direction))
	f.state.SetAssetsLoading()

	query := PageQuery(f.state.Filter().Snapshot(), page, f.pageLimit)
	resp, err := f.service.ListAssets(ctx, query)
	if err != nil {
		done(err)
		f.state.SetAssetsError(err)
		f.Notify("Could not load parts", err)
		return
	}

	if direction == DirectionFirst && len(resp.Data) == 0 {
		done(fmt.Errorf("%w: %w", metrics.ErrEmpty, ErrNoResults))
		f.state.SetNoResults(resp)
		return
	}

	if err := f.state.SetPage(direction, page, resp); err != nil {
		done(err)
		f.state.SetAssetsError(err)
		return
	}
	done(nil)
}

// Export fetches every row matching the active filter in one request and
// shapes it for export
func (f *Facade) Export(ctx context.Context) {
	done := f.Track("export")
	f.state.SetExportLoading()

	limit := f.state.Pagination().Snapshot().Total
	if limit < f.pageLimit {
		limit = f.pageLimit
	}

	resp, err := f.service.ListAssets(ctx, PageQuery(f.state.Filter().Snapshot(), 1, limit))
	done(err)
	if err != nil {
		f.state.SetExportError(err)
		f.Notify("Export failed", err)
		return
	}
	f.state.SetExport(resp.Data)
}

// Reset clears the list, used when navigating away
func (f *Facade) Reset() {
	f.state.Reset()
}
