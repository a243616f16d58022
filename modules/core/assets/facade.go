package assets

import (
	"context"
	"fmt"

	"parttrack/modules/core/feature"
	"parttrack/modules/platform/metrics"
)

// Facade sequences asset requests and drives the asset State
type Facade struct {
	feature.Base
	service Service
	state   *State
}

// NewFacade creates a facade over service writing into state
func NewFacade(service Service, state *State, opts ...feature.Option) *Facade {
	return &Facade{
		Base:    feature.NewBase("assets", opts...),
		service: service,
		state:   state,
	}
}

// State returns the state driven by this facade
func (f *Facade) State() *State { return f.state }

// LoadAsset fetches and reconciles one asset. Failures land in the asset
// view; previously displayed data is kept.
func (f *Facade) LoadAsset(ctx context.Context, serial string) {
	done := f.Track("load_asset")
	f.state.SetAssetLoading()

	raw, err := f.service.GetAsset(ctx, serial)
	if err == nil && raw.SerialNumberManufacturer == "" {
		err = fmt.Errorf("%s: %w", serial, ErrPartNotFound)
		done(fmt.Errorf("%w: %w", metrics.ErrEmpty, err))
		f.state.SetAssetError(ErrPartNotFound)
		f.Notify("Part not found", err)
		return
	}
	done(err)
	if err != nil {
		f.state.SetAssetError(err)
		f.Notify("Could not load part", err)
		return
	}

	node := f.state.SetAsset(raw)
	f.Log.Debug("asset %s loaded with %d children, %d missing", serial, len(node.ChildComponents), len(node.Missing))
}

// LoadChild fetches one child by serial number and swaps the reconciled
// result into the children list
func (f *Facade) LoadChild(ctx context.Context, serial string) {
	done := f.Track("load_child")
	f.state.SetChildLoading()

	raw, err := f.service.GetAsset(ctx, serial)
	if err == nil && raw.SerialNumberManufacturer == "" {
		done(fmt.Errorf("%w: %s", metrics.ErrEmpty, serial))
		f.state.SetChildError(ErrPartNotFound)
		f.Notify("Part not found", fmt.Errorf("%s: %w", serial, ErrPartNotFound))
		return
	}
	done(err)
	if err != nil {
		f.state.SetChildError(err)
		f.Notify("Could not load component", err)
		return
	}

	f.state.SetChild(raw)
}

// LoadChangelog fetches the transactions of an asset and assembles its
// timeline. The asset already on display is reused when it matches.
func (f *Facade) LoadChangelog(ctx context.Context, serial string) {
	done := f.Track("load_changelog")
	f.state.SetChangelogLoading()

	var asset Asset
	current := f.state.Asset().Snapshot()
	if current.HasData() && current.Value().SerialNumberManufacturer == serial {
		asset = current.Value().Asset
	} else {
		fetched, err := f.service.GetAsset(ctx, serial)
		if err == nil && fetched.SerialNumberManufacturer == "" {
			done(fmt.Errorf("%w: %s", metrics.ErrEmpty, serial))
			f.state.SetChangelogError(ErrPartNotFound)
			f.Notify("Part not found", fmt.Errorf("%s: %w", serial, ErrPartNotFound))
			return
		}
		if err != nil {
			done(err)
			f.state.SetChangelogError(err)
			f.Notify("Could not load changelog", err)
			return
		}
		asset = fetched
	}

	transactions, err := f.service.GetTransactions(ctx, serial)
	done(err)
	if err != nil {
		f.state.SetChangelogError(err)
		f.Notify("Could not load changelog", err)
		return
	}

	f.state.SetChangelog(asset, transactions)
}

// Reset clears the asset screen, used when navigating away
func (f *Facade) Reset() {
	f.state.Reset()
}
