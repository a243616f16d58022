package dashboard

import (
	"context"

	"parttrack/modules/core/feature"
)

// Facade loads the dashboard into its State
type Facade struct {
	feature.Base
	service Service
	state   *State
}

// NewFacade creates a facade over service writing into state
func NewFacade(service Service, state *State, opts ...feature.Option) *Facade {
	return &Facade{
		Base:    feature.NewBase("dashboard", opts...),
		service: service,
		state:   state,
	}
}

// State returns the state driven by this facade
func (f *Facade) State() *State { return f.state }

// LoadDashboard fetches and assembles the summary
func (f *Facade) LoadDashboard(ctx context.Context) {
	done := f.Track("load_dashboard")
	f.state.SetDashboardLoading()

	summary, err := f.service.GetSummary(ctx)
	done(err)
	if err != nil {
		f.state.SetDashboardError(err)
		f.Notify("Could not load dashboard", err)
		return
	}
	f.state.SetDashboard(summary)
}

// Reset clears the dashboard
func (f *Facade) Reset() { f.state.Reset() }
