package dashboard

import (
	"parttrack/modules/platform/viewstate"
	"parttrack/modules/ui/core"
)

// State owns the dashboard cell
type State struct {
	dashboard *viewstate.ViewState[core.View[Dashboard]]
}

// NewState creates an empty dashboard cell
func NewState() *State {
	return &State{dashboard: viewstate.New(core.View[Dashboard]{})}
}

// Dashboard returns the cell holding the assembled dashboard
func (s *State) Dashboard() *viewstate.ViewState[core.View[Dashboard]] { return s.dashboard }

// SetDashboardLoading marks the dashboard as refreshing
func (s *State) SetDashboardLoading() {
	s.dashboard.Update(core.Refreshing(s.dashboard.Snapshot()))
}

// SetDashboard assembles and stores a summary
func (s *State) SetDashboard(summary Summary) {
	s.dashboard.Update(core.Loaded(AssembleDashboard(summary)))
}

// SetDashboardError records a failure, keeping the last dashboard
func (s *State) SetDashboardError(err error) {
	s.dashboard.Update(core.FailedWith(s.dashboard.Snapshot(), err))
}

// Reset restores the empty dashboard
func (s *State) Reset() { s.dashboard.Reset() }

// Close detaches every subscriber
func (s *State) Close() { s.dashboard.Close() }
