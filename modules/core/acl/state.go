package acl

import (
	"parttrack/modules/platform/viewstate"
	"parttrack/modules/ui/core"
)

// State owns the access-control cells and the two badge counters
type State struct {
	entries          *viewstate.ViewState[core.View[Acl]]
	pendingCount     *viewstate.ViewState[int]
	transactionCount *viewstate.ViewState[int]
}

// NewState creates empty access-control cells
func NewState() *State {
	return &State{
		entries:          viewstate.New(core.View[Acl]{}),
		pendingCount:     viewstate.New(0),
		transactionCount: viewstate.New(0),
	}
}

// Entries returns the cell holding the grouped access list
func (s *State) Entries() *viewstate.ViewState[core.View[Acl]] { return s.entries }

// PendingCount returns the pending access request counter
func (s *State) PendingCount() *viewstate.ViewState[int] { return s.pendingCount }

// TransactionCount returns the pending transaction counter
func (s *State) TransactionCount() *viewstate.ViewState[int] { return s.transactionCount }

// SetEntriesLoading marks the list as refreshing
func (s *State) SetEntriesLoading() {
	s.entries.Update(core.Refreshing(s.entries.Snapshot()))
}

// SetEntries groups entries and derives the pending counter
func (s *State) SetEntries(entries []Entry) Acl {
	grouped := AssembleAcl(entries)
	s.entries.Update(core.Loaded(grouped))
	s.pendingCount.Update(PendingCount(grouped))
	return grouped
}

// SetEntriesError records a failure without clearing the list
func (s *State) SetEntriesError(err error) {
	s.entries.Update(core.FailedWith(s.entries.Snapshot(), err))
}

// SetCounts replaces both badge counters
func (s *State) SetCounts(c Counts) {
	s.pendingCount.Update(nonNegative(c.PendingAcl))
	s.transactionCount.Update(nonNegative(c.Transactions))
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Reset restores every cell to its empty state
func (s *State) Reset() {
	s.entries.Reset()
	s.pendingCount.Reset()
	s.transactionCount.Reset()
}

// Close detaches every subscriber, ending the screen session
func (s *State) Close() {
	s.entries.Close()
	s.pendingCount.Close()
	s.transactionCount.Close()
}
