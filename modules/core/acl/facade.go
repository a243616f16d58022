package acl

import (
	"context"
	"fmt"

	"parttrack/modules/core/feature"

	"github.com/google/uuid"
)

// Facade sequences access-control requests and drives the acl State
type Facade struct {
	feature.Base
	service Service
	state   *State
}

// NewFacade creates a facade over service writing into state
func NewFacade(service Service, state *State, opts ...feature.Option) *Facade {
	return &Facade{
		Base:    feature.NewBase("acl", opts...),
		service: service,
		state:   state,
	}
}

// State returns the state driven by this facade
func (f *Facade) State() *State { return f.state }

// LoadAcl fetches and groups the access list
func (f *Facade) LoadAcl(ctx context.Context) {
	done := f.Track("load_acl")
	f.state.SetEntriesLoading()

	entries, err := f.service.ListAcl(ctx)
	done(err)
	if err != nil {
		f.state.SetEntriesError(err)
		f.Notify("Could not load access list", err)
		return
	}
	f.state.SetEntries(entries)
}

// Approve activates a pending entry
func (f *Facade) Approve(ctx context.Context, id string) {
	f.transition(ctx, "approve", id, StatusActive)
}

// Decline rejects a pending entry
func (f *Facade) Decline(ctx context.Context, id string) {
	f.transition(ctx, "decline", id, StatusInactive)
}

// Revoke deactivates an active entry
func (f *Facade) Revoke(ctx context.Context, id string) {
	f.transition(ctx, "revoke", id, StatusInactive)
}

func (f *Facade) transition(ctx context.Context, operation, id string, to Status) {
	current := f.state.Entries().Snapshot()
	if current.HasData() {
		if entry, ok := Find(current.Value(), id); ok && !CanTransition(entry.Status, to) {
			err := fmt.Errorf("%s %s from %s: %w", operation, id, entry.Status, ErrInvalidTransition)
			f.state.SetEntriesError(err)
			f.Notify("Action not allowed", err)
			return
		}
	}

	done := f.Track(operation)
	f.state.SetEntriesLoading()
	err := f.service.UpdateStatus(ctx, id, to)
	done(err)
	if err != nil {
		f.state.SetEntriesError(err)
		f.Notify("Could not update access", err)
		return
	}

	f.LoadAcl(ctx)
}

// RequestAccess asks grantingBPN for access to its parts and reloads
func (f *Facade) RequestAccess(ctx context.Context, grantingBPN, message string) {
	done := f.Track("request_access")
	f.state.SetEntriesLoading()

	_, err := f.service.RequestAccess(ctx, AccessRequest{
		RequestID:   uuid.NewString(),
		GrantingBPN: grantingBPN,
		Message:     message,
	})
	done(err)
	if err != nil {
		f.state.SetEntriesError(err)
		f.Notify("Could not request access", err)
		return
	}

	f.LoadAcl(ctx)
}

// RefreshCounters reloads both badge counters. A failed counter keeps its
// previous value.
func (f *Facade) RefreshCounters(ctx context.Context) {
	done := f.Track("refresh_counters")

	counts := Counts{
		PendingAcl:   f.state.PendingCount().Snapshot(),
		Transactions: f.state.TransactionCount().Snapshot(),
	}

	pending, pendingErr := f.service.CountPending(ctx)
	if pendingErr == nil {
		counts.PendingAcl = pending
	}
	transactions, txErr := f.service.CountTransactions(ctx)
	if txErr == nil {
		counts.Transactions = transactions
	}

	err := pendingErr
	if err == nil {
		err = txErr
	}
	done(err)
	if err != nil {
		f.Notify("Could not refresh counters", err)
	}

	f.state.SetCounts(counts)
}

// Reset clears the access screens
func (f *Facade) Reset() {
	f.state.Reset()
}
