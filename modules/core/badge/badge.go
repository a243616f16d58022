// Package badge folds the pending access-request and transaction counters
// into the single number shown on the navigation badge.
package badge

import (
	"sync"

	"parttrack/modules/platform/viewstate"
)

// Counts is the latest pair of counter values
type Counts struct {
	Acl          int `json:"acl"`
	Transactions int `json:"transactions"`
}

// Sum returns the combined count
func (c Counts) Sum() int { return c.Acl + c.Transactions }

// Accumulate folds c into acc. A zero pair resets the badge; any other
// pair is added on top of the running total.
func Accumulate(acc int, c Counts) int {
	sum := c.Sum()
	if sum == 0 {
		return 0
	}
	return acc + sum
}

// Aggregator combines the latest value of two counters and publishes the
// running total once both have been seen
type Aggregator struct {
	// emitMu keeps folds and badge updates in the same order
	emitMu sync.Mutex

	mu      sync.Mutex
	latest  Counts
	seenAcl bool
	seenTx  bool
	acc     int
	out     *viewstate.ViewState[int]
	aclSub  *viewstate.Subscription[int]
	txSub   *viewstate.Subscription[int]
}

// NewAggregator subscribes to both counters. Because cells replay their
// current value, the first total is available as soon as this returns.
func NewAggregator(acl, transactions *viewstate.ViewState[int]) *Aggregator {
	a := &Aggregator{out: viewstate.New(0)}
	a.aclSub = acl.Subscribe(func(n int) {
		a.push(func(c *Counts) { c.Acl = n }, &a.seenAcl)
	})
	a.txSub = transactions.Subscribe(func(n int) {
		a.push(func(c *Counts) { c.Transactions = n }, &a.seenTx)
	})
	return a
}

func (a *Aggregator) push(set func(*Counts), seen *bool) {
	a.emitMu.Lock()
	defer a.emitMu.Unlock()

	a.mu.Lock()
	set(&a.latest)
	*seen = true
	if !a.seenAcl || !a.seenTx {
		a.mu.Unlock()
		return
	}
	a.acc = Accumulate(a.acc, a.latest)
	total := a.acc
	a.mu.Unlock()

	a.out.Update(total)
}

// Total returns the cell carrying the badge value
func (a *Aggregator) Total() *viewstate.ViewState[int] { return a.out }

// Latest returns the last pair of counter values
func (a *Aggregator) Latest() Counts {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latest
}

// Close detaches from both counters and from every badge subscriber
func (a *Aggregator) Close() {
	a.aclSub.Unsubscribe()
	a.txSub.Unsubscribe()
	a.out.Close()
}
