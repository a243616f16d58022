// Package feature holds the plumbing every feature facade shares: logging,
// request metrics and user notifications over the event bus.
package feature

import (
	"time"

	"parttrack/modules/platform/eventbus"
	"parttrack/modules/platform/logger"
	"parttrack/modules/platform/metrics"
	"parttrack/modules/platform/viewstate"
	"parttrack/modules/ui/core"
)

// Base is embedded by every facade
type Base struct {
	Name    string
	Log     *logger.Logger
	Metrics *metrics.Recorder
	Bus     *eventbus.Bus
}

// Option configures a facade
type Option func(*Base)

// WithLogger sets the facade logger
func WithLogger(l *logger.Logger) Option {
	return func(b *Base) { b.Log = l }
}

// WithMetrics sets the request recorder
func WithMetrics(r *metrics.Recorder) Option {
	return func(b *Base) { b.Metrics = r }
}

// WithBus sets the bus used for user notifications
func WithBus(bus *eventbus.Bus) Option {
	return func(b *Base) { b.Bus = bus }
}

// NewBase applies opts over a discard logger and no metrics
func NewBase(name string, opts ...Option) Base {
	b := Base{Name: name}
	for _, opt := range opts {
		opt(&b)
	}
	if b.Log == nil {
		b.Log = logger.Discard()
	} else {
		b.Log = b.Log.With(name)
	}
	return b
}

// Track starts timing operation; call the returned func with the outcome
func (b *Base) Track(operation string) func(err error) {
	start := time.Now()
	b.Log.Debug("%s started", operation)
	return func(err error) {
		b.Metrics.Observe(b.Name, operation, start, err)
		if err != nil {
			b.Log.Warn("%s failed: %v", operation, err)
		}
	}
}

// Notify publishes a transient error notification
func (b *Base) Notify(title string, err error) {
	if b.Bus == nil || err == nil {
		return
	}
	b.Bus.Publish(eventbus.NewEvent(eventbus.EventNotification).
		WithSource(b.Name).
		WithData("notification", core.ErrorNotification(title, err)))
}

// Forward republishes every value of cell on bus as eventType, under the
// "view" key. The returned subscription detaches the forwarder.
func Forward[T any](bus *eventbus.Bus, eventType eventbus.EventType, source string, cell *viewstate.ViewState[T]) *viewstate.Subscription[T] {
	return cell.Subscribe(func(v T) {
		bus.Publish(eventbus.NewEvent(eventType).WithSource(source).WithData("view", v))
	})
}
