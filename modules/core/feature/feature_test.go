package feature

import (
	"testing"
	"time"

	"parttrack/modules/platform/eventbus"
	"parttrack/modules/platform/viewstate"
	"parttrack/modules/ui/core"
)

func TestForwardKeepsCellOrder(t *testing.T) {
	bus := eventbus.NewBus()
	const n = 2000
	views := make(chan core.View[int], n+1)
	bus.Subscribe([]eventbus.EventType{eventbus.EventBadgeUpdated}, func(e *eventbus.Event) {
		views <- e.Data["view"].(core.View[int])
	})

	cell := viewstate.New(core.View[int]{})
	sub := Forward(bus, eventbus.EventBadgeUpdated, "badge", cell)
	defer sub.Unsubscribe()

	for i := 1; i <= n; i++ {
		cell.Update(core.Loaded(i))
	}

	// replayed empty view first, then every update in order
	for want := 0; want <= n; want++ {
		select {
		case v := <-views:
			if v.Value() != want {
				t.Fatalf("position %d carried %d", want, v.Value())
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d views", want)
		}
	}
}

func TestForwardEndsWithLoadedView(t *testing.T) {
	bus := eventbus.NewBus()
	views := make(chan core.View[string], 8)
	bus.Subscribe(nil, func(e *eventbus.Event) {
		views <- e.Data["view"].(core.View[string])
	})

	cell := viewstate.New(core.View[string]{})
	Forward(bus, eventbus.EventDashboardUpdated, "dashboard", cell)
	cell.Update(core.Refreshing(cell.Snapshot()))
	cell.Update(core.Loaded("ready"))

	var last core.View[string]
	for i := 0; i < 3; i++ {
		select {
		case last = <-views:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for views")
		}
	}
	if last.Loader || last.Value() != "ready" {
		t.Fatalf("last view = %+v, want loaded data", last)
	}
}
