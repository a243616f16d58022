package eventbus

import (
	"encoding/json"
	"testing"
	"time"
)

func waitEvent(t *testing.T, ch <-chan *Event) *Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishFiltersByType(t *testing.T) {
	bus := NewBus()
	acl := make(chan *Event, 4)
	all := make(chan *Event, 4)
	bus.Subscribe([]EventType{EventAclUpdated}, func(e *Event) { acl <- e })
	bus.Subscribe(nil, func(e *Event) { all <- e })

	bus.Publish(NewEvent(EventAssetUpdated).WithSource("assets"))
	bus.Publish(NewEvent(EventAclUpdated).WithData("pending", 2))

	got := waitEvent(t, acl)
	if got.Type != EventAclUpdated || got.Data["pending"] != 2 {
		t.Fatalf("unexpected acl event %+v", got)
	}
	waitEvent(t, all)
	waitEvent(t, all)

	select {
	case extra := <-acl:
		t.Fatalf("acl subscriber received unrelated event %s", extra.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()
	ch := make(chan *Event, 1)
	id := bus.Subscribe(nil, func(e *Event) { ch <- e })
	bus.Unsubscribe(id)

	bus.Publish(NewEvent(EventNotification))

	select {
	case <-ch:
		t.Fatal("unsubscribed handler was called")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHistory(t *testing.T) {
	bus := NewBus()
	bus.Publish(NewEvent(EventAssetUpdated))
	bus.Publish(NewEvent(EventAclUpdated))
	bus.Publish(NewEvent(EventAssetUpdated).WithSource("second"))

	if got := bus.GetHistory(0); len(got) != 3 {
		t.Fatalf("history length = %d, want 3", len(got))
	}
	if got := bus.GetHistory(1); got[0].Source != "second" {
		t.Fatalf("latest history entry = %+v", got[0])
	}

	assets := bus.GetHistoryByType([]EventType{EventAssetUpdated}, 10)
	if len(assets) != 2 || assets[0].Source != "" || assets[1].Source != "second" {
		t.Fatalf("history by type should be oldest first: %+v", assets)
	}
}

func TestEventJSON(t *testing.T) {
	ev := NewEvent(EventBadgeUpdated).WithData("total", 3)
	data, err := ev.JSON()
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != string(EventBadgeUpdated) || decoded["id"] == "" {
		t.Fatalf("unexpected payload %s", data)
	}
}

func TestSubscriberSeesPublishOrder(t *testing.T) {
	bus := NewBus()
	const n = 2000
	got := make(chan int, n)
	bus.Subscribe([]EventType{EventBadgeUpdated}, func(e *Event) {
		got <- e.Data["seq"].(int)
	})

	for i := 0; i < n; i++ {
		bus.Publish(NewEvent(EventBadgeUpdated).WithData("seq", i))
	}

	for want := 0; want < n; want++ {
		select {
		case seq := <-got:
			if seq != want {
				t.Fatalf("event %d delivered at position %d", seq, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d events", want)
		}
	}
}
