package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestViewStates(t *testing.T) {
	var initial View[int]
	if !initial.IsEmpty() {
		t.Fatal("zero view should be empty")
	}
	if initial.Value() != 0 {
		t.Fatal("zero view value should be zero")
	}

	loaded := Loaded(7)
	if !loaded.HasData() || loaded.Value() != 7 || loaded.Loader || loaded.Error != nil {
		t.Fatalf("unexpected loaded view %+v", loaded)
	}

	refreshing := Refreshing(loaded)
	if !refreshing.Loader || refreshing.Value() != 7 {
		t.Fatalf("refreshing view should keep data: %+v", refreshing)
	}

	boom := errors.New("boom")
	failed := FailedWith(refreshing, boom)
	if failed.Loader || failed.Value() != 7 || !errors.Is(failed.Error, boom) {
		t.Fatalf("failed view should keep data and carry error: %+v", failed)
	}

	bare := Failed[int](boom)
	if bare.HasData() {
		t.Fatal("bare failure should not carry data")
	}
	if !Loading[string]().Loader {
		t.Fatal("loading view should set loader")
	}
}

func TestViewMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		view View[string]
		want string
	}{
		{"empty", View[string]{}, `{}`},
		{"loading", Loading[string](), `{"loader":true}`},
		{"loaded", Loaded("ok"), `{"data":"ok"}`},
		{"failed with data", FailedWith(Loaded("ok"), errors.New("down")), `{"data":"ok","error":"down"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.view)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}
