package assets

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func serials(nodes []Asset) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.SerialNumberManufacturer)
	}
	return out
}

func TestReconcileFillsMissingChildren(t *testing.T) {
	raw := Asset{
		SerialNumberManufacturer: "ROOT",
		QualityStatus:            StatusOK,
		ComponentsSerialNumbers:  []string{"A", "B", "C"},
		ChildComponents: []Asset{
			{SerialNumberManufacturer: "A", QualityStatus: StatusOK, Status: StatusOK, NameAtManufacturer: "Gearbox"},
		},
	}

	node := Reconcile(raw)

	if diff := cmp.Diff([]string{"A", "B", "C"}, serials(node.ChildComponents)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if node.ChildComponents[0].NameAtManufacturer != "Gearbox" {
		t.Fatal("resolved child must be kept as is")
	}
	for _, child := range node.ChildComponents[1:] {
		if diff := cmp.Diff(Placeholder(child.SerialNumberManufacturer), child); diff != "" {
			t.Fatalf("placeholder mismatch (-want +got):\n%s", diff)
		}
	}
	if diff := cmp.Diff([]string{"B", "C"}, node.Missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	if node.Icon != IconAttention {
		t.Fatalf("icon = %q, want attention icon", node.Icon)
	}
}

func TestPlaceholderFields(t *testing.T) {
	p := Placeholder("X-1")
	if p.QualityStatus != StatusMissing || p.Status != StatusMissing {
		t.Fatalf("placeholder statuses = %q/%q", p.QualityStatus, p.Status)
	}
	descriptive := []string{
		p.SerialNumberCustomer, p.SerialNumberType, p.Manufacturer, p.NameAtManufacturer,
		p.PartNumberManufacturer, p.PartNumberCustomer, p.ProductionCountryCode, p.ProductionDateGmt,
	}
	for i, field := range descriptive {
		if field != "" {
			t.Errorf("descriptive field %d = %q, want empty", i, field)
		}
	}
	if p.ComponentsSerialNumbers == nil || p.ChildComponents == nil {
		t.Error("placeholder collections must be empty, not nil")
	}
}

func TestReconcileCompleteness(t *testing.T) {
	// every listed serial appears exactly once whatever subset is resolved
	listed := []string{"S1", "S2", "S3", "S4", "S5"}
	for mask := 0; mask < 1<<len(listed); mask++ {
		raw := Asset{SerialNumberManufacturer: "P", QualityStatus: StatusNOK, ComponentsSerialNumbers: listed}
		for i, s := range listed {
			if mask&(1<<i) != 0 {
				raw.ChildComponents = append(raw.ChildComponents, Asset{SerialNumberManufacturer: s, QualityStatus: StatusOK})
			}
		}

		node := Reconcile(raw)
		if len(node.ChildComponents) != len(listed) {
			t.Fatalf("mask %b: %d children, want %d", mask, len(node.ChildComponents), len(listed))
		}
		count := map[string]int{}
		for _, c := range node.ChildComponents {
			count[c.SerialNumberManufacturer]++
		}
		for _, s := range listed {
			if count[s] != 1 {
				t.Fatalf("mask %b: serial %s appears %d times", mask, s, count[s])
			}
		}
		if node.Icon != IconNOK {
			t.Fatalf("mask %b: NOK parent icon = %q", mask, node.Icon)
		}
	}
}

func TestReconcileAbsentCollections(t *testing.T) {
	node := Reconcile(Asset{SerialNumberManufacturer: "LEAF", QualityStatus: StatusOK})
	if node.ChildComponents == nil || node.ComponentsSerialNumbers == nil || node.Missing == nil {
		t.Fatal("absent collections must become empty slices")
	}
	if len(node.ChildComponents) != 0 || node.HasMissing() {
		t.Fatalf("leaf should stay childless: %+v", node)
	}
	if node.Icon != IconOK {
		t.Fatalf("icon = %q, want OK icon", node.Icon)
	}
}

func TestReconcileDoesNotMutateInput(t *testing.T) {
	raw := Asset{
		ComponentsSerialNumbers: []string{"A", "B"},
		ChildComponents:         []Asset{{SerialNumberManufacturer: "A"}},
	}
	Reconcile(raw)
	if len(raw.ChildComponents) != 1 {
		t.Fatal("input children were modified")
	}
}

func TestReconcileDropsDuplicateResolvedChildren(t *testing.T) {
	raw := Asset{
		ComponentsSerialNumbers: []string{"A", "B", "A"},
		ChildComponents: []Asset{
			{SerialNumberManufacturer: "A", NameAtManufacturer: "first"},
			{SerialNumberManufacturer: "A", NameAtManufacturer: "second"},
			{SerialNumberManufacturer: "Z"},
		},
	}
	node := Reconcile(raw)

	if diff := cmp.Diff([]string{"A", "Z", "B"}, serials(node.ChildComponents)); diff != "" {
		t.Fatalf("children mismatch (-want +got):\n%s", diff)
	}
	if node.ChildComponents[0].NameAtManufacturer != "first" {
		t.Fatal("first resolved occurrence must win")
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status     QualityStatus
		hasMissing bool
		want       string
	}{
		{StatusOK, false, IconOK},
		{StatusOK, true, IconAttention},
		{StatusNOK, true, IconNOK},
		{StatusFlag, false, IconFlag},
		{StatusMissing, false, ""},
		{"RECALLED", true, ""},
		{"", false, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.status, tt.hasMissing), func(t *testing.T) {
			if got := StatusIcon(tt.status, tt.hasMissing); got != tt.want {
				t.Fatalf("StatusIcon = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReconcileChildrenAndReplace(t *testing.T) {
	node := Reconcile(Asset{
		ComponentsSerialNumbers: []string{"A", "B"},
		ChildComponents: []Asset{{
			SerialNumberManufacturer: "A",
			QualityStatus:            StatusOK,
			ComponentsSerialNumbers:  []string{"A1"},
		}},
	})

	children := ReconcileChildren(node)
	if len(children) != 2 || children[0].Icon != IconAttention || len(children[0].ChildComponents) != 1 {
		t.Fatalf("unexpected reconciled children %+v", children)
	}

	fetched := Reconcile(Asset{SerialNumberManufacturer: "B", QualityStatus: StatusFlag})
	replaced := ReplaceChild(children, fetched)
	if replaced[1].Icon != IconFlag || children[1].QualityStatus != StatusMissing {
		t.Fatal("replace should swap the entry without touching the input")
	}

	unknown := ReplaceChild(children, Reconcile(Asset{SerialNumberManufacturer: "Q"}))
	if diff := cmp.Diff(children, unknown); diff != "" {
		t.Fatalf("unknown serial changed list (-want +got):\n%s", diff)
	}
}

func TestAssembleChangelog(t *testing.T) {
	asset := Asset{ProductionDateGmt: "2020-01-01T00:00:00Z", Manufacturer: "BMW"}
	txs := []Transaction{
		{PropertyNewValue: "NOK", PropertyOldValue: "OK", Timestamp: "2021-01-01", UserEmail: "a@x"},
		{PropertyNewValue: "FLAG", PropertyOldValue: "NOK", Timestamp: "2022-01-01", Manufacturer: "VW"},
		{PropertyNewValue: "SCRAPPED", Timestamp: "2023-01-01"},
	}

	got := AssembleChangelog(asset, txs)
	want := []ChangelogEntry{
		{Date: "2023-01-01", NewValue: "SCRAPPED"},
		{Date: "2022-01-01", Icon: IconFlag, Action: "Flagged", Actor: "VW", OldValue: "NOK", NewValue: "FLAG"},
		{Date: "2021-01-01", Icon: IconNOK, Action: "Marked as NOK", Actor: "a@x", OldValue: "OK", NewValue: "NOK"},
		{Date: "2020-01-01T00:00:00Z", Icon: IconCreated, Action: ActionCreated, Actor: "BMW", Created: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("changelog mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleChangelogWithoutTransactions(t *testing.T) {
	got := AssembleChangelog(Asset{ProductionDateGmt: "2020"}, nil)
	if len(got) != 1 || !got[0].Created {
		t.Fatalf("expected only the created entry, got %+v", got)
	}
}
