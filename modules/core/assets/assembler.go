package assets

// Icons rendered next to a part
const (
	IconOK        = "check_circle"
	IconNOK       = "cancel"
	IconFlag      = "flag"
	IconAttention = "report_problem"
	IconCreated   = "add_circle"
)

var statusIcons = map[QualityStatus]string{
	StatusOK:   IconOK,
	StatusNOK:  IconNOK,
	StatusFlag: IconFlag,
}

var statusActions = map[QualityStatus]string{
	StatusOK:   "Marked as OK",
	StatusNOK:  "Marked as NOK",
	StatusFlag: "Flagged",
}

// ActionCreated labels the synthetic first changelog entry
const ActionCreated = "Created"

// StatusIcon returns the icon for status. An OK part with synthesized
// children gets the attention icon; unknown statuses have no icon.
func StatusIcon(status QualityStatus, hasMissing bool) string {
	if hasMissing && status == StatusOK {
		return IconAttention
	}
	return statusIcons[status]
}

// Placeholder synthesizes the node standing in for an unresolved child
func Placeholder(serial string) Asset {
	return Asset{
		SerialNumberManufacturer: serial,
		QualityStatus:            StatusMissing,
		Status:                   StatusMissing,
		ComponentsSerialNumbers:  []string{},
		ChildComponents:          []Asset{},
	}
}

// MissingSerials returns the serial numbers listed by the asset but absent
// from its resolved children, in the listed order and without duplicates
func MissingSerials(a Asset) []string {
	resolved := make(map[string]bool, len(a.ChildComponents))
	for _, child := range a.ChildComponents {
		resolved[child.SerialNumberManufacturer] = true
	}

	missing := make([]string, 0)
	for _, serial := range a.ComponentsSerialNumbers {
		if resolved[serial] {
			continue
		}
		resolved[serial] = true
		missing = append(missing, serial)
	}
	return missing
}

// Reconcile completes the children of raw: resolved children keep their
// server order and come first, placeholders for every listed but
// unresolved serial follow in listed order. The result never shares
// slices with raw.
func Reconcile(raw Asset) Node {
	a := Normalize(raw)

	children := make([]Asset, 0, len(a.ChildComponents)+len(a.ComponentsSerialNumbers))
	seen := make(map[string]bool, len(a.ChildComponents))
	for _, child := range a.ChildComponents {
		if seen[child.SerialNumberManufacturer] {
			continue
		}
		seen[child.SerialNumberManufacturer] = true
		children = append(children, child)
	}

	missing := MissingSerials(a)
	for _, serial := range missing {
		children = append(children, Placeholder(serial))
	}
	a.ChildComponents = children

	return Node{
		Asset:   a,
		Icon:    StatusIcon(a.QualityStatus, len(missing) > 0),
		Missing: missing,
	}
}

// ReconcileChildren reconciles each direct child of node one level down
func ReconcileChildren(node Node) []Node {
	out := make([]Node, 0, len(node.ChildComponents))
	for _, child := range node.ChildComponents {
		out = append(out, Reconcile(child))
	}
	return out
}

// ReplaceChild returns children with the entry matching replacement's
// serial number swapped for it. Unknown serials leave the list unchanged.
func ReplaceChild(children []Node, replacement Node) []Node {
	out := make([]Node, len(children))
	copy(out, children)
	for i, child := range out {
		if child.SerialNumberManufacturer == replacement.SerialNumberManufacturer {
			out[i] = replacement
			break
		}
	}
	return out
}

// AssembleChangelog builds the timeline, most recent first. The created
// entry derived from the production date is always the oldest.
func AssembleChangelog(asset Asset, transactions []Transaction) []ChangelogEntry {
	entries := make([]ChangelogEntry, 0, len(transactions)+1)
	entries = append(entries, ChangelogEntry{
		Date:    asset.ProductionDateGmt,
		Icon:    IconCreated,
		Action:  ActionCreated,
		Actor:   asset.Manufacturer,
		Created: true,
	})

	for _, tx := range transactions {
		status := QualityStatus(tx.PropertyNewValue)
		entries = append(entries, ChangelogEntry{
			Date:     tx.Timestamp,
			Icon:     statusIcons[status],
			Action:   statusActions[status],
			Actor:    actor(tx),
			OldValue: tx.PropertyOldValue,
			NewValue: tx.PropertyNewValue,
		})
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func actor(tx Transaction) string {
	if tx.UserEmail != "" {
		return tx.UserEmail
	}
	return tx.Manufacturer
}
