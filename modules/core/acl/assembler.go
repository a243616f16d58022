package acl

import "sort"

var statusIcons = map[Status]string{
	StatusPending:  "hourglass_empty",
	StatusActive:   "check_circle",
	StatusInactive: "block",
}

var statusLabels = map[Status]string{
	StatusPending:  "Pending",
	StatusActive:   "Active",
	StatusInactive: "Inactive",
}

// StatusIcon returns the icon for status, empty when unknown
func StatusIcon(status Status) string { return statusIcons[status] }

// StatusLabel returns the label for status, empty when unknown
func StatusLabel(status Status) string { return statusLabels[status] }

// Decorate attaches icon and label to an entry
func Decorate(e Entry) EntryVM {
	return EntryVM{Entry: e, Icon: StatusIcon(e.Status), Label: StatusLabel(e.Status)}
}

// AssembleAcl splits entries by status, newest first within each group
func AssembleAcl(entries []Entry) Acl {
	out := Acl{
		Pending:  []EntryVM{},
		Active:   []EntryVM{},
		Inactive: []EntryVM{},
		Other:    []EntryVM{},
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreationDate.After(sorted[j].CreationDate)
	})

	for _, e := range sorted {
		vm := Decorate(e)
		switch e.Status {
		case StatusPending:
			out.Pending = append(out.Pending, vm)
		case StatusActive:
			out.Active = append(out.Active, vm)
		case StatusInactive:
			out.Inactive = append(out.Inactive, vm)
		default:
			out.Other = append(out.Other, vm)
		}
	}
	return out
}

// PendingCount returns the number of entries awaiting a decision
func PendingCount(a Acl) int { return len(a.Pending) }

// CanTransition reports whether an entry in from may move to to:
// pending entries are approved or declined, active ones revoked
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusActive || to == StatusInactive
	case StatusActive:
		return to == StatusInactive
	default:
		return false
	}
}

// Find returns the entry with id from any group
func Find(a Acl, id string) (EntryVM, bool) {
	for _, group := range [][]EntryVM{a.Pending, a.Active, a.Inactive, a.Other} {
		for _, e := range group {
			if e.ID == id {
				return e, true
			}
		}
	}
	return EntryVM{}, false
}
