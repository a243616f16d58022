package acl

import (
	"errors"
	"time"
)

// Status is the lifecycle of an access-control entry
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ErrInvalidTransition is emitted when an action does not apply to the
// entry's current status
var ErrInvalidTransition = errors.New("invalid access status transition")

// Entry grants one manufacturer access to another's parts
type Entry struct {
	ID                    string     `json:"id"`
	RequestingBPN         string     `json:"requestingBpn"`
	RequestingCompanyName string     `json:"requestingCompanyName"`
	GrantingBPN           string     `json:"grantingBpn"`
	Status                Status     `json:"status"`
	CreationDate          time.Time  `json:"creationDate"`
	UpdateDate            *time.Time `json:"updateDate,omitempty"`
	Message               string     `json:"message,omitempty"`
}

// EntryVM is an entry decorated for display
type EntryVM struct {
	Entry
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

// Acl is the access list split by status. Entries with a status outside
// the known vocabulary land in Other.
type Acl struct {
	Pending  []EntryVM `json:"pending"`
	Active   []EntryVM `json:"active"`
	Inactive []EntryVM `json:"inactive"`
	Other    []EntryVM `json:"other"`
}

// Counts are the two counters feeding the navigation badge
type Counts struct {
	PendingAcl   int `json:"pendingAcl"`
	Transactions int `json:"transactions"`
}

// AccessRequest is the body sent to request access to a manufacturer
type AccessRequest struct {
	RequestID   string `json:"requestId"`
	GrantingBPN string `json:"grantingBpn"`
	Message     string `json:"message,omitempty"`
}
