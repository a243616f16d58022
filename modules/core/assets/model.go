package assets

import "errors"

// QualityStatus is the wire vocabulary for part quality
type QualityStatus string

const (
	StatusOK      QualityStatus = "OK"
	StatusNOK     QualityStatus = "NOK"
	StatusFlag    QualityStatus = "FLAG"
	StatusMissing QualityStatus = "MISSING"
)

// ErrPartNotFound is emitted when the backend answers with an empty asset
var ErrPartNotFound = errors.New("part not found")

// Asset is a part as returned by the detail endpoint. ChildComponents may
// hold fewer entries than ComponentsSerialNumbers lists, never more.
type Asset struct {
	SerialNumberManufacturer string        `json:"serialNumberManufacturer"`
	SerialNumberCustomer     string        `json:"serialNumberCustomer"`
	SerialNumberType         string        `json:"serialNumberType"`
	Manufacturer             string        `json:"manufacturer"`
	NameAtManufacturer       string        `json:"nameAtManufacturer"`
	PartNumberManufacturer   string        `json:"partNumberManufacturer"`
	PartNumberCustomer       string        `json:"partNumberCustomer"`
	ProductionCountryCode    string        `json:"productionCountryCodeManufacturer"`
	ProductionDateGmt        string        `json:"productionDateGmt"`
	QualityStatus            QualityStatus `json:"qualityStatus"`
	Status                   QualityStatus `json:"status"`
	ComponentsSerialNumbers  []string      `json:"componentsSerialNumbers"`
	ChildComponents          []Asset       `json:"childComponents"`
}

// Normalize replaces absent collections with empty ones, recursively
func Normalize(a Asset) Asset {
	out := a
	out.ComponentsSerialNumbers = make([]string, len(a.ComponentsSerialNumbers))
	copy(out.ComponentsSerialNumbers, a.ComponentsSerialNumbers)

	out.ChildComponents = make([]Asset, 0, len(a.ChildComponents))
	for _, child := range a.ChildComponents {
		out.ChildComponents = append(out.ChildComponents, Normalize(child))
	}
	return out
}

// Node is a reconciled asset ready for display
type Node struct {
	Asset
	Icon string `json:"icon"`
	// Missing lists the serial numbers synthesized as placeholders
	Missing []string `json:"missing"`
}

// HasMissing reports whether any child was synthesized
func (n Node) HasMissing() bool { return len(n.Missing) > 0 }

// Transaction is one property change recorded against an asset
type Transaction struct {
	ID               string `json:"id"`
	PropertyName     string `json:"propertyName"`
	PropertyOldValue string `json:"propertyOldValue"`
	PropertyNewValue string `json:"propertyNewValue"`
	Timestamp        string `json:"timestamp"`
	UserEmail        string `json:"userEmail"`
	Manufacturer     string `json:"manufacturer"`
}

// ChangelogEntry is one line of the asset timeline
type ChangelogEntry struct {
	Date     string `json:"date"`
	Icon     string `json:"icon"`
	Action   string `json:"action"`
	Actor    string `json:"actor,omitempty"`
	OldValue string `json:"oldValue,omitempty"`
	NewValue string `json:"newValue,omitempty"`
	Created  bool   `json:"created,omitempty"`
}
