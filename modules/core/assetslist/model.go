package assetslist

import (
	"errors"
	"time"

	"parttrack/modules/core/assets"
)

// Direction selects the pagination branch
type Direction string

const (
	DirectionFirst    Direction = "firstPage"
	DirectionNext     Direction = "nextPage"
	DirectionPrevious Direction = "previousPage"
)

var (
	// ErrNoResults is emitted when a first page comes back empty
	ErrNoResults = errors.New("no results")
	// ErrUnknownDirection is returned for a direction key outside the three literals
	ErrUnknownDirection = errors.New("unknown pagination direction")
)

// Pagination describes the displayed slice of the filtered result set.
// PageIndex and PageSize are the 1-based ordinals of the first and last
// row on the page; PageLength is the nominal row count per page.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageIndex   int `json:"pageIndex"`
	PageSize    int `json:"pageSize"`
	PageLength  int `json:"pageLength"`
	Total       int `json:"total"`
}

// Filter is the search form of the assets list
type Filter struct {
	SerialNumberManufacturer string
	SerialNumberCustomer     string
	PartNumberManufacturer   string
	Manufacturer             string
	QualityStatus            string
	ProductionCountry        string
	ProductionDateFrom       time.Time
	ProductionDateTo         time.Time
	OwnAssetsOnly            bool
}

// Page is one fetched page of assets
type Page struct {
	Assets     []assets.Asset `json:"assets"`
	Pagination Pagination     `json:"pagination"`
}
