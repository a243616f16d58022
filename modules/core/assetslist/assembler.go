package assetslist

import (
	"net/url"
	"strconv"
	"strings"

	"parttrack/modules/core/assets"
	"parttrack/modules/platform/transport"
)

// SetInitialPagination builds the window of the first page
func SetInitialPagination(currentPage int, page transport.ListResponse[[]assets.Asset]) Pagination {
	length := len(page.Data)
	return Pagination{
		CurrentPage: currentPage,
		PageIndex:   currentPage,
		PageSize:    length,
		PageLength:  length,
		Total:       page.Total(),
	}
}

// HasNext reports whether a next page exists
func HasNext(p Pagination) bool {
	return p.PageLength > 0 && p.PageSize < p.Total
}

// HasPrevious reports whether a previous page exists
func HasPrevious(p Pagination) bool {
	return p.PageLength > 0 && p.PageIndex > 1
}

// NextPage advances the window by one page, snapping PageSize to Total
// when fewer than a full page remain. A window already reaching Total is
// returned unchanged.
func NextPage(currentPage int, p Pagination) Pagination {
	if !HasNext(p) {
		return p
	}
	next := p
	next.CurrentPage = currentPage

	remaining := p.Total - p.PageSize
	if remaining < p.PageLength {
		next.PageIndex += p.PageLength
		next.PageSize = p.Total
	} else {
		next.PageIndex = p.PageSize + 1
		next.PageSize += p.PageLength
	}
	return next
}

// PreviousPage steps the window back by one page. When the window reaches
// Total it was produced by the snap in NextPage, which is undone by
// ending the previous page right before the current first row.
func PreviousPage(currentPage int, p Pagination) Pagination {
	if !HasPrevious(p) {
		return p
	}
	prev := p
	prev.CurrentPage = currentPage

	if p.PageSize == p.Total {
		prev.PageSize = p.PageIndex - 1
	} else {
		prev.PageSize -= p.PageLength
	}
	prev.PageIndex -= p.PageLength
	return prev
}

// Paginate dispatches on the direction key
func Paginate(direction Direction, currentPage int, page transport.ListResponse[[]assets.Asset], prev Pagination) (Pagination, error) {
	switch direction {
	case DirectionFirst:
		return SetInitialPagination(currentPage, page), nil
	case DirectionNext:
		return NextPage(currentPage, prev), nil
	case DirectionPrevious:
		return PreviousPage(currentPage, prev), nil
	default:
		return prev, ErrUnknownDirection
	}
}

// FilterQuery converts the filter form into list query parameters. Empty
// fields are dropped.
func FilterQuery(f Filter) url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if v := strings.TrimSpace(value); v != "" {
			q.Set(key, v)
		}
	}

	set("serialNumberManufacturer", f.SerialNumberManufacturer)
	set("serialNumberCustomer", f.SerialNumberCustomer)
	set("partNumberManufacturer", f.PartNumberManufacturer)
	set("manufacturer", f.Manufacturer)
	set("qualityStatus", strings.ToUpper(f.QualityStatus))
	set("productionCountryCodeManufacturer", strings.ToUpper(f.ProductionCountry))
	if !f.ProductionDateFrom.IsZero() {
		q.Set("productionDateFrom", f.ProductionDateFrom.Format(dateLayout))
	}
	if !f.ProductionDateTo.IsZero() {
		q.Set("productionDateTo", f.ProductionDateTo.Format(dateLayout))
	}
	if f.OwnAssetsOnly {
		q.Set("type", "own")
	}
	return q
}

const dateLayout = "2006-01-02"

// PageQuery adds paging parameters to a filter query
func PageQuery(f Filter, page, limit int) url.Values {
	q := FilterQuery(f)
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(limit))
	return q
}

// ExportHeader is the column order of exported rows
var ExportHeader = []string{
	"Serial number (manufacturer)",
	"Serial number (customer)",
	"Part name",
	"Part number (manufacturer)",
	"Part number (customer)",
	"Manufacturer",
	"Production country",
	"Production date",
	"Quality status",
	"Components",
}

// ExportRows shapes assets into a header row followed by one row each
func ExportRows(list []assets.Asset) [][]string {
	rows := make([][]string, 0, len(list)+1)
	header := make([]string, len(ExportHeader))
	copy(header, ExportHeader)
	rows = append(rows, header)

	for _, a := range list {
		rows = append(rows, []string{
			a.SerialNumberManufacturer,
			a.SerialNumberCustomer,
			a.NameAtManufacturer,
			a.PartNumberManufacturer,
			a.PartNumberCustomer,
			a.Manufacturer,
			a.ProductionCountryCode,
			a.ProductionDateGmt,
			string(a.QualityStatus),
			strconv.Itoa(len(a.ComponentsSerialNumbers)),
		})
	}
	return rows
}
