package assetslist

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"parttrack/modules/core/assets"
	"parttrack/modules/platform/transport"

	"github.com/google/go-cmp/cmp"
)

func listResponse(rows, total int) transport.ListResponse[[]assets.Asset] {
	data := make([]assets.Asset, rows)
	for i := range data {
		data[i] = assets.Asset{SerialNumberManufacturer: fmt.Sprintf("S-%d", i+1)}
	}
	return transport.ListResponse[[]assets.Asset]{Status: 200, ResultLength: &total, Data: data}
}

type window struct{ index, size int }

func win(p Pagination) window { return window{p.PageIndex, p.PageSize} }

func TestPaginationScenario(t *testing.T) {
	first := SetInitialPagination(1, listResponse(10, 25))
	if diff := cmp.Diff(Pagination{CurrentPage: 1, PageIndex: 1, PageSize: 10, PageLength: 10, Total: 25}, first); diff != "" {
		t.Fatalf("first page mismatch (-want +got):\n%s", diff)
	}

	second := NextPage(2, first)
	if got := win(second); got != (window{11, 20}) {
		t.Fatalf("second page = %+v", got)
	}

	last := NextPage(3, second)
	if got := win(last); got != (window{21, 25}) {
		t.Fatalf("short last page = %+v", got)
	}

	back := PreviousPage(2, last)
	if got := win(back); got != (window{11, 20}) {
		t.Fatalf("previous from last page = %+v", got)
	}
	if back.CurrentPage != 2 {
		t.Fatalf("current page = %d", back.CurrentPage)
	}

	start := PreviousPage(1, back)
	if got := win(start); got != (window{1, 10}) {
		t.Fatalf("back to first page = %+v", got)
	}
}

func TestPaginationRoundTrip(t *testing.T) {
	for total := 1; total <= 40; total++ {
		for length := 1; length <= 12; length++ {
			rows := length
			if total < length {
				rows = total
			}
			first := SetInitialPagination(1, listResponse(rows, total))

			// walk to the end recording every window
			windows := []Pagination{first}
			current := first
			for HasNext(current) {
				current = NextPage(current.CurrentPage+1, current)
				if current.PageIndex < 1 || current.PageSize > total || current.PageIndex > current.PageSize {
					t.Fatalf("T=%d L=%d: invalid forward window %+v", total, length, current)
				}
				windows = append(windows, current)
			}
			if current.PageSize != total {
				t.Fatalf("T=%d L=%d: last window %+v does not reach total", total, length, current)
			}

			// walk back and expect the same windows in reverse
			for i := len(windows) - 1; i > 0; i-- {
				current = PreviousPage(current.CurrentPage-1, current)
				if win(current) != win(windows[i-1]) {
					t.Fatalf("T=%d L=%d: step back to %+v, want %+v", total, length, current, windows[i-1])
				}
			}
			if HasPrevious(current) {
				t.Fatalf("T=%d L=%d: first window %+v still has a previous page", total, length, current)
			}
		}
	}
}

func TestPaginationGuards(t *testing.T) {
	end := Pagination{CurrentPage: 3, PageIndex: 21, PageSize: 25, PageLength: 10, Total: 25}
	if got := NextPage(4, end); got != end {
		t.Fatalf("next on last page changed window: %+v", got)
	}

	first := Pagination{CurrentPage: 1, PageIndex: 1, PageSize: 10, PageLength: 10, Total: 25}
	if got := PreviousPage(0, first); got != first {
		t.Fatalf("previous on first page changed window: %+v", got)
	}

	empty := SetInitialPagination(1, transport.ListResponse[[]assets.Asset]{})
	if HasNext(empty) || HasPrevious(empty) || empty.Total != 0 {
		t.Fatalf("empty window should be inert: %+v", empty)
	}
}

func TestPaginate(t *testing.T) {
	page := listResponse(10, 25)
	first, err := Paginate(DirectionFirst, 1, page, Pagination{})
	if err != nil || first.PageSize != 10 {
		t.Fatalf("first: %+v %v", first, err)
	}
	next, err := Paginate(DirectionNext, 2, page, first)
	if err != nil || win(next) != (window{11, 20}) {
		t.Fatalf("next: %+v %v", next, err)
	}
	prev, err := Paginate(DirectionPrevious, 1, page, next)
	if err != nil || win(prev) != (window{1, 10}) {
		t.Fatalf("previous: %+v %v", prev, err)
	}
	same, err := Paginate("lastPage", 9, page, next)
	if !errors.Is(err, ErrUnknownDirection) || same != next {
		t.Fatalf("unknown direction: %+v %v", same, err)
	}
}

func TestFilterQuery(t *testing.T) {
	f := Filter{
		SerialNumberManufacturer: "  VIN ",
		QualityStatus:            "nok",
		ProductionCountry:        "de",
		ProductionDateFrom:       time.Date(2021, 5, 1, 13, 0, 0, 0, time.UTC),
		OwnAssetsOnly:            true,
	}
	got := FilterQuery(f).Encode()
	want := "productionCountryCodeManufacturer=DE&productionDateFrom=2021-05-01&qualityStatus=NOK&serialNumberManufacturer=VIN&type=own"
	if got != want {
		t.Fatalf("query = %s\nwant    %s", got, want)
	}

	if q := FilterQuery(Filter{}); len(q) != 0 {
		t.Fatalf("empty filter produced %v", q)
	}

	paged := PageQuery(Filter{}, 3, 10)
	if paged.Get("page") != "3" || paged.Get("pageSize") != "10" {
		t.Fatalf("paged query = %v", paged)
	}
}

func TestExportRows(t *testing.T) {
	rows := ExportRows([]assets.Asset{{
		SerialNumberManufacturer: "VIN-1",
		NameAtManufacturer:       "Car",
		QualityStatus:            assets.StatusFlag,
		ComponentsSerialNumbers:  []string{"A", "B"},
	}})

	if len(rows) != 2 || len(rows[0]) != len(ExportHeader) || len(rows[1]) != len(ExportHeader) {
		t.Fatalf("unexpected shape %v", rows)
	}
	if rows[1][0] != "VIN-1" || rows[1][2] != "Car" || rows[1][8] != "FLAG" || rows[1][9] != "2" {
		t.Fatalf("unexpected row %v", rows[1])
	}

	rows[0][0] = "mutated"
	if ExportHeader[0] == "mutated" {
		t.Fatal("export must not alias the shared header")
	}
}
