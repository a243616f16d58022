package assetslist

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"testing"

	"parttrack/modules/core/assets"
	"parttrack/modules/platform/transport"
	"parttrack/modules/ui/core"
)

// pagedService serves a fixed dataset the way the backend pages it
type pagedService struct {
	rows    []assets.Asset
	err     error
	queries []url.Values
}

func newPagedService(n int) *pagedService {
	s := &pagedService{}
	for i := 1; i <= n; i++ {
		s.rows = append(s.rows, assets.Asset{SerialNumberManufacturer: fmt.Sprintf("S-%02d", i)})
	}
	return s
}

func (s *pagedService) ListAssets(_ context.Context, query url.Values) (transport.ListResponse[[]assets.Asset], error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return transport.ListResponse[[]assets.Asset]{}, s.err
	}
	page, _ := strconv.Atoi(query.Get("page"))
	size, _ := strconv.Atoi(query.Get("pageSize"))
	start := (page - 1) * size
	end := start + size
	if start > len(s.rows) {
		start = len(s.rows)
	}
	if end > len(s.rows) {
		end = len(s.rows)
	}
	total := len(s.rows)
	return transport.ListResponse[[]assets.Asset]{Status: 200, ResultLength: &total, Data: s.rows[start:end]}, nil
}

func TestFacadeWalksPages(t *testing.T) {
	svc := newPagedService(25)
	facade := NewFacade(svc, NewState(), 10)
	ctx := context.Background()

	facade.LoadFirstPage(ctx, Filter{Manufacturer: "OEM"})
	assertWindow(t, facade, 1, 1, 10, "S-01")

	facade.NextPage(ctx)
	assertWindow(t, facade, 2, 11, 20, "S-11")

	facade.NextPage(ctx)
	assertWindow(t, facade, 3, 21, 25, "S-21")

	calls := len(svc.queries)
	facade.NextPage(ctx)
	if len(svc.queries) != calls {
		t.Fatal("next on the last page must not hit the backend")
	}

	facade.PreviousPage(ctx)
	assertWindow(t, facade, 2, 11, 20, "S-11")

	facade.PreviousPage(ctx)
	assertWindow(t, facade, 1, 1, 10, "S-01")

	for _, q := range svc.queries {
		if q.Get("manufacturer") != "OEM" {
			t.Fatalf("filter lost between pages: %v", q)
		}
	}
}

func assertWindow(t *testing.T, f *Facade, page, index, size int, firstSerial string) {
	t.Helper()
	p := f.State().Pagination().Snapshot()
	if p.CurrentPage != page || p.PageIndex != index || p.PageSize != size {
		t.Fatalf("window = %+v, want page %d [%d..%d]", p, page, index, size)
	}
	rows := f.State().Assets().Snapshot()
	if !rows.HasData() || rows.Value()[0].SerialNumberManufacturer != firstSerial {
		t.Fatalf("rows = %+v, want first serial %s", rows, firstSerial)
	}
}

func TestFacadeEmptyFirstPage(t *testing.T) {
	facade := NewFacade(newPagedService(0), NewState(), 10)

	facade.LoadFirstPage(context.Background(), Filter{SerialNumberManufacturer: "nothing"})

	view := facade.State().Assets().Snapshot()
	if !errors.Is(view.Error, ErrNoResults) || view.HasData() {
		t.Fatalf("expected no-results view, got %+v", view)
	}
	if p := facade.State().Pagination().Snapshot(); p.Total != 0 || HasNext(p) {
		t.Fatalf("unexpected window %+v", p)
	}
}

func TestFacadeRefreshKeepsRowsOnFailure(t *testing.T) {
	svc := newPagedService(25)
	facade := NewFacade(svc, NewState(), 10)
	facade.LoadFirstPage(context.Background(), Filter{})

	var views []core.View[[]assets.Asset]
	facade.State().Assets().Subscribe(func(v core.View[[]assets.Asset]) { views = append(views, v) })

	svc.err = errors.New("503")
	facade.NextPage(context.Background())

	if len(views) != 3 {
		t.Fatalf("expected replay, refreshing, failure; got %d", len(views))
	}
	if !views[1].Loader || !views[1].HasData() {
		t.Fatalf("refresh should keep rows visible: %+v", views[1])
	}
	if views[2].Error == nil || len(views[2].Value()) != 10 {
		t.Fatalf("failure should keep previous rows: %+v", views[2])
	}
	if p := facade.State().Pagination().Snapshot(); p.PageIndex != 1 {
		t.Fatalf("window must not move on failure: %+v", p)
	}
}

func TestFacadeExport(t *testing.T) {
	svc := newPagedService(25)
	facade := NewFacade(svc, NewState(), 10)
	facade.LoadFirstPage(context.Background(), Filter{QualityStatus: "ok"})

	facade.Export(context.Background())

	last := svc.queries[len(svc.queries)-1]
	if last.Get("pageSize") != "25" || last.Get("qualityStatus") != "OK" {
		t.Fatalf("export query = %v", last)
	}
	rows := facade.State().Export().Snapshot().Value()
	if len(rows) != 26 {
		t.Fatalf("export rows = %d, want header + 25", len(rows))
	}

	svc.err = errors.New("down")
	facade.Export(context.Background())
	if facade.State().Export().Snapshot().Error == nil {
		t.Fatal("export failure not reported")
	}
}
