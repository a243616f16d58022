package render

import (
	"fmt"
	"strconv"
	"strings"

	"parttrack/modules/core/acl"
	"parttrack/modules/core/assets"
	"parttrack/modules/core/assetslist"
	"parttrack/modules/core/dashboard"
	"parttrack/modules/ui/core"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
)

// ViewHeader renders the loader and error parts of a view. It returns
// false when there is no data to draw below it.
func ViewHeader[T any](rd *Renderer, v core.View[T]) (string, bool) {
	var lines []string
	if v.Loader {
		lines = append(lines, rd.Muted.Render("Loading..."))
	}
	if v.Error != nil {
		lines = append(lines, rd.Error.Render("Error: "+v.Error.Error()))
	}
	return strings.Join(lines, "\n"), v.HasData()
}

// Asset renders a reconciled asset and its direct children as a tree
func (rd *Renderer) Asset(n assets.Node) string {
	label := rd.assetLabel(n.Asset, n.Icon)
	t := tree.Root(label)
	for _, child := range n.ChildComponents {
		t.Child(rd.assetLabel(child, assets.StatusIcon(child.QualityStatus, false)))
	}

	var b strings.Builder
	b.WriteString(t.String())
	if n.HasMissing() {
		b.WriteString("\n")
		b.WriteString(rd.Warning.Render(fmt.Sprintf("%d component(s) not visible: %s",
			len(n.Missing), strings.Join(n.Missing, ", "))))
	}
	return b.String()
}

func (rd *Renderer) assetLabel(a assets.Asset, icon string) string {
	parts := []string{rd.Title.Render(a.SerialNumberManufacturer), rd.Status(icon, string(a.QualityStatus))}
	if a.NameAtManufacturer != "" {
		parts = append(parts, a.NameAtManufacturer)
	}
	if a.Manufacturer != "" {
		parts = append(parts, rd.Muted.Render(a.Manufacturer))
	}
	return strings.Join(parts, "  ")
}

// Changelog renders the asset timeline, newest first
func (rd *Renderer) Changelog(entries []assets.ChangelogEntry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		change := ""
		if e.OldValue != "" || e.NewValue != "" {
			change = e.OldValue + " → " + e.NewValue
		}
		rows = append(rows, []string{e.Date, Glyph(e.Icon) + " " + e.Action, e.Actor, change})
	}
	return rd.table([]string{"Date", "Action", "By", "Change"}, rows)
}

// AssetsPage renders one page of the assets list with its footer
func (rd *Renderer) AssetsPage(list []assets.Asset, p assetslist.Pagination) string {
	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{
			a.SerialNumberManufacturer,
			a.NameAtManufacturer,
			a.Manufacturer,
			a.ProductionCountryCode,
			a.ProductionDateGmt,
			rd.Status(assets.StatusIcon(a.QualityStatus, false), string(a.QualityStatus)),
		})
	}
	header := []string{"Serial number", "Part", "Manufacturer", "Country", "Produced", "Quality"}
	return rd.table(header, rows) + "\n" + rd.Footer(p)
}

// Footer renders "first-last of total" with the available directions
func (rd *Renderer) Footer(p assetslist.Pagination) string {
	if p.Total == 0 {
		return rd.Muted.Render("0 of 0")
	}
	text := fmt.Sprintf("%d-%d of %d", p.PageIndex, p.PageSize, p.Total)
	var nav []string
	if assetslist.HasPrevious(p) {
		nav = append(nav, "[prev]")
	}
	if assetslist.HasNext(p) {
		nav = append(nav, "[next]")
	}
	if len(nav) > 0 {
		text += "  " + strings.Join(nav, " ")
	}
	return rd.Muted.Render(text)
}

// Acl renders the access list grouped by status
func (rd *Renderer) Acl(a acl.Acl) string {
	groups := []struct {
		title   string
		entries []acl.EntryVM
	}{
		{"Pending", a.Pending},
		{"Active", a.Active},
		{"Inactive", a.Inactive},
		{"Other", a.Other},
	}

	var sections []string
	for _, g := range groups {
		if len(g.entries) == 0 {
			continue
		}
		rows := make([][]string, 0, len(g.entries))
		for _, e := range g.entries {
			rows = append(rows, []string{
				e.ID,
				e.RequestingCompanyName,
				e.RequestingBPN,
				e.CreationDate.Format("2006-01-02"),
				rd.Status(e.Icon, string(e.Status)),
			})
		}
		title := rd.Subtitle.Render(fmt.Sprintf("%s (%d)", g.title, len(g.entries)))
		sections = append(sections, title+"\n"+rd.table([]string{"ID", "Company", "BPN", "Created", "Status"}, rows))
	}
	if len(sections) == 0 {
		return rd.Muted.Render("No access entries")
	}
	return strings.Join(sections, "\n\n")
}

// Dashboard renders headline numbers and both series
func (rd *Renderer) Dashboard(d dashboard.Dashboard) string {
	kpiRows := make([][]string, 0, len(d.KPIs))
	for _, k := range d.KPIs {
		value := "n/a"
		if k.Value != nil {
			value = strconv.Itoa(*k.Value)
		}
		kpiRows = append(kpiRows, []string{k.Label, value})
	}

	statusRows := make([][]string, 0, len(d.Statuses))
	for _, s := range d.Statuses {
		statusRows = append(statusRows, []string{
			rd.statusStyle(s.Status).Render(s.Status),
			strconv.Itoa(s.Count),
			strconv.FormatFloat(s.Percent, 'f', 1, 64) + "%",
		})
	}

	countryRows := make([][]string, 0, len(d.Countries))
	for _, c := range d.Countries {
		countryRows = append(countryRows, []string{c.Country, strconv.Itoa(c.Count)})
	}

	return strings.Join([]string{
		rd.Title.Render("Dashboard"),
		rd.table([]string{"Indicator", "Value"}, kpiRows),
		rd.Subtitle.Render(fmt.Sprintf("Quality status (%d parts)", d.Total)),
		rd.table([]string{"Status", "Parts", "Share"}, statusRows),
		rd.Subtitle.Render("Parts per production country"),
		rd.table([]string{"Country", "Parts"}, countryRows),
	}, "\n")
}

// BadgeCount renders the navigation badge, empty when there is nothing pending
func (rd *Renderer) BadgeCount(n int) string {
	if n <= 0 {
		return ""
	}
	return rd.Badge.Render(strconv.Itoa(n))
}

// Notification renders a transient message
func (rd *Renderer) Notification(n *core.Notification) string {
	style := rd.Subtitle
	switch n.Type {
	case core.NotifySuccess:
		style = rd.Success
	case core.NotifyWarning:
		style = rd.Warning
	case core.NotifyError:
		style = rd.Error
	}
	text := n.Title
	if n.Message != "" {
		text += ": " + n.Message
	}
	return style.Render(text)
}

func (rd *Renderer) table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(rd.Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return rd.Header
			}
			return rd.Cell
		})
	return t.String()
}
