package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"parttrack/modules/core/assets"
	"parttrack/modules/core/assetslist"
)

func registerAssetCommands(r *Registry) {
	r.Register(&Command{
		Name:        "asset",
		Aliases:     []string{"a"},
		Category:    "Assets",
		Description: "Show a part and its components",
		Usage:       "parttrack asset <serial> [--child <serial>] [--json]",
		Examples: []string{
			"parttrack asset VIN-0001",
			"parttrack asset VIN-0001 --child GEARBOX-17",
		},
		Handler: assetCommand,
		Order:   10,
	})

	r.Register(&Command{
		Name:        "changelog",
		Aliases:     []string{"log"},
		Category:    "Assets",
		Description: "Show the quality history of a part",
		Usage:       "parttrack changelog <serial> [--json]",
		Handler:     changelogCommand,
		Order:       11,
	})

	r.Register(&Command{
		Name:        "assets",
		Aliases:     []string{"ls"},
		Category:    "Assets",
		Description: "List parts matching a filter",
		Usage:       "parttrack assets [--page <n>] [filter flags] [--json]",
		Examples: []string{
			"parttrack assets --status nok --country de",
			"parttrack assets --own --from 2023-01-01 --page 2",
		},
		Handler: assetsCommand,
		Order:   12,
	})

	r.Register(&Command{
		Name:        "export",
		Category:    "Assets",
		Description: "Export every part matching a filter as CSV",
		Usage:       "parttrack export [--output <file>] [filter flags]",
		Examples: []string{
			"parttrack export --status flag --output flagged.csv",
		},
		Handler: exportCommand,
		Order:   13,
	})
}

// filterFlags are the value flags shared by assets and export
var filterFlags = []string{"serial", "customer-serial", "part-number", "manufacturer", "status", "country", "from", "to"}

func parseFilter(set argSet) (assetslist.Filter, error) {
	f := assetslist.Filter{
		SerialNumberManufacturer: set.value("serial"),
		SerialNumberCustomer:     set.value("customer-serial"),
		PartNumberManufacturer:   set.value("part-number"),
		Manufacturer:             set.value("manufacturer"),
		QualityStatus:            set.value("status"),
		ProductionCountry:        set.value("country"),
		OwnAssetsOnly:            set.flag("own"),
	}
	var err error
	if v := set.value("from"); v != "" {
		if f.ProductionDateFrom, err = time.Parse("2006-01-02", v); err != nil {
			return f, fmt.Errorf("--from: %w", err)
		}
	}
	if v := set.value("to"); v != "" {
		if f.ProductionDateTo, err = time.Parse("2006-01-02", v); err != nil {
			return f, fmt.Errorf("--to: %w", err)
		}
	}
	return f, nil
}

func assetCommand(app *App, args []string) error {
	set, err := parseArgs(args, "child")
	if err != nil {
		return err
	}
	if len(set.positional) == 0 {
		return fmt.Errorf("serial number is required\nUsage: parttrack asset <serial>")
	}

	state := assets.NewState()
	defer state.Close()
	facade := assets.NewFacade(assets.NewHTTPService(app.Client), state, app.FeatureOptions()...)

	facade.LoadAsset(app.Ctx, set.positional[0])
	view := state.Asset().Snapshot()
	if view.Error != nil {
		return view.Error
	}

	if child := set.value("child"); child != "" {
		facade.LoadChild(app.Ctx, child)
		if err := state.Child().Snapshot().Error; err != nil {
			return fmt.Errorf("child %s: %w", child, err)
		}
		view = state.Asset().Snapshot()
	}

	if set.flag("json") {
		return app.printJSON(map[string]interface{}{
			"asset":    view,
			"children": state.Children().Snapshot(),
		})
	}

	node := view.Value()
	children := state.Children().Snapshot().Value()
	node.ChildComponents = make([]assets.Asset, 0, len(children))
	for _, c := range children {
		node.ChildComponents = append(node.ChildComponents, c.Asset)
	}
	app.println(app.Render.Asset(node))
	return nil
}

func changelogCommand(app *App, args []string) error {
	set, err := parseArgs(args)
	if err != nil {
		return err
	}
	if len(set.positional) == 0 {
		return fmt.Errorf("serial number is required\nUsage: parttrack changelog <serial>")
	}

	state := assets.NewState()
	defer state.Close()
	facade := assets.NewFacade(assets.NewHTTPService(app.Client), state, app.FeatureOptions()...)

	facade.LoadChangelog(app.Ctx, set.positional[0])
	view := state.Changelog().Snapshot()
	if view.Error != nil {
		return view.Error
	}
	if set.flag("json") {
		return app.printJSON(view)
	}
	app.println(app.Render.Changelog(view.Value()))
	return nil
}

func assetsCommand(app *App, args []string) error {
	set, err := parseArgs(args, append(filterFlags, "page")...)
	if err != nil {
		return err
	}
	filter, err := parseFilter(set)
	if err != nil {
		return err
	}
	page, err := set.intValue("page", 1)
	if err != nil {
		return err
	}

	state := assetslist.NewState()
	defer state.Close()
	facade := assetslist.NewFacade(assetslist.NewHTTPService(app.Client), state, app.PageLimit(), app.FeatureOptions()...)

	facade.LoadFirstPage(app.Ctx, filter)
	for i := 1; i < page && assetslist.HasNext(state.Pagination().Snapshot()); i++ {
		facade.NextPage(app.Ctx)
	}

	view := state.Assets().Snapshot()
	if view.Error != nil {
		if errors.Is(view.Error, assetslist.ErrNoResults) {
			app.println(app.Render.Muted.Render("No parts match this filter"))
			return nil
		}
		return view.Error
	}

	if set.flag("json") {
		return app.printJSON(assetslist.Page{Assets: view.Value(), Pagination: state.Pagination().Snapshot()})
	}
	app.println(app.Render.AssetsPage(view.Value(), state.Pagination().Snapshot()))
	return nil
}

func exportCommand(app *App, args []string) error {
	set, err := parseArgs(args, append(filterFlags, "output")...)
	if err != nil {
		return err
	}
	filter, err := parseFilter(set)
	if err != nil {
		return err
	}

	state := assetslist.NewState()
	defer state.Close()
	facade := assetslist.NewFacade(assetslist.NewHTTPService(app.Client), state, app.PageLimit(), app.FeatureOptions()...)

	facade.LoadFirstPage(app.Ctx, filter)
	if err := state.Assets().Snapshot().Error; err != nil {
		return err
	}
	facade.Export(app.Ctx)
	view := state.Export().Snapshot()
	if view.Error != nil {
		return view.Error
	}

	var w io.Writer = app.Out
	if path := set.value("output"); path != "" && path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	if err := writeCSV(w, view.Value()); err != nil {
		return err
	}
	if path := set.value("output"); path != "" && path != "-" {
		fmt.Fprintf(app.Err, "Exported %d part(s) to %s\n", len(view.Value())-1, path)
	}
	return nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
