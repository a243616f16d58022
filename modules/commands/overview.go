package commands

import (
	"time"

	"parttrack/modules/core/badge"
	"parttrack/modules/core/dashboard"
)

func registerOverviewCommands(r *Registry) {
	r.Register(&Command{
		Name:        "dashboard",
		Aliases:     []string{"dash"},
		Category:    "Overview",
		Description: "Show part counts and quality distribution",
		Usage:       "parttrack dashboard [--json]",
		Handler:     dashboardCommand,
		Order:       30,
	})

	r.Register(&Command{
		Name:        "badge",
		Category:    "Overview",
		Description: "Show the pending-work badge",
		Usage:       "parttrack badge [--watch <seconds>] [--json]",
		Examples: []string{
			"parttrack badge",
			"parttrack badge --watch 30",
		},
		Handler: badgeCommand,
		Order:   31,
	})
}

func dashboardCommand(app *App, args []string) error {
	set, err := parseArgs(args)
	if err != nil {
		return err
	}

	state := dashboard.NewState()
	defer state.Close()
	facade := dashboard.NewFacade(dashboard.NewHTTPService(app.Client), state, app.FeatureOptions()...)

	facade.LoadDashboard(app.Ctx)
	view := state.Dashboard().Snapshot()
	if view.Error != nil {
		return view.Error
	}
	if set.flag("json") {
		return app.printJSON(view)
	}
	app.println(app.Render.Dashboard(view.Value()))
	return nil
}

func badgeCommand(app *App, args []string) error {
	set, err := parseArgs(args, "watch")
	if err != nil {
		return err
	}
	watch, err := set.intValue("watch", 0)
	if err != nil {
		return err
	}

	facade, state := newAclFacade(app)
	defer state.Close()
	agg := badge.NewAggregator(state.PendingCount(), state.TransactionCount())
	defer agg.Close()

	show := func() error {
		latest := agg.Latest()
		if set.flag("json") {
			return app.printJSON(map[string]int{
				"badge":        agg.Total().Snapshot(),
				"acl":          latest.Acl,
				"transactions": latest.Transactions,
			})
		}
		app.printf("%s  %d access request(s), %d transaction(s)\n",
			app.Render.BadgeCount(agg.Total().Snapshot()), latest.Acl, latest.Transactions)
		return nil
	}

	facade.RefreshCounters(app.Ctx)
	if err := show(); err != nil || watch <= 0 {
		return err
	}

	ticker := time.NewTicker(time.Duration(watch) * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-app.Ctx.Done():
			return nil
		case <-ticker.C:
			facade.RefreshCounters(app.Ctx)
			if err := show(); err != nil {
				return err
			}
		}
	}
}
