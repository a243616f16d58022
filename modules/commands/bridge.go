package commands

import (
	"context"
	"time"

	"parttrack/modules/core/acl"
	"parttrack/modules/core/badge"
	"parttrack/modules/core/dashboard"
	"parttrack/modules/core/feature"
	"parttrack/modules/platform/config"
	"parttrack/modules/platform/eventbus"
	"parttrack/modules/platform/metrics"
	"parttrack/modules/platform/server"

	"github.com/prometheus/client_golang/prometheus/collectors"
)

func registerBridgeCommands(r *Registry) {
	r.Register(&Command{
		Name:        "serve",
		Category:    "Bridge",
		Description: "Stream dashboard, access and badge views to browsers over websocket",
		Usage:       "parttrack serve [--listen <addr>] [--interval <seconds>]",
		Examples: []string{
			"parttrack serve",
			"parttrack serve --listen :9470 --interval 15",
		},
		Handler: serveCommand,
		Order:   40,
	})
}

func serveCommand(app *App, args []string) error {
	set, err := parseArgs(args, "listen", "interval")
	if err != nil {
		return err
	}
	interval, err := set.intValue("interval", 30)
	if err != nil {
		return err
	}
	if interval <= 0 {
		interval = 30
	}

	cfg := config.DefaultServerConfig()
	if app.Config.Server != nil {
		*cfg = *app.Config.Server
	}
	if v := set.value("listen"); v != "" {
		cfg.Listen = v
	}

	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.NewHostCollector(),
	)
	srv := server.NewServer(cfg, app.Bus, app.Registry, app.Log.With("bridge"))
	app.Log.SetBroadcaster(srv.Hub())

	dashState := dashboard.NewState()
	defer dashState.Close()
	dash := dashboard.NewFacade(dashboard.NewHTTPService(app.Client), dashState, app.FeatureOptions()...)

	aclState := acl.NewState()
	defer aclState.Close()
	access := acl.NewFacade(acl.NewHTTPService(app.Client), aclState, app.FeatureOptions()...)

	agg := badge.NewAggregator(aclState.PendingCount(), aclState.TransactionCount())
	defer agg.Close()

	feature.Forward(app.Bus, eventbus.EventDashboardUpdated, "dashboard", dashState.Dashboard())
	feature.Forward(app.Bus, eventbus.EventAclUpdated, "acl", aclState.Entries())
	feature.Forward(app.Bus, eventbus.EventBadgeUpdated, "badge", agg.Total())

	ctx, cancel := context.WithCancel(app.Ctx)
	defer cancel()
	go refreshLoop(ctx, time.Duration(interval)*time.Second, func() {
		dash.LoadDashboard(ctx)
		access.LoadAcl(ctx)
		access.RefreshCounters(ctx)
	})

	return srv.ListenAndServe(ctx)
}

// refreshLoop runs refresh now and then every interval until ctx is done
func refreshLoop(ctx context.Context, interval time.Duration, refresh func()) {
	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
