package commands

import (
	"fmt"

	"parttrack/modules/core/acl"
)

func registerAclCommands(r *Registry) {
	r.Register(&Command{
		Name:        "acl",
		Category:    "Access Control",
		Description: "List and decide access requests between manufacturers",
		Usage:       "parttrack acl [list|approve|decline|revoke|request] [args]",
		Examples: []string{
			"parttrack acl",
			"parttrack acl approve 6f1c2d",
			"parttrack acl request BPNL00000003AYRE --message 'recall 2023-07'",
		},
		SubCommands: []SubCommand{
			{Name: "list", Description: "List access entries by status", Handler: aclListCommand},
			{Name: "approve", Description: "Approve a pending request", Handler: aclDecision("approve")},
			{Name: "decline", Description: "Decline a pending request", Handler: aclDecision("decline")},
			{Name: "revoke", Description: "Revoke an active grant", Handler: aclDecision("revoke")},
			{Name: "request", Description: "Request access to a manufacturer's parts", Handler: aclRequestCommand},
		},
		Handler: aclListCommand,
		Order:   20,
	})
}

func newAclFacade(app *App) (*acl.Facade, *acl.State) {
	state := acl.NewState()
	return acl.NewFacade(acl.NewHTTPService(app.Client), state, app.FeatureOptions()...), state
}

func aclListCommand(app *App, args []string) error {
	set, err := parseArgs(args)
	if err != nil {
		return err
	}

	facade, state := newAclFacade(app)
	defer state.Close()

	facade.LoadAcl(app.Ctx)
	view := state.Entries().Snapshot()
	if view.Error != nil {
		return view.Error
	}
	if set.flag("json") {
		return app.printJSON(view)
	}
	app.println(app.Render.Acl(view.Value()))
	return nil
}

func aclDecision(action string) CommandHandler {
	return func(app *App, args []string) error {
		set, err := parseArgs(args)
		if err != nil {
			return err
		}
		if len(set.positional) == 0 {
			return fmt.Errorf("entry id is required\nUsage: parttrack acl %s <id>", action)
		}
		id := set.positional[0]

		facade, state := newAclFacade(app)
		defer state.Close()

		facade.LoadAcl(app.Ctx)
		switch action {
		case "approve":
			facade.Approve(app.Ctx, id)
		case "decline":
			facade.Decline(app.Ctx, id)
		case "revoke":
			facade.Revoke(app.Ctx, id)
		}

		if err := state.Entries().Snapshot().Error; err != nil {
			return err
		}
		app.printf("%s: %s done\n", id, action)
		return nil
	}
}

func aclRequestCommand(app *App, args []string) error {
	set, err := parseArgs(args, "message")
	if err != nil {
		return err
	}
	if len(set.positional) == 0 {
		return fmt.Errorf("business partner number is required\nUsage: parttrack acl request <bpn> [--message <text>]")
	}

	facade, state := newAclFacade(app)
	defer state.Close()

	facade.RequestAccess(app.Ctx, set.positional[0], set.value("message"))
	if err := state.Entries().Snapshot().Error; err != nil {
		return err
	}
	app.printf("Access requested from %s (%d pending)\n", set.positional[0], state.PendingCount().Snapshot())
	return nil
}
