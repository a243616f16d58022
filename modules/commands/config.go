package commands

import (
	"fmt"

	"parttrack/modules/platform/config"

	"gopkg.in/yaml.v3"
)

func registerConfigCommands(r *Registry) {
	r.Register(&Command{
		Name:        "config",
		Aliases:     []string{"cfg"},
		Category:    "Configuration",
		Description: "Show or create the configuration file",
		Usage:       "parttrack config <show|init> [--force]",
		SubCommands: []SubCommand{
			{Name: "show", Description: "Print the effective configuration", Handler: configShowCommand},
			{Name: "init", Description: "Write a default configuration file", Handler: configInitCommand},
		},
		Handler: configShowCommand,
		Order:   50,
	})
}

func configShowCommand(app *App, args []string) error {
	shown := *app.Config
	if app.Config.API != nil {
		api := *app.Config.API
		if api.Token != "" {
			api.Token = "********"
		}
		shown.API = &api
	}

	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if app.ConfigPath != "" {
		app.printf("# %s\n", app.ConfigPath)
	}
	app.printf("%s", data)
	return nil
}

func configInitCommand(app *App, args []string) error {
	set, err := parseArgs(args)
	if err != nil {
		return err
	}

	path := app.ConfigPath
	if len(set.positional) > 0 {
		path = set.positional[0]
	}
	if path == "" {
		return fmt.Errorf("no config path; pass one or use --config")
	}

	loader := config.NewLoader(path)
	if loader.Exists() && !set.flag("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := loader.Save(config.DefaultConfig()); err != nil {
		return err
	}
	app.printf("Wrote %s\n", path)
	return nil
}
