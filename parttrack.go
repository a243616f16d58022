package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"parttrack/modules"
	"parttrack/modules/commands"
	"parttrack/modules/platform/config"
)

func main() {
	args := os.Args[1:]
	configPath := ""
	verbose := false

	// Extract global flags
	var cmdArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--config" || arg == "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--verbose" || arg == "-v":
			verbose = true
		case arg == "--version" || arg == "-V":
			printVersion()
			return
		case arg == "--help" || arg == "-h":
			printHelp(commands.NewRegistry())
			return
		default:
			cmdArgs = append(cmdArgs, arg)
		}
	}

	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.NewLoader(configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := commands.NewRegistry()

	if len(cmdArgs) == 0 {
		printHelp(registry)
		return
	}

	switch cmdArgs[0] {
	case "version":
		printVersion()
		return
	case "help":
		if len(cmdArgs) > 1 {
			registry.PrintCommandHelp(os.Stdout, cmdArgs[1])
		} else {
			printHelp(registry)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := commands.NewApp(ctx, cfg, configPath, commands.AppOptions{Verbose: verbose})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = registry.Run(app, cmdArgs)
	app.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("%s version %s\n", modules.AppName, modules.AppVersion)
	fmt.Printf("Build: %s\n", modules.BuildRevision())
}

func printHelp(registry *commands.Registry) {
	fmt.Printf("%s - %s\n", modules.AppName, modules.AppDescription)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  parttrack [flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  -c, --config <path>    Path to config file")
	fmt.Println("  -v, --verbose          Verbose output")
	fmt.Println("  -V, --version          Print version")
	fmt.Println("  -h, --help             Print help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Printf("  %-22s Override api.url\n", config.EnvAPIURL)
	fmt.Printf("  %-22s Override api.token\n", config.EnvToken)
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println()

	registry.PrintCommands(os.Stdout)

	fmt.Println("Use 'parttrack help <command>' for more information about a command.")
}
