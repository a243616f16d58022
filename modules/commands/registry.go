package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// CommandHandler is the function signature for command handlers
type CommandHandler func(app *App, args []string) error

// SubCommand represents a sub-command
type SubCommand struct {
	Name        string
	Description string
	Handler     CommandHandler
}

// Command represents a CLI command
type Command struct {
	Name        string
	Aliases     []string
	Category    string
	Description string
	Usage       string
	Examples    []string
	Handler     CommandHandler
	SubCommands []SubCommand
	Order       int
}

// Registry holds the registered commands
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// categoryOrder is the help listing order
var categoryOrder = []string{
	"Assets",
	"Access Control",
	"Overview",
	"Bridge",
	"Session",
	"Configuration",
}

// NewRegistry creates a registry holding every parttrack command
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]string),
	}
	registerAssetCommands(r)
	registerAclCommands(r)
	registerOverviewCommands(r)
	registerBridgeCommands(r)
	registerShellCommands(r)
	registerConfigCommands(r)
	return r
}

// Register adds a command and its aliases
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd.Name
	}
}

// Get returns a command by name or alias
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmdName, ok := r.aliases[name]; ok {
		return r.commands[cmdName]
	}
	return nil
}

// All returns every command sorted by order then name
func (r *Registry) All() []*Command {
	commands := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		commands = append(commands, cmd)
	}
	sort.Slice(commands, func(i, j int) bool {
		if commands[i].Order != commands[j].Order {
			return commands[i].Order < commands[j].Order
		}
		return commands[i].Name < commands[j].Name
	})
	return commands
}

// Names returns every command name and alias, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for alias := range r.aliases {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// Run dispatches args[0] to its command
func (r *Registry) Run(app *App, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given\nRun 'parttrack help' for usage.")
	}
	cmd := r.Get(args[0])
	if cmd == nil {
		return fmt.Errorf("unknown command: %s\nRun 'parttrack help' for usage.", args[0])
	}

	rest := args[1:]
	if len(rest) > 0 {
		if sub := findSubCommand(cmd, rest[0]); sub != nil && sub.Handler != nil {
			return sub.Handler(app, rest[1:])
		}
	}
	if cmd.Handler == nil {
		return fmt.Errorf("%s requires a sub-command\nUsage: %s", cmd.Name, cmd.Usage)
	}
	return cmd.Handler(app, rest)
}

// PrintCommands prints the commands grouped by category
func (r *Registry) PrintCommands(w io.Writer) {
	categories := make(map[string][]*Command)
	for _, cmd := range r.All() {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}

	for _, category := range categoryOrder {
		cmds := categories[category]
		if len(cmds) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s:\n", category)
		for _, cmd := range cmds {
			aliases := ""
			if len(cmd.Aliases) > 0 {
				aliases = fmt.Sprintf(" (%s)", strings.Join(cmd.Aliases, ", "))
			}
			fmt.Fprintf(w, "    %-20s %s%s\n", cmd.Name, cmd.Description, aliases)
		}
		fmt.Fprintln(w)
	}
}

// PrintCommandHelp prints help for a specific command
func (r *Registry) PrintCommandHelp(w io.Writer, name string) {
	cmd := r.Get(name)
	if cmd == nil {
		fmt.Fprintf(w, "Unknown command: %s\n", name)
		return
	}

	fmt.Fprintf(w, "Command: %s\n", cmd.Name)
	if len(cmd.Aliases) > 0 {
		fmt.Fprintf(w, "Aliases: %s\n", strings.Join(cmd.Aliases, ", "))
	}
	fmt.Fprintf(w, "Category: %s\n\n", cmd.Category)
	fmt.Fprintf(w, "Description:\n  %s\n\n", cmd.Description)

	if cmd.Usage != "" {
		fmt.Fprintf(w, "Usage:\n  %s\n\n", cmd.Usage)
	}

	if len(cmd.SubCommands) > 0 {
		fmt.Fprintln(w, "Sub-commands:")
		for _, sub := range cmd.SubCommands {
			fmt.Fprintf(w, "  %-15s %s\n", sub.Name, sub.Description)
		}
		fmt.Fprintln(w)
	}

	if len(cmd.Examples) > 0 {
		fmt.Fprintln(w, "Examples:")
		for _, example := range cmd.Examples {
			fmt.Fprintf(w, "  %s\n", example)
		}
	}
}

func findSubCommand(cmd *Command, name string) *SubCommand {
	for i := range cmd.SubCommands {
		if cmd.SubCommands[i].Name == name {
			return &cmd.SubCommands[i]
		}
	}
	return nil
}
