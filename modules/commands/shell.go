package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const (
	historyFile     = ".parttrack_history"
	maxHistoryLines = 1000
)

func registerShellCommands(r *Registry) {
	r.Register(&Command{
		Name:        "shell",
		Category:    "Session",
		Description: "Run commands interactively against one backend session",
		Usage:       "parttrack shell",
		Examples: []string{
			"parttrack shell",
			"echo 'dashboard' | parttrack shell",
		},
		Handler: func(app *App, args []string) error {
			return newShell(r, app, os.Stdin).Run()
		},
		Order: 45,
	})
}

// Shell reads commands line by line and dispatches them to the registry
type Shell struct {
	registry *Registry
	app      *App
	in       io.Reader
	rl       *readline.Instance
	isTTY    bool
	running  bool
}

func newShell(registry *Registry, app *App, in io.Reader) *Shell {
	s := &Shell{registry: registry, app: app, in: in}
	if f, ok := in.(*os.File); ok {
		s.isTTY = term.IsTerminal(int(f.Fd()))
	}
	return s
}

// Run reads until exit, end of input or cancellation
func (s *Shell) Run() error {
	s.running = true
	if s.isTTY {
		return s.runInteractive()
	}
	return s.runNonInteractive()
}

func (s *Shell) runInteractive() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            s.prompt(),
		HistoryFile:       historyPath(),
		HistoryLimit:      maxHistoryLines,
		AutoComplete:      s.completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
		Stdout:            s.app.Out,
		Stderr:            s.app.Err,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()
	s.rl = rl

	s.app.printf("%s shell. Type 'help' for commands, 'exit' to quit.\n\n", s.app.Render.Title.Render("parttrack"))

	for s.running && s.app.Ctx.Err() == nil {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				s.app.println("Use 'exit' or 'quit' to leave the shell.")
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			s.app.println("")
			return nil
		}
		if err != nil {
			return err
		}
		s.handle(line)
	}
	return nil
}

func (s *Shell) runNonInteractive() error {
	scanner := bufio.NewScanner(s.in)
	for s.running && s.app.Ctx.Err() == nil && scanner.Scan() {
		s.handle(scanner.Text())
	}
	return scanner.Err()
}

func (s *Shell) prompt() string {
	return s.app.Render.Success.Render("parttrack>") + " "
}

// handle runs one input line
func (s *Shell) handle(line string) {
	parts := parseCommandLine(strings.TrimSpace(line))
	if len(parts) == 0 {
		return
	}

	switch strings.ToLower(parts[0]) {
	case "exit", "quit", "q":
		s.running = false
		return
	case "history":
		s.showHistory(parts[1:])
		return
	case "help":
		if len(parts) > 1 {
			s.registry.PrintCommandHelp(s.app.Out, parts[1])
		} else {
			s.registry.PrintCommands(s.app.Out)
		}
		return
	}

	cmd := s.registry.Get(parts[0])
	if cmd == nil {
		s.app.printf("Unknown command: %s\n", parts[0])
		s.app.println("Type 'help' for available commands.")
		return
	}
	if !shellAllowed(cmd) {
		s.app.printf("%s is not available inside the shell\n", cmd.Name)
		return
	}
	if err := s.registry.Run(s.app, parts); err != nil {
		s.app.printf("Error: %v\n", err)
	}
}

func (s *Shell) showHistory(args []string) {
	if s.rl == nil {
		s.app.println("History not available in non-interactive mode.")
		return
	}
	data, err := os.ReadFile(historyPath())
	if err != nil {
		s.app.println("No history available.")
		return
	}

	search := ""
	if len(args) > 0 {
		search = strings.ToLower(args[0])
	}
	count := 0
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || (search != "" && !strings.Contains(strings.ToLower(line), search)) {
			continue
		}
		s.app.printf("%4d  %s\n", i+1, line)
		count++
		if count >= 50 {
			s.app.println("... (showing first 50 entries)")
			return
		}
	}
}

func (s *Shell) completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem("help", readline.PcItemDynamic(func(string) []string {
			return s.registry.Names()
		})),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
		readline.PcItem("history"),
	}
	for _, cmd := range s.registry.All() {
		if !shellAllowed(cmd) {
			continue
		}
		subs := make([]readline.PrefixCompleterInterface, 0, len(cmd.SubCommands))
		for _, sub := range cmd.SubCommands {
			subs = append(subs, readline.PcItem(sub.Name))
		}
		items = append(items, readline.PcItem(cmd.Name, subs...))
	}
	return readline.NewPrefixCompleter(items...)
}

// shellAllowed excludes the long-running commands
func shellAllowed(cmd *Command) bool {
	return cmd.Name != "shell" && cmd.Name != "serve"
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

// parseCommandLine splits line on blanks, keeping quoted runs together
func parseCommandLine(line string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	for _, ch := range line {
		switch {
		case quote != 0 && ch == quote:
			quote = 0
		case quote == 0 && (ch == '"' || ch == '\''):
			quote = ch
		case quote == 0 && (ch == ' ' || ch == '\t'):
			if current.Len() > 0 {
				parts = append(parts, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(ch)
		}
	}
	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
