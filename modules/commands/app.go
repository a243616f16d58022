package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"parttrack/modules/core/feature"
	"parttrack/modules/platform/config"
	"parttrack/modules/platform/eventbus"
	"parttrack/modules/platform/logger"
	"parttrack/modules/platform/metrics"
	"parttrack/modules/platform/transport"
	"parttrack/modules/ui/render"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds everything a command needs: configuration, the backend client
// and the shared logging, metrics and event plumbing
type App struct {
	Ctx        context.Context
	Config     *config.Config
	ConfigPath string
	Log        *logger.Logger
	Bus        *eventbus.Bus
	Registry   *prometheus.Registry
	Metrics    *metrics.Recorder
	Client     *transport.Client
	Render     *render.Renderer
	Out        io.Writer
	Err        io.Writer

	logFile *os.File
}

// AppOptions tunes NewApp
type AppOptions struct {
	Verbose bool
	Out     io.Writer
	Err     io.Writer
}

// NewApp wires the application from cfg
func NewApp(ctx context.Context, cfg *config.Config, configPath string, opts AppOptions) (*App, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if cfg.API == nil {
		cfg.API = config.DefaultAPIConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = config.DefaultLoggerConfig()
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}

	app := &App{
		Ctx:        ctx,
		Config:     cfg,
		ConfigPath: configPath,
		Bus:        eventbus.NewBus(),
		Registry:   prometheus.NewRegistry(),
		Out:        opts.Out,
		Err:        opts.Err,
	}
	app.Metrics = metrics.NewRecorder(app.Registry)

	level := logger.ParseLevel(cfg.Logger.Level)
	if opts.Verbose {
		level = logger.DEBUG
	}
	outputs := []io.Writer{opts.Err}
	if cfg.Logger.FilePath != "" {
		f, err := logger.CreateLogFile(cfg.Logger.FilePath, cfg.Logger.MaxSizeMB)
		if err != nil {
			return nil, err
		}
		app.logFile = f
		outputs = []io.Writer{f}
		if opts.Verbose {
			outputs = append(outputs, opts.Err)
		}
	}
	app.Log = logger.NewLogger(level, outputs, "")
	logger.SetDefault(app.Log)

	token, err := cfg.API.ResolveToken()
	if err != nil {
		return nil, err
	}
	app.Client = transport.NewClient(cfg.API.URL, cfg.API.Timeout(), transport.NewStaticToken(token), app.Log.With("http"))

	color := render.ColorAuto
	if cfg.UI != nil && cfg.UI.Color != "" {
		color = cfg.UI.Color
	}
	app.Render = render.New(opts.Out, color)

	return app, nil
}

// Close releases the log file
func (a *App) Close() error {
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

// FeatureOptions returns the facade options sharing the app plumbing
func (a *App) FeatureOptions() []feature.Option {
	return []feature.Option{
		feature.WithLogger(a.Log),
		feature.WithMetrics(a.Metrics),
		feature.WithBus(a.Bus),
	}
}

// PageLimit returns the configured list page size
func (a *App) PageLimit() int {
	if a.Config.Pagination == nil || a.Config.Pagination.PageLimit <= 0 {
		return config.DefaultPageLimit
	}
	return a.Config.Pagination.PageLimit
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(s string) {
	fmt.Fprintln(a.Out, s)
}

func (a *App) printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	a.println(string(data))
	return nil
}
