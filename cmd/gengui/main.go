// Command gengui builds a widget document into a terminal window and runs it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/odvcencio/gengui/pkg/config"
	"github.com/odvcencio/gengui/pkg/observability"
	"github.com/odvcencio/gengui/pkg/ui/backend"
	"github.com/odvcencio/gengui/pkg/ui/backend/sim"
	tcellbackend "github.com/odvcencio/gengui/pkg/ui/backend/tcell"
)

// Version information - set via ldflags during build
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

type options struct {
	document    string
	title       string
	configPath  string
	backend     string
	watch       bool
	metricsAddr string
	logLevel    string
	version     bool
}

// newBackendFn creates the terminal backend for one run of the main loop.
// Tests replace it to drive the simulation screen.
var newBackendFn = newBackend

// isInteractiveTerminal is a variable so tests can run the tcell path
// checks without a TTY.
var isInteractiveTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stderr)
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCodeForError(err))
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("gengui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.title, "title", "", "window title (default ui.title)")
	fs.StringVar(&opts.configPath, "config", "", "config file path")
	fs.StringVar(&opts.backend, "backend", "", "terminal backend: tcell or sim")
	fs.BoolVar(&opts.watch, "watch", false, "rebuild the window when the document changes")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics and /healthz on this address")
	fs.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: gengui [flags] <document.json|document.yaml>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, withExitCode(err, exitUsage)
	}
	if opts.version {
		return opts, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, withExitCode(fmt.Errorf("expected one document, got %d arguments", fs.NArg()), exitUsage)
	}
	opts.document = fs.Arg(0)
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.backend != "" {
		cfg.UI.Backend = opts.backend
	}
	if opts.watch {
		cfg.Watch.Enabled = true
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, withExitCode(err, exitUsage)
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	if opts.version {
		fmt.Fprintf(stderr, "gengui %s (%s)\n", version, commit)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.UI.Backend == config.BackendTcell && !isInteractiveTerminal() {
		return withExitCode(fmt.Errorf("the tcell backend needs a terminal; use -backend sim"), exitUsage)
	}

	logOut, closeLog, err := logOutput(cfg, stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := observability.NewLogger("cli", observability.LoggerOptions{
		Level:  observability.ParseLevel(cfg.Logging.Level),
		Format: cfg.Logging.Format,
		Output: logOut,
	})

	if cfg.Tracing.Enabled {
		tp, err := observability.NewTracerProvider("gengui", version, logOut)
		if err != nil {
			return err
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	a := newApp(cfg, logger, opts.document, opts.title)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Metrics.Enabled {
		go func() {
			if err := observability.Serve(ctx, cfg.Metrics.Addr, observability.Router(a.status), logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}
	return a.run(ctx)
}

// logOutput picks the log destination. Without a log file, logs go to
// stderr for the sim backend and are dropped for tcell, which owns the
// terminal.
func logOutput(cfg *config.Config, stderr io.Writer) (io.Writer, func(), error) {
	if cfg.Logging.File != "" {
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}
	if cfg.UI.Backend == config.BackendTcell {
		return io.Discard, func() {}, nil
	}
	return stderr, func() {}, nil
}

func newBackend(cfg *config.Config) (backend.Backend, error) {
	if cfg.UI.Backend == config.BackendSim {
		return sim.New(cfg.UI.SimWidth, cfg.UI.SimHeight), nil
	}
	return tcellbackend.New()
}
