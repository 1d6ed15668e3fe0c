// Command inputprobe shows live action states for terminal input.
//
// It loads a bindings file, reads keys and mouse events from the terminal
// and draws every action's strength and phase once per frame. With -watch
// the bindings file is reloaded when it changes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/dshills/actionbind/internal/config"
	"github.com/dshills/actionbind/internal/config/loader"
	"github.com/dshills/actionbind/internal/input"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	Tick       time.Duration
	LogLevel   string
	LogFile    string
	Dump       bool
	Format     string
	Watch      bool
	Script     string
	Record     string
	Replay     string
	Loop       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger, closeLog, err := newLogger(opts.LogFile, opts.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	bindings, err := loadBindings(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.Dump {
		if err := dump(os.Stdout, opts.Format, bindings); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: inputprobe needs a terminal on stdout (use -dump to print bindings)")
		return 1
	}

	p, err := newProbe(opts, bindings, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer p.Close()

	stats, err := p.Run()
	if err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("frames %d, events %d (%d handled), p99 latency %s\n",
		stats.Frames, stats.EventsTotal, stats.HandledTotal, stats.P99SampleLatency)
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Bindings file (.toml, .yaml, .yml or .json)")
	flag.StringVar(&opts.ConfigPath, "c", "", "Bindings file (shorthand)")
	flag.DurationVar(&opts.Tick, "tick", input.DefaultTickInterval, "Frame interval")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.Dump, "dump", false, "Print the effective bindings and exit")
	flag.StringVar(&opts.Format, "format", "toml", "Format for -dump (toml, yaml, json)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the bindings file when it changes")
	flag.StringVar(&opts.Script, "script", "", "Lua input hook script")
	flag.StringVar(&opts.Record, "record", "", "Record terminal input to this file")
	flag.StringVar(&opts.Replay, "replay", "", "Play a recording alongside terminal input")
	flag.BoolVar(&opts.Loop, "loop", false, "Loop the -replay recording")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "inputprobe - live action bindings in the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: inputprobe [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  inputprobe                          Built-in bindings\n")
		fmt.Fprintf(os.Stderr, "  inputprobe -c keys.toml -watch      Hot-reload a bindings file\n")
		fmt.Fprintf(os.Stderr, "  inputprobe -c keys.yaml -dump       Print bindings with overrides applied\n")
		fmt.Fprintf(os.Stderr, "  inputprobe -script remap.lua        Run samples through a Lua hook\n")
		fmt.Fprintf(os.Stderr, "  inputprobe -record session.json     Record input for later -replay\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("inputprobe %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if _, err := parseLevel(opts.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if _, err := parseFormat(opts.Format); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if opts.Tick <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -tick must be positive\n")
		os.Exit(1)
	}
	if opts.Watch && opts.ConfigPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -watch needs -config\n")
		os.Exit(1)
	}

	return opts
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
	}
}

func parseFormat(s string) (loader.Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return loader.FormatTOML, nil
	case "yaml", "yml":
		return loader.FormatYAML, nil
	case "json":
		return loader.FormatJSON, nil
	default:
		return 0, fmt.Errorf("%w: %q", loader.ErrUnsupportedFormat, s)
	}
}

// newLogger logs to path, or nowhere when path is empty: the terminal
// belongs to the probe display.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return logger, func() { _ = f.Close() }, nil
}

// loadBindings reads path, or returns the built-in bindings when path is
// empty.
func loadBindings(path string) (*config.Bindings, error) {
	if path == "" {
		return defaultBindings(), nil
	}
	return config.Load(path)
}

func dump(w io.Writer, format string, b *config.Bindings) error {
	f, err := parseFormat(format)
	if err != nil {
		return err
	}
	data, err := config.Encode(f, b)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func defaultBindings() *config.Bindings {
	return &config.Bindings{
		Actions: []config.ActionBinding{
			{Name: "up", Keys: []string{"Up", "w", "mouse-wheel-up"}},
			{Name: "down", Keys: []string{"Down", "s", "mouse-wheel-down"}},
			{Name: "left", Keys: []string{"Left", "a"}},
			{Name: "right", Keys: []string{"Right", "d"}},
			{Name: "jump", Keys: []string{"Space"}},
			{Name: "fire", Keys: []string{"lmb", "Enter"}},
			{Name: "aim", Keys: []string{"rmb"}},
		},
	}
}
