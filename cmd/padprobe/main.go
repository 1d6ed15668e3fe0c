// Command padprobe shows live action states for gamepad, mouse and
// keyboard input in an Ebitengine window.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/dshills/actionbind/internal/config"
	"github.com/dshills/actionbind/internal/event"
	"github.com/dshills/actionbind/internal/input"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/input/normalize"
	"github.com/dshills/actionbind/internal/platform/ebitensrc"
)

const (
	screenWidth  = 640
	screenHeight = 480
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Bindings file (.toml, .yaml, .yml or .json)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	watch := flag.Bool("watch", false, "Reload the bindings file when it changes")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", *logLevel)
		return 1
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	bindings := defaultBindings()
	if *configPath != "" {
		b, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		bindings = b
	}

	g, err := newGame(bindings, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *watch && *configPath != "" {
		w := config.NewWatcher(*configPath, config.WithWatcherLogger(logger))
		if err := w.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching %s: %v\n", *configPath, err)
			return 1
		}
		defer w.Stop()
		g.updates = w.Updates()
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("padprobe")
	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game loop failed", "error", err)
		return 1
	}
	return 0
}

func defaultBindings() *config.Bindings {
	return &config.Bindings{
		Actions: []config.ActionBinding{
			{Name: "move-left", Keys: []string{"thumbstick-1-left", "DPadLeft", "a"}},
			{Name: "move-right", Keys: []string{"thumbstick-1-right", "DPadRight", "d"}},
			{Name: "move-up", Keys: []string{"thumbstick-1-up", "DPadUp", "w"}},
			{Name: "move-down", Keys: []string{"thumbstick-1-down", "DPadDown", "s"}},
			{Name: "look-left", Keys: []string{"thumbstick-2-left", "mouse-left"}},
			{Name: "look-right", Keys: []string{"thumbstick-2-right", "mouse-right"}},
			{Name: "jump", Keys: []string{"ButtonA", "Space"}},
			{Name: "fire", Threshold: ptr(0.3), Keys: []string{"ButtonR2", "lmb"}},
			{Name: "zoom-in", Keys: []string{"mouse-wheel-up"}},
		},
	}
}

func ptr(v float64) *float64 { return &v }

// game adapts the input manager to Ebitengine's update loop.
type game struct {
	logger   *slog.Logger
	src      *ebitensrc.Source
	manager  *input.Manager
	bindings *config.Bindings
	updates  <-chan *config.Bindings

	text string
	last string
	quit bool
}

func newGame(bindings *config.Bindings, logger *slog.Logger) (*game, error) {
	g := &game{
		logger:   logger,
		src:      ebitensrc.New(),
		bindings: bindings,
	}
	g.manager = input.NewManager(input.WithLogger(logger), input.WithFrameFunc(g.snapshot))
	if err := bindings.Apply(g.manager); err != nil {
		return nil, fmt.Errorf("applying bindings: %w", err)
	}
	if _, err := g.manager.Subscribe(g.onEvent, event.WithName("padprobe")); err != nil {
		return nil, err
	}
	return g, nil
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	select {
	case b, ok := <-g.updates:
		if ok {
			g.reload(b)
		}
	default:
	}

	g.src.Update()
	g.manager.Step(g.src)
	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, g.text)
}

// Layout implements ebiten.Game.
func (g *game) Layout(int, int) (int, int) {
	return screenWidth, screenHeight
}

func (g *game) reload(b *config.Bindings) {
	if err := b.Apply(g.manager); err != nil {
		g.logger.Warn("applying reloaded bindings failed", "error", err)
		return
	}
	for _, name := range b.Stale(g.bindings) {
		g.manager.RemoveAction(name)
	}
	g.bindings = b
	g.logger.Info("bindings reloaded", "actions", len(b.Actions))
}

func (g *game) onEvent(e normalize.Event) event.Result {
	if e.Key() == key.Physical(key.CodeEscape) && e.Strength() > 0 {
		g.quit = true
	}
	if !e.IsRawKey() && !e.Changed() {
		g.last = fmt.Sprintf("%s %.2f -> %s", e.AsText(), e.Strength(), strings.Join(e.Actions(), ","))
	}
	return event.Continue
}

// snapshot formats the action table while the frame's queries are valid.
func (g *game) snapshot(frame uint64) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "padprobe  frame %d  (Esc quits)\n\n", frame)
	for _, a := range g.manager.Actions() {
		fmt.Fprintf(&sb, "%-12s %4.2f / %4.2f  %s\n", a.Name, a.Strength, a.Threshold, a.Phase)
	}
	if g.last != "" {
		fmt.Fprintf(&sb, "\nlast: %s\n", g.last)
	}
	g.text = sb.String()
}
