package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/actionbind/internal/config"
	"github.com/dshills/actionbind/internal/event"
	"github.com/dshills/actionbind/internal/input"
	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/input/normalize"
	"github.com/dshills/actionbind/internal/input/replay"
	"github.com/dshills/actionbind/internal/input/script"
	"github.com/dshills/actionbind/internal/platform"
	"github.com/dshills/actionbind/internal/platform/tcellsrc"
)

// errQuit is returned by Run when the user asks to leave.
var errQuit = errors.New("quit")

// recentEvents is how many dispatched events the display keeps.
const recentEvents = 10

type probe struct {
	opts     options
	logger   *slog.Logger
	manager  *input.Manager
	bindings *config.Bindings
	hook     *script.Hook

	view   *view
	recent []string
	status string
	quit   bool
}

func newProbe(opts options, bindings *config.Bindings, logger *slog.Logger) (*probe, error) {
	p := &probe{
		opts:     opts,
		logger:   logger,
		bindings: bindings,
		status:   "Esc or Ctrl-C quits",
	}

	p.manager = input.NewManager(
		input.WithLogger(logger),
		input.WithFrameFunc(p.draw),
		input.WithPanicHandler(func(sub event.Subscription, r any, _ []byte) {
			logger.Error("subscriber panicked", "subscription", sub.Name(), "panic", r)
		}),
	)
	if err := bindings.Apply(p.manager); err != nil {
		return nil, fmt.Errorf("applying bindings: %w", err)
	}

	if opts.Script != "" {
		h, err := script.Load(opts.Script, script.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		p.hook = h
		p.manager.Hooks().RegisterWithOptions(h, h.Name(), input.HookPriorityNormal)
	}

	_, err := p.manager.Subscribe(p.onEvent,
		event.WithPriority(event.PriorityLow),
		event.WithName("probe"),
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Run owns the terminal until the user quits, a signal arrives or the
// terminal goes away. It returns the manager's metrics.
func (p *probe) Run() (input.MetricsSnapshot, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return input.MetricsSnapshot{}, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return input.MetricsSnapshot{}, fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	p.view = newView(screen)
	tty := tcellsrc.New(screen, tcellsrc.WithLogger(p.logger))
	tty.OnResize = func(int, int) { screen.Sync() }

	src, finish, err := p.sources(tty)
	if err != nil {
		return input.MetricsSnapshot{}, err
	}
	defer finish()

	var updates <-chan *config.Bindings
	if p.opts.Watch {
		w := config.NewWatcher(p.opts.ConfigPath, config.WithWatcherLogger(p.logger))
		if err := w.Start(); err != nil {
			return input.MetricsSnapshot{}, fmt.Errorf("watching %s: %w", p.opts.ConfigPath, err)
		}
		defer w.Stop()
		updates = w.Updates()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(p.opts.Tick)
	defer ticker.Stop()

	p.logger.Info("probe started", "actions", len(p.bindings.Actions), "tick", p.opts.Tick)
	for {
		select {
		case <-ctx.Done():
			return p.manager.Metrics(), nil

		case <-tty.Done():
			return p.manager.Metrics(), errors.New("terminal closed")

		case b, ok := <-updates:
			if ok {
				p.reload(b)
			}

		case <-ticker.C:
			p.manager.Step(src)
			if p.quit {
				if n := tty.Dropped(); n > 0 {
					p.logger.Warn("terminal events dropped", "count", n)
				}
				return p.manager.Metrics(), errQuit
			}
		}
	}
}

// sources wraps the terminal source for -record and -replay. The returned
// func saves the recording.
func (p *probe) sources(tty platform.Source) (platform.Source, func(), error) {
	src := tty
	if p.opts.Replay != "" {
		rec, err := replay.Load(p.opts.Replay)
		if err != nil {
			return nil, nil, err
		}
		var opts []replay.PlayerOption
		if p.opts.Loop {
			opts = append(opts, replay.WithLoop())
		}
		p.logger.Info("replaying", "path", p.opts.Replay, "frames", rec.Length, "samples", rec.SampleCount())
		src = platform.Merge(src, replay.NewPlayer(rec, opts...))
	}

	if p.opts.Record == "" {
		return src, func() {}, nil
	}
	recorder := replay.NewRecorder(src)
	recorder.Start()
	finish := func() {
		rec := recorder.Stop()
		if err := replay.Save(rec, p.opts.Record); err != nil {
			p.logger.Error("saving recording failed", "path", p.opts.Record, "error", err)
			return
		}
		p.logger.Info("recording saved", "path", p.opts.Record, "frames", rec.Length, "samples", rec.SampleCount())
	}
	return recorder, finish, nil
}

// Close releases the script hook, if any.
func (p *probe) Close() {
	if p.hook != nil {
		_ = p.hook.Close()
	}
}

// reload applies bindings from the watcher and removes actions the file
// no longer declares.
func (p *probe) reload(b *config.Bindings) {
	if err := b.Apply(p.manager); err != nil {
		p.logger.Warn("applying reloaded bindings failed", "error", err)
		p.status = "reload failed: " + err.Error()
		return
	}
	for _, name := range b.Stale(p.bindings) {
		p.manager.RemoveAction(name)
	}
	p.bindings = b
	p.status = "reloaded at " + time.Now().Format(time.TimeOnly)
	p.logger.Info("bindings reloaded", "actions", len(b.Actions))
}

func (p *probe) onEvent(e normalize.Event) event.Result {
	if e.Strength() > 0 && isQuit(e.Key(), e.Modifiers()) {
		p.quit = true
	}
	if e.Kind() == platform.KindMouseMovement {
		return event.Continue
	}

	line := describe(e)
	p.recent = append(p.recent, line)
	if len(p.recent) > recentEvents {
		p.recent = p.recent[len(p.recent)-recentEvents:]
	}
	return event.Continue
}

func isQuit(k key.Key, mods key.Modifier) bool {
	return k == key.Physical(key.CodeEscape) || (k == key.Rune('c') && mods.Has(key.ModCtrl))
}

func describe(e normalize.Event) string {
	name := e.AsText()
	if m := e.Modifiers(); m != key.ModNone {
		name = m.String() + "+" + name
	}
	actions := "-"
	if !e.IsRawKey() {
		actions = strings.Join(e.Actions(), ",")
	}
	return fmt.Sprintf("%-24s %-9s %.2f  %s", name, e.Kind(), e.Strength(), actions)
}

func (p *probe) draw(frame uint64) {
	p.view.render(frameView{
		frame:   frame,
		actions: p.manager.Actions(),
		keys:    p.manager.Keys,
		recent:  p.recent,
		status:  p.status,
	})
}
