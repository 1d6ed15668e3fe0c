package tcellsrc

import (
	"io"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/actionbind/internal/input/key"
	"github.com/dshills/actionbind/internal/platform"
)

// DefaultBufferSize is the capacity of the event channel between the
// reader goroutine and Poll.
const DefaultBufferSize = 256

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger used for dropped events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBufferSize sets the event channel capacity.
func WithBufferSize(n int) Option {
	return func(s *Source) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// Source is a platform.Source backed by a tcell screen.
//
// Poll must be called from a single goroutine.
type Source struct {
	events     chan tcell.Event
	logger     *slog.Logger
	bufferSize int

	// keys pressed in the previous Poll; they are released unless they
	// repeat.
	down []key.Key

	buttons tcell.ButtonMask
	pointer platform.Vec3
	focused bool

	dropped atomic.Uint64
	done    chan struct{}

	// OnResize is called from Poll when the terminal size changes.
	OnResize func(width, height int)
}

// New creates a source and starts reading events from screen. The screen
// must already be initialized. Mouse and focus reporting are enabled.
func New(screen tcell.Screen, opts ...Option) *Source {
	s := newSource(opts...)
	screen.EnableMouse()
	screen.EnableFocus()
	go s.read(screen)
	return s
}

func newSource(opts ...Option) *Source {
	s := &Source{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		bufferSize: DefaultBufferSize,
		focused:    true,
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.events = make(chan tcell.Event, s.bufferSize)
	return s
}

// read pumps screen events into the channel until the screen is finalized.
func (s *Source) read(screen tcell.Screen) {
	defer close(s.done)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		default:
			// Buffer full; the tick loop has stalled.
			if n := s.dropped.Add(1); n == 1 || n%100 == 0 {
				s.logger.Warn("terminal event dropped", "dropped", n)
			}
		}
	}
}

// Done is closed when the reader goroutine exits.
func (s *Source) Done() <-chan struct{} {
	return s.done
}

// Dropped returns how many events were discarded because Poll fell behind.
func (s *Source) Dropped() uint64 {
	return s.dropped.Load()
}

// Poll implements platform.Source.
func (s *Source) Poll(dst []platform.Sample) []platform.Sample {
	var pressed []platform.Sample
	var repeated []key.Key

drain:
	for {
		select {
		case ev := <-s.events:
			pressed = s.convert(ev, pressed, &repeated)
		default:
			break drain
		}
	}

	for _, k := range s.down {
		if !slices.Contains(repeated, k) {
			dst = append(dst, platform.Sample{Key: k, Kind: platform.KindKeyboard, State: platform.StateEnd})
		}
	}
	s.down = append(s.down[:0], repeated...)
	return append(dst, pressed...)
}

// convert appends the samples for one event. Keys pressed by the event are
// recorded in down.
func (s *Source) convert(ev tcell.Event, dst []platform.Sample, down *[]key.Key) []platform.Sample {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, mods := convertKey(e)
		if k.IsZero() {
			return dst
		}
		if !slices.Contains(*down, k) {
			*down = append(*down, k)
		}
		return append(dst, platform.Sample{
			Key:       k,
			Kind:      platform.KindKeyboard,
			State:     platform.StateBegin,
			Modifiers: mods,
		})

	case *tcell.EventMouse:
		return s.mouse(e, dst)

	case *tcell.EventFocus:
		if e.Focused == s.focused {
			return dst
		}
		s.focused = e.Focused
		if e.Focused {
			return dst
		}
		return s.cancelAll(dst, down)

	case *tcell.EventResize:
		if s.OnResize != nil {
			w, h := e.Size()
			s.OnResize(w, h)
		}
	}
	return dst
}

func (s *Source) mouse(e *tcell.EventMouse, dst []platform.Sample) []platform.Sample {
	x, y := e.Position()
	mods := convertMod(e.Modifiers())
	buttons := e.Buttons()

	pos := platform.Vec3{X: float64(x), Y: float64(y)}
	if pos != s.pointer {
		s.pointer = pos
		dst = append(dst, platform.Sample{
			Key:       key.Physical(key.CodeMouseMovement),
			Kind:      platform.KindMouseMovement,
			State:     platform.StateChange,
			Position:  pos,
			Modifiers: mods,
		})
	}

	for _, b := range mouseButtons {
		now, before := buttons&b.mask != 0, s.buttons&b.mask != 0
		if now == before {
			continue
		}
		state := platform.StateEnd
		if now {
			state = platform.StateBegin
		}
		dst = append(dst, platform.Sample{
			Key:       key.Physical(b.code),
			Kind:      platform.KindMouseButton,
			State:     state,
			Position:  pos,
			Modifiers: mods,
		})
	}
	s.buttons = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	wheel := func(z float64) platform.Sample {
		return platform.Sample{
			Key:       key.Physical(key.CodeMouseWheel),
			Kind:      platform.KindMouseWheel,
			State:     platform.StateChange,
			Position:  platform.Vec3{Z: z},
			Modifiers: mods,
		}
	}
	if buttons&tcell.WheelUp != 0 {
		dst = append(dst, wheel(1))
	}
	if buttons&tcell.WheelDown != 0 {
		dst = append(dst, wheel(-1))
	}
	return dst
}

// cancelAll cancels every held key and button and forgets them.
func (s *Source) cancelAll(dst []platform.Sample, down *[]key.Key) []platform.Sample {
	held := slices.Clone(s.down)
	for _, k := range *down {
		if !slices.Contains(held, k) {
			held = append(held, k)
		}
	}
	for _, k := range held {
		dst = append(dst, platform.Sample{Key: k, Kind: platform.KindFocus, State: platform.StateCancel})
	}
	for _, b := range mouseButtons {
		if s.buttons&b.mask != 0 {
			dst = append(dst, platform.Sample{Key: key.Physical(b.code), Kind: platform.KindFocus, State: platform.StateCancel})
		}
	}
	s.down = s.down[:0]
	*down = (*down)[:0]
	s.buttons = 0
	return dst
}
