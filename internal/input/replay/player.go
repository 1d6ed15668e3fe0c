package replay

import "github.com/dshills/actionbind/internal/platform"

// Player is a platform.Source that replays a Recording, one frame per
// Poll. It is not safe for concurrent use.
type Player struct {
	rec   *Recording
	loop  bool
	frame int
	next  int
	loops int
}

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithLoop restarts playback from the first frame after the last one.
func WithLoop() PlayerOption {
	return func(p *Player) {
		p.loop = true
	}
}

// NewPlayer creates a player positioned at the first frame.
func NewPlayer(rec *Recording, opts ...PlayerOption) *Player {
	if rec == nil {
		rec = &Recording{}
	}
	p := &Player{rec: rec}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll implements platform.Source. After the last frame it returns dst
// unchanged unless looping.
func (p *Player) Poll(dst []platform.Sample) []platform.Sample {
	if p.frame >= p.rec.Length {
		if !p.loop || p.rec.Length == 0 {
			return dst
		}
		p.Reset()
		p.loops++
	}

	if p.next < len(p.rec.Frames) && p.rec.Frames[p.next].Index == p.frame {
		dst = append(dst, p.rec.Frames[p.next].Samples...)
		p.next++
	}
	p.frame++
	return dst
}

// Done returns true once every frame was played. A looping player is
// never done.
func (p *Player) Done() bool {
	if p.loop && p.rec.Length > 0 {
		return false
	}
	return p.frame >= p.rec.Length
}

// Frame returns the index of the next frame to play.
func (p *Player) Frame() int {
	return p.frame
}

// Loops returns how many times a looping player restarted.
func (p *Player) Loops() int {
	return p.loops
}

// Reset rewinds to the first frame.
func (p *Player) Reset() {
	p.frame = 0
	p.next = 0
}
