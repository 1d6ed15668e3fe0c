package replay

import (
	"slices"
	"sync"

	"github.com/dshills/actionbind/internal/platform"
)

// Frame is the samples polled during one frame.
type Frame struct {
	// Index is the frame number relative to the start of the recording.
	Index   int
	Samples []platform.Sample
}

// Recording is a captured input session. Frames without samples are not
// stored; Length counts them.
type Recording struct {
	Length int
	Frames []Frame
}

// SampleCount returns the number of recorded samples.
func (r *Recording) SampleCount() int {
	n := 0
	for _, f := range r.Frames {
		n += len(f.Samples)
	}
	return n
}

// Recorder is a platform.Source that passes samples through from another
// source and records them while recording is on.
type Recorder struct {
	src platform.Source

	mu        sync.Mutex
	recording bool
	current   Recording
}

// NewRecorder wraps src.
func NewRecorder(src platform.Source) *Recorder {
	return &Recorder{src: src}
}

// Start begins a new recording, discarding one in progress.
func (r *Recorder) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = true
	r.current = Recording{}
}

// Stop ends recording and returns what was captured, or nil if not
// recording.
func (r *Recorder) Stop() *Recording {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return nil
	}
	r.recording = false
	rec := r.current
	r.current = Recording{}
	return &rec
}

// IsRecording returns true if currently recording.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Frames returns the number of frames recorded so far, or 0 if not
// recording.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return r.current.Length
}

// Poll implements platform.Source.
func (r *Recorder) Poll(dst []platform.Sample) []platform.Sample {
	start := len(dst)
	dst = r.src.Poll(dst)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return dst
	}
	if polled := dst[start:]; len(polled) > 0 {
		r.current.Frames = append(r.current.Frames, Frame{
			Index:   r.current.Length,
			Samples: slices.Clone(polled),
		})
	}
	r.current.Length++
	return dst
}
