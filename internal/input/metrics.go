package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/actionbind/internal/event"
	"github.com/dshills/actionbind/internal/platform"
)

// Metrics tracks input processing counters and latency.
// It is safe to read from another goroutine while the tick goroutine records.
type Metrics struct {
	// Sample counters
	keyboardSamples atomic.Uint64
	mouseSamples    atomic.Uint64
	gamepadSamples  atomic.Uint64
	otherSamples    atomic.Uint64
	ignoredSamples  atomic.Uint64
	hookConsumed    atomic.Uint64

	// Event counters
	eventsTotal      atomic.Uint64
	synthesizedTotal atomic.Uint64
	directTotal      atomic.Uint64
	handledTotal     atomic.Uint64
	stoppedTotal     atomic.Uint64

	frames atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	sampleLatencies   []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakSampleLatency atomic.Int64

	// Start time for uptime calculation
	startTime time.Time

	// Enable flag
	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		sampleLatencies:   make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordSample counts a raw sample by its platform kind.
func (m *Metrics) RecordSample(kind platform.Kind) {
	if !m.enabled.Load() {
		return
	}
	switch kind {
	case platform.KindKeyboard:
		m.keyboardSamples.Add(1)
	case platform.KindMouseButton, platform.KindMouseWheel, platform.KindMouseMovement:
		m.mouseSamples.Add(1)
	case platform.KindGamepad:
		m.gamepadSamples.Add(1)
	default:
		m.otherSamples.Add(1)
	}
}

// RecordSampleLatency records the time spent processing one sample.
func (m *Metrics) RecordSampleLatency(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakSampleLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakSampleLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.sampleLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// RecordIgnored records a sample with no transition (None or Cancel).
func (m *Metrics) RecordIgnored() {
	if !m.enabled.Load() {
		return
	}
	m.ignoredSamples.Add(1)
}

// RecordHookConsumption records when a hook consumes a sample.
func (m *Metrics) RecordHookConsumption() {
	if !m.enabled.Load() {
		return
	}
	m.hookConsumed.Add(1)
}

// eventOrigin says where a dispatched event came from.
type eventOrigin uint8

const (
	originRaw eventOrigin = iota
	originSynthesized
	originDirect
)

// recordEvent records one published event and its outcome.
func (m *Metrics) recordEvent(origin eventOrigin, out event.Outcome) {
	if !m.enabled.Load() {
		return
	}
	m.eventsTotal.Add(1)
	switch origin {
	case originSynthesized:
		m.synthesizedTotal.Add(1)
	case originDirect:
		m.directTotal.Add(1)
	}
	if out.Handled {
		m.handledTotal.Add(1)
	}
	if out.Stopped() {
		m.stoppedTotal.Add(1)
	}
}

// RecordFrame records a completed tick.
func (m *Metrics) RecordFrame() {
	m.frames.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Sample counters
	KeyboardSamples uint64
	MouseSamples    uint64
	GamepadSamples  uint64
	OtherSamples    uint64
	IgnoredSamples  uint64
	HookConsumed    uint64

	// Event counters
	EventsTotal      uint64
	SynthesizedTotal uint64
	DirectTotal      uint64
	HandledTotal     uint64
	StoppedTotal     uint64

	Frames uint64

	// Latency stats
	AvgSampleLatency  time.Duration
	MaxSampleLatency  time.Duration
	P99SampleLatency  time.Duration
	PeakSampleLatency time.Duration

	// Rates
	EventsPerSecond float64

	// Uptime
	Uptime time.Duration
}

// SamplesTotal returns the number of samples counted across all kinds.
func (s MetricsSnapshot) SamplesTotal() uint64 {
	return s.KeyboardSamples + s.MouseSamples + s.GamepadSamples + s.OtherSamples
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := slices.Clone(m.sampleLatencies)
	uptime := time.Since(m.startTime)
	m.mu.RUnlock()

	events := m.eventsTotal.Load()

	snap := MetricsSnapshot{
		KeyboardSamples:   m.keyboardSamples.Load(),
		MouseSamples:      m.mouseSamples.Load(),
		GamepadSamples:    m.gamepadSamples.Load(),
		OtherSamples:      m.otherSamples.Load(),
		IgnoredSamples:    m.ignoredSamples.Load(),
		HookConsumed:      m.hookConsumed.Load(),
		EventsTotal:       events,
		SynthesizedTotal:  m.synthesizedTotal.Load(),
		DirectTotal:       m.directTotal.Load(),
		HandledTotal:      m.handledTotal.Load(),
		StoppedTotal:      m.stoppedTotal.Load(),
		Frames:            m.frames.Load(),
		PeakSampleLatency: time.Duration(m.peakSampleLatency.Load()),
		Uptime:            uptime,
	}

	if uptime > 0 {
		snap.EventsPerSecond = float64(events) / uptime.Seconds()
	}

	snap.AvgSampleLatency, snap.MaxSampleLatency, snap.P99SampleLatency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := slices.DeleteFunc(slices.Clone(latencies), func(l time.Duration) bool { return l <= 0 })
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	maxLat = valid[len(valid)-1]

	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]

	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Uint64{
		&m.keyboardSamples, &m.mouseSamples, &m.gamepadSamples, &m.otherSamples,
		&m.ignoredSamples, &m.hookConsumed, &m.eventsTotal, &m.synthesizedTotal,
		&m.directTotal, &m.handledTotal, &m.stoppedTotal, &m.frames,
	} {
		c.Store(0)
	}
	m.peakSampleLatency.Store(0)

	m.mu.Lock()
	m.sampleLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// HealthStatus represents the current health status of input processing.
type HealthStatus struct {
	Healthy          bool
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck reports whether sample processing stays under a latency budget,
// typically a fraction of the tick interval.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		PeakLatency:      time.Duration(m.peakSampleLatency.Load()),
		LatencyThreshold: latencyThreshold,
		Message:          "healthy",
	}
	if status.PeakLatency > latencyThreshold {
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	}
	return status
}

// Timer helps measure operation duration.
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// StartSampleTimer starts a timer for measuring sample processing.
func (m *Metrics) StartSampleTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// Stop stops the timer and records the sample latency.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.metrics.RecordSampleLatency(elapsed)
	return elapsed
}
