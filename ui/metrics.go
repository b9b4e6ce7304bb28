package ui

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
)

// LatencyTracker keeps a bounded ring of durations for percentile estimates.
type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	count   int
	idx     int
}

func NewLatencyTracker(size int) *LatencyTracker {
	if size <= 0 {
		size = 256
	}
	return &LatencyTracker{samples: make([]time.Duration, size)}
}

func (t *LatencyTracker) Observe(d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.samples[t.idx] = d
	t.idx = (t.idx + 1) % len(t.samples)
	if t.count < len(t.samples) {
		t.count++
	}
	t.mu.Unlock()
}

type LatencySnapshot struct {
	P50 time.Duration
	P99 time.Duration
	N   int
}

func (t *LatencyTracker) Snapshot() LatencySnapshot {
	if t == nil {
		return LatencySnapshot{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.count == 0 {
		return LatencySnapshot{}
	}
	values := make([]time.Duration, t.count)
	copy(values, t.samples[:t.count])
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	p50 := values[t.count/2]
	p99 := values[int(float64(t.count-1)*0.99)]
	return LatencySnapshot{P50: p50, P99: p99, N: t.count}
}

// LaneMetrics counts frames and overruns of one lane and tracks frame time.
type LaneMetrics struct {
	name      string
	frames    atomic.Uint64
	overruns  atomic.Uint64
	frameTime *LatencyTracker
}

func NewLaneMetrics(name string) *LaneMetrics {
	return &LaneMetrics{name: name, frameTime: NewLatencyTracker(512)}
}

// ObserveFrame records one drawn frame. An overrun frame took longer than the
// lane period; its sleep is skipped.
func (m *LaneMetrics) ObserveFrame(d time.Duration, overrun bool) {
	if m == nil {
		return
	}
	m.frames.Add(1)
	if overrun {
		m.overruns.Add(1)
	}
	m.frameTime.Observe(d)
}

func (m *LaneMetrics) Frames() uint64 {
	if m == nil {
		return 0
	}
	return m.frames.Load()
}

func (m *LaneMetrics) Overruns() uint64 {
	if m == nil {
		return 0
	}
	return m.overruns.Load()
}

func (m *LaneMetrics) FrameTime() LatencySnapshot {
	if m == nil {
		return LatencySnapshot{}
	}
	return m.frameTime.Snapshot()
}

// Summary is the shutdown stats line, e.g.
// "clock: 12,001 frames, 3 overruns, frame p50=1.2ms p99=4.1ms".
func (m *LaneMetrics) Summary() string {
	if m == nil {
		return ""
	}
	snap := m.FrameTime()
	return fmt.Sprintf("%s: %s frames, %s overruns, frame p50=%s p99=%s",
		m.name,
		humanize.Comma(int64(m.Frames())),
		humanize.Comma(int64(m.Overruns())),
		snap.P50.Round(time.Microsecond),
		snap.P99.Round(time.Microsecond))
}
