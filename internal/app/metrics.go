package app

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics accumulates wall-time samples per operation class. Classes
// are created on first use; recording to an existing class is
// lock-free.
type Metrics struct {
	mu        sync.RWMutex
	classes   map[string]*opClass
	startTime time.Time
}

type opClass struct {
	count   atomic.Uint64
	totalNs atomic.Int64
	minNs   atomic.Int64
	maxNs   atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		classes:   make(map[string]*opClass),
		startTime: time.Now(),
	}
}

// Record adds one duration sample to a class.
func (m *Metrics) Record(class string, duration time.Duration) {
	ns := duration.Nanoseconds()

	m.mu.RLock()
	c := m.classes[class]
	m.mu.RUnlock()

	if c == nil {
		m.mu.Lock()
		c = m.classes[class]
		if c == nil {
			c = &opClass{}
			// Initialize min to max int64 so the first sample is smaller.
			c.minNs.Store(1<<63 - 1)
			m.classes[class] = c
		}
		m.mu.Unlock()
	}

	c.count.Add(1)
	c.totalNs.Add(ns)

	for {
		old := c.minNs.Load()
		if ns >= old {
			break
		}
		if c.minNs.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := c.maxNs.Load()
		if ns <= old {
			break
		}
		if c.maxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Time records the duration of fn under the given class.
func (m *Metrics) Time(class string, fn func()) {
	start := time.Now()
	fn()
	m.Record(class, time.Since(start))
}

// OpSnapshot is a point-in-time view of one operation class.
type OpSnapshot struct {
	Class string
	Count uint64
	Total time.Duration
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Snapshot returns per-class snapshots sorted by class name.
func (m *Metrics) Snapshot() []OpSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]OpSnapshot, 0, len(m.classes))
	for name, c := range m.classes {
		count := c.count.Load()

		var avg int64
		if count > 0 {
			avg = c.totalNs.Load() / int64(count)
		}

		minNs := c.minNs.Load()
		if minNs == 1<<63-1 {
			minNs = 0
		}

		out = append(out, OpSnapshot{
			Class: name,
			Count: count,
			Total: time.Duration(c.totalNs.Load()),
			Avg:   time.Duration(avg),
			Min:   time.Duration(minNs),
			Max:   time.Duration(c.maxNs.Load()),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out
}

// Uptime returns the elapsed time since creation or the last reset.
func (m *Metrics) Uptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// Reset clears all classes.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes = make(map[string]*opClass)
	m.startTime = time.Now()
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer creates a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the elapsed time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// ElapsedMs returns the elapsed time in milliseconds.
func (t *Timer) ElapsedMs() float64 {
	return float64(t.Elapsed().Nanoseconds()) / 1e6
}

// Stop returns the elapsed time and resets the timer.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	t.start = time.Now()
	return elapsed
}
