package tracking

import (
	"sync"
	"time"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/buffer"
)

// DefaultCapacity is the default number of events the log retains.
const DefaultCapacity = 1000

// Change is one applied replacement together with the line span its
// new text occupies, so consumers can invalidate by line without
// re-deriving coordinates.
type Change struct {
	buffer.Change

	StartLine uint32 // first line touched by the new text
	EndLine   uint32 // last line touched by the new text
}

// Event describes one document mutation: the changes of a single edit
// batch, undo, redo, or flush, keyed by the version it produced.
type Event struct {
	Version uint64   // document version after the mutation
	Changes []Change // batch changes, ascending by offset
	IsUndo  bool
	IsRedo  bool
	IsFlush bool // whole-content reset, e.g. a line-ending conversion
	At      time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithCapacity sets how many events the log retains. It must only be
// used at construction; applying it later discards recorded events.
func WithCapacity(n int) Option {
	return func(l *Log) {
		if n > 0 {
			l.capacity = n
			l.events = make([]Event, n)
			l.head = 0
			l.count = 0
		}
	}
}

// Log is a bounded, in-order record of document mutations. Collaborators
// that poll (syntax highlighters, language servers, remote replicas)
// catch up by asking for everything after the version they last saw.
// Oldest events fall off when the ring is full. All operations are
// thread-safe.
type Log struct {
	mu sync.RWMutex

	// Events in a ring buffer.
	events   []Event
	head     int // index of the oldest entry
	count    int // number of entries
	capacity int
}

// NewLog creates a change log with default settings.
func NewLog(opts ...Option) *Log {
	l := &Log{
		capacity: DefaultCapacity,
		events:   make([]Event, DefaultCapacity),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Record appends an event. Events must arrive in version order; the
// document's write path guarantees that.
func (l *Log) Record(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := (l.head + l.count) % l.capacity
	if l.count < l.capacity {
		l.count++
	} else {
		// Ring is full, drop the oldest event.
		l.head = (l.head + 1) % l.capacity
	}

	l.events[idx] = ev
}

// EventsSince returns all events with a version greater than version,
// in chronological order. Events older than the ring retains are gone;
// a caller that gets fewer events than expected should resynchronize
// from the full document.
func (l *Log) EventsSince(version uint64) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Event
	for i := 0; i < l.count; i++ {
		ev := l.events[(l.head+i)%l.capacity]
		if ev.Version > version {
			result = append(result, ev)
		}
	}

	return result
}

// EventsBetween returns events with from < version <= to.
func (l *Log) EventsBetween(from, to uint64) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []Event
	for i := 0; i < l.count; i++ {
		ev := l.events[(l.head+i)%l.capacity]
		if ev.Version > from && ev.Version <= to {
			result = append(result, ev)
		}
	}

	return result
}

// Latest returns the most recent n events in chronological order.
func (l *Log) Latest(n int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n > l.count {
		n = l.count
	}

	result := make([]Event, n)
	for i := 0; i < n; i++ {
		idx := (l.head + l.count - n + i) % l.capacity
		result[i] = l.events[idx]
	}

	return result
}

// OldestVersion returns the version of the oldest retained event.
func (l *Log) OldestVersion() (uint64, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.count == 0 {
		return 0, false
	}
	return l.events[l.head].Version, true
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

// Capacity returns the maximum number of retained events.
func (l *Log) Capacity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.capacity
}

// Clear removes all events.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.head = 0
	l.count = 0
}

// Summary aggregates retained events for quick inspection.
type Summary struct {
	Events       int
	Inserts      int
	Deletes      int
	Replaces     int
	Undos        int
	Redos        int
	BytesAdded   int64
	BytesRemoved int64
	FirstVersion uint64
	LastVersion  uint64
}

// SummarizeSince aggregates all events after the given version.
func (l *Log) SummarizeSince(version uint64) Summary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var s Summary
	for i := 0; i < l.count; i++ {
		ev := l.events[(l.head+i)%l.capacity]
		if ev.Version <= version {
			continue
		}

		if s.Events == 0 {
			s.FirstVersion = ev.Version
		}
		s.Events++
		s.LastVersion = ev.Version

		if ev.IsUndo {
			s.Undos++
		}
		if ev.IsRedo {
			s.Redos++
		}

		for _, c := range ev.Changes {
			switch {
			case c.IsInsert():
				s.Inserts++
			case c.IsDelete():
				s.Deletes++
			default:
				s.Replaces++
			}
			s.BytesAdded += int64(len(c.NewText))
			s.BytesRemoved += int64(len(c.OldText))
		}
	}

	return s
}
