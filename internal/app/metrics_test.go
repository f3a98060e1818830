package app

import (
	"sync"
	"testing"
	"time"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}

	snapshot := m.Snapshot()
	if len(snapshot) != 0 {
		t.Errorf("expected empty snapshot, got %d classes", len(snapshot))
	}
}

func TestMetrics_Record(t *testing.T) {
	m := NewMetrics()

	m.Record("insert", 10*time.Millisecond)
	m.Record("insert", 20*time.Millisecond)
	m.Record("insert", 5*time.Millisecond)

	snapshot := m.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 class, got %d", len(snapshot))
	}

	op := snapshot[0]
	if op.Class != "insert" {
		t.Errorf("expected class 'insert', got '%s'", op.Class)
	}
	if op.Count != 3 {
		t.Errorf("expected 3 samples, got %d", op.Count)
	}
	if op.Total != 35*time.Millisecond {
		t.Errorf("expected total 35ms, got %v", op.Total)
	}
	if op.Min != 5*time.Millisecond {
		t.Errorf("expected min 5ms, got %v", op.Min)
	}
	if op.Max != 20*time.Millisecond {
		t.Errorf("expected max 20ms, got %v", op.Max)
	}

	expectedAvg := 35 * time.Millisecond / 3
	if op.Avg != expectedAvg {
		t.Errorf("expected avg %v, got %v", expectedAvg, op.Avg)
	}
}

func TestMetrics_Record_MultipleClasses(t *testing.T) {
	m := NewMetrics()

	m.Record("undo", 1*time.Millisecond)
	m.Record("insert", 2*time.Millisecond)
	m.Record("find", 3*time.Millisecond)

	snapshot := m.Snapshot()
	if len(snapshot) != 3 {
		t.Fatalf("expected 3 classes, got %d", len(snapshot))
	}

	// Snapshot is sorted by class name.
	expected := []string{"find", "insert", "undo"}
	for i, name := range expected {
		if snapshot[i].Class != name {
			t.Errorf("snapshot[%d].Class = '%s', expected '%s'", i, snapshot[i].Class, name)
		}
	}
}

func TestMetrics_Record_EmptyClassMin(t *testing.T) {
	m := NewMetrics()

	// A class created but never sampled should report zero, not the
	// sentinel min.
	m.Record("once", 0)

	snapshot := m.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 class, got %d", len(snapshot))
	}
	if snapshot[0].Min != 0 {
		t.Errorf("expected min 0, got %v", snapshot[0].Min)
	}
}

func TestMetrics_Time(t *testing.T) {
	m := NewMetrics()

	m.Time("sleep", func() {
		time.Sleep(10 * time.Millisecond)
	})

	snapshot := m.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 class, got %d", len(snapshot))
	}
	if snapshot[0].Count != 1 {
		t.Errorf("expected 1 sample, got %d", snapshot[0].Count)
	}
	if snapshot[0].Total < 10*time.Millisecond {
		t.Errorf("expected total >= 10ms, got %v", snapshot[0].Total)
	}
}

func TestMetrics_Uptime(t *testing.T) {
	m := NewMetrics()

	time.Sleep(10 * time.Millisecond)

	if m.Uptime() < 10*time.Millisecond {
		t.Errorf("expected uptime >= 10ms, got %v", m.Uptime())
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()

	m.Record("insert", 10*time.Millisecond)
	m.Record("undo", 1*time.Millisecond)

	m.Reset()

	snapshot := m.Snapshot()
	if len(snapshot) != 0 {
		t.Errorf("expected empty snapshot after reset, got %d classes", len(snapshot))
	}
}

func TestMetrics_ConcurrentRecord(t *testing.T) {
	m := NewMetrics()

	const goroutines = 8
	const samples = 100

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < samples; i++ {
				m.Record("insert", time.Millisecond)
				m.Record("find", 2*time.Millisecond)
			}
		}()
	}
	wg.Wait()

	snapshot := m.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(snapshot))
	}
	for _, op := range snapshot {
		if op.Count != goroutines*samples {
			t.Errorf("class '%s': expected %d samples, got %d", op.Class, goroutines*samples, op.Count)
		}
	}
}

func TestTimer(t *testing.T) {
	timer := StartTimer()
	if timer == nil {
		t.Fatal("StartTimer() returned nil")
	}

	time.Sleep(10 * time.Millisecond)

	elapsed := timer.Elapsed()
	if elapsed < 10*time.Millisecond {
		t.Errorf("Elapsed() = %v, expected >= 10ms", elapsed)
	}
}

func TestTimer_ElapsedMs(t *testing.T) {
	timer := StartTimer()

	time.Sleep(10 * time.Millisecond)

	ms := timer.ElapsedMs()
	if ms < 10.0 {
		t.Errorf("ElapsedMs() = %f, expected >= 10.0", ms)
	}
}

func TestTimer_Stop(t *testing.T) {
	timer := StartTimer()

	time.Sleep(10 * time.Millisecond)

	elapsed := timer.Stop()
	if elapsed < 10*time.Millisecond {
		t.Errorf("Stop() returned %v, expected >= 10ms", elapsed)
	}

	// After stop, timer should be reset
	time.Sleep(5 * time.Millisecond)
	elapsed2 := timer.Elapsed()
	if elapsed2 > 10*time.Millisecond {
		t.Errorf("expected timer to be reset after Stop(), got %v", elapsed2)
	}
}

func BenchmarkMetrics_Record(b *testing.B) {
	m := NewMetrics()
	duration := 16 * time.Millisecond

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Record("insert", duration)
	}
}

func BenchmarkMetrics_Snapshot(b *testing.B) {
	m := NewMetrics()
	// Pre-populate with some data
	for i := 0; i < 1000; i++ {
		m.Record("insert", 16*time.Millisecond)
		m.Record("find", 1*time.Millisecond)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Snapshot()
	}
}
