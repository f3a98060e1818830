package engine

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine/document"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeEngine(b *testing.B, lines int, opts ...Option) *Engine {
	b.Helper()
	var sb strings.Builder
	line := strings.Repeat("x", 80) + "\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	return New("mem://bench", sb.String(), opts...)
}

// ============================================================================
// Read Operation Benchmarks
// ============================================================================

func BenchmarkEngineText(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Text()
	}
}

func BenchmarkEngineLineContent(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.LineContent(5000)
	}
}

func BenchmarkEngineOffsetAt(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	p := pos(5000, 40)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.OffsetAt(p)
	}
}

func BenchmarkEnginePositionAt(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	mid := e.Len() / 2
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = e.PositionAt(mid)
	}
}

// ============================================================================
// Write Operation Benchmarks
// ============================================================================

func BenchmarkEngineTypingInsert(b *testing.B) {
	e := New("mem://bench", "")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.Insert(pos(0, uint32(i)), "x"); err != nil {
			b.Fatalf("Insert: %v", err)
		}
	}
}

func BenchmarkEngineInsertMiddle(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.Insert(pos(5000, 0), "x"); err != nil {
			b.Fatalf("Insert: %v", err)
		}
	}
}

func BenchmarkEngineApplyEditsBatch(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	ops := make([]EditOperation, 10)
	for j := range ops {
		ops[j] = document.InsertAt(pos(uint32(j*1000), 0), "y")
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.ApplyEdits(ops); err != nil {
			b.Fatalf("ApplyEdits: %v", err)
		}
	}
}

func BenchmarkEngineRandomReplace(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	rng := rand.New(rand.NewSource(5))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		line := uint32(rng.Intn(10000))
		if _, err := e.Replace(span(line, 10, line, 20), "replacement"); err != nil {
			b.Fatalf("Replace: %v", err)
		}
	}
}

func BenchmarkEngineUndoRedo(b *testing.B) {
	e := New("mem://bench", "", WithCoalesceWindow(0), WithUndoLimit(1100))
	for i := 0; i < 1000; i++ {
		if _, err := e.Insert(pos(0, uint32(i)), "x"); err != nil {
			b.Fatalf("Insert: %v", err)
		}
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Undo()
		e.Redo()
	}
}

// ============================================================================
// Search Benchmarks
// ============================================================================

func BenchmarkEngineFindMatchesLiteral(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	e.Replace(span(500, 0, 500, 6), "needle")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.FindMatches("needle", false, true); err != nil {
			b.Fatalf("FindMatches: %v", err)
		}
	}
}

func BenchmarkEngineFindMatchesRegex(b *testing.B) {
	e := setupLargeEngine(b, 1000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.FindMatches(`x{20}`, true, true); err != nil {
			b.Fatalf("FindMatches: %v", err)
		}
	}
}

// ============================================================================
// View Benchmarks
// ============================================================================

func BenchmarkEngineModelToViewFolded(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	for i := 0; i < 100; i++ {
		start := uint32(i * 50)
		if !e.FoldRange(start, start+10) {
			b.Fatalf("FoldRange(%d, %d) rejected", start, start+10)
		}
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.ModelToView(9000); err != nil {
			b.Fatalf("ModelToView: %v", err)
		}
	}
}

func BenchmarkEngineLinesInViewport(b *testing.B) {
	e := setupLargeEngine(b, 10000, WithViewportHeight(50))
	e.FoldRange(4000, 4500)
	e.SetViewport(3980, 50)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.LinesInViewport(); err != nil {
			b.Fatalf("LinesInViewport: %v", err)
		}
	}
}

// ============================================================================
// Decoration Benchmarks
// ============================================================================

func BenchmarkEngineDecoratedInsert(b *testing.B) {
	e := setupLargeEngine(b, 10000)
	decorations := make([]Decoration, 100)
	for i := range decorations {
		line := uint32(i * 100)
		decorations[i] = Decoration{
			Range:      span(line, 5, line, 25),
			Stickiness: StickinessGrows,
			Class:      "mark",
		}
	}
	e.DeltaDecorations(nil, decorations)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := e.Insert(pos(5000, 40), "x"); err != nil {
			b.Fatalf("Insert: %v", err)
		}
	}
}
