// Package engine provides the text storage engine for RIDE.
//
// The engine package is the main facade, combining versioned document
// editing, undo/redo, decorations, search, and a foldable view into a
// unified, thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - piecetable: balanced piece tree for text storage (O(log p) edits)
//   - buffer: byte/line buffer with position conversion and edit batches
//   - history: exact-inverse undo/redo with typing coalescing
//   - tracking: ring buffer of versioned change events
//   - document: versioned document model tying the above together
//   - view: fold and viewport translation over a document
//
// # Thread Safety
//
// All Engine operations are safe for concurrent use. The document
// serializes mutations behind a mutex while reads run against
// structural-sharing snapshots, so a long Text() or FindMatches() call
// never blocks or observes a concurrent edit.
//
// # Basic Usage
//
// Create an engine and perform edits through positions:
//
//	e := engine.New("mem://scratch", "Hello, World!")
//
//	// Replace "World" with "Go"
//	e.Replace(engine.Range{
//	    Start: engine.Position{Line: 0, Column: 7},
//	    End:   engine.Position{Line: 0, Column: 12},
//	}, "Go")
//
//	text := e.Text() // "Hello, Go!"
//
//	e.Undo() // "Hello, World!"
//
// Batches apply atomically against the pre-edit document, bump the
// version once, and undo as one unit:
//
//	e.ApplyEdits([]engine.EditOperation{
//	    document.InsertAt(document.NewPosition(0, 0), "// "),
//	    document.DeleteRange(document.NewRange(a, b)),
//	})
//
// # Folding
//
// The engine's view collapses line ranges and translates between model
// and view coordinates:
//
//	e.FoldRange(2, 5)               // hide lines 3..5 behind line 2
//	n := e.ViewLineCount()          // model line count minus 3
//	v, _ := e.ModelToView(7)        // folds above shift the mapping
//
// # Change Events
//
// Every mutation is recorded and broadcast:
//
//	e.SetChangeListener(func(ev engine.Event) {
//	    // ev.Changes carry exact old/new text and line spans
//	})
//	events := e.ChangesSince(version)
//
// # Configuration
//
// Configure the engine at creation time:
//
//	e := engine.New("file:///tmp/notes.txt", content,
//	    engine.WithUndoLimit(500),
//	    engine.WithCoalesceWindow(750*time.Millisecond),
//	    engine.WithEOL(engine.EndOfLineLF),
//	    engine.WithWrapColumn(100),
//	)
//
// # Error Handling
//
// Sentinels are shared with the component packages, so errors.Is works
// on either surface:
//
//   - ErrOutOfRange: position, offset, or line outside the document
//   - ErrOverlappingEdits: batch operations overlap
//   - ErrInvalidPattern: unparseable search pattern
//   - ErrReadOnly: mutation on a read-only engine
//   - ErrClosed: mutation on a closed engine
//   - ErrLineOutOfRange: model or view line beyond the respective extent
package engine
