// Package main is the entry point for ride-bench, a synthetic workload
// driver that measures the RIDE text storage engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/app"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/config"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		lines       = flag.Int("lines", 10000, "Lines in the synthetic document")
		edits       = flag.Int("edits", 5000, "Edit operations to apply")
		seed        = flag.Int64("seed", 1, "Seed for the edit mix")
		configPath  = flag.String("config", "", "Path to configuration file (.toml, .yaml)")
		showVersion = flag.Bool("version", false, "Show version information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ride-bench - synthetic workload driver for the RIDE text engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ride-bench [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ride-bench                        Default 10k lines, 5k edits\n")
		fmt.Fprintf(os.Stderr, "  ride-bench -lines 100000 -seed 7  Bigger document, fixed mix\n")
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("ride-bench %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return 0
	}

	if *lines <= 0 {
		fmt.Fprintf(os.Stderr, "Error: -lines must be positive, got %d\n", *lines)
		return 1
	}
	if *edits < 0 {
		fmt.Fprintf(os.Stderr, "Error: -edits must not be negative, got %d\n", *edits)
		return 1
	}

	opts := config.DefaultOptions()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		if loaded != nil {
			opts = loaded
		}
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(opts.LogLevel),
		Output: os.Stderr,
		Prefix: "ride-bench",
	})
	app.SetLogger(logger)

	logger.Info("workload: %d lines, %d edits, seed %d", *lines, *edits, *seed)

	res, err := runWorkload(workload{
		lines: *lines,
		edits: *edits,
		seed:  *seed,
		opts:  opts,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	report(os.Stdout, res)
	return 0
}

// workload describes one bench run.
type workload struct {
	lines int
	edits int
	seed  int64
	opts  *config.Options
}

// result carries everything the report prints.
type result struct {
	lines     int
	edits     int
	buildTime time.Duration
	ops       []app.OpSnapshot
	stats     engine.Stats
	version   uint64
	undoCount int
	undoTime  time.Duration
}

var words = []string{
	"func", "return", "storage", "balance", "piece", "table", "buffer",
	"line", "column", "offset", "version", "engine", "insert", "delete",
	"replace", "window",
}

// runWorkload builds the document, applies the seeded edit mix while
// timing each op class, then replays the full undo stack.
func runWorkload(w workload) (result, error) {
	rng := rand.New(rand.NewSource(w.seed))

	timer := app.StartTimer()
	content := syntheticContent(w.lines, rng)
	eng := engine.New("bench://doc", content, engineOptions(w.opts)...)
	defer eng.Close()

	res := result{
		lines:     w.lines,
		edits:     w.edits,
		buildTime: timer.Stop(),
	}

	metrics := app.NewMetrics()
	for i := 0; i < w.edits; i++ {
		if err := step(eng, metrics, rng); err != nil {
			return result{}, fmt.Errorf("edit %d: %w", i, err)
		}
	}

	res.ops = metrics.Snapshot()
	res.stats = eng.Stats()
	res.version = eng.Version()

	undoTimer := app.StartTimer()
	for {
		if _, ok := eng.Undo(); !ok {
			break
		}
		res.undoCount++
	}
	res.undoTime = undoTimer.Stop()

	if err := eng.CheckInvariants(); err != nil {
		return result{}, err
	}

	return res, nil
}

// step applies one random edit. Inserts dominate the mix the way typing
// dominates editing; deletes and replaces stay within a single line so
// every generated range is valid.
func step(eng *engine.Engine, metrics *app.Metrics, rng *rand.Rand) error {
	line := uint32(rng.Intn(int(eng.LineCount())))
	length, err := eng.LineLength(line)
	if err != nil {
		return err
	}

	op := rng.Intn(10)
	if length == 0 {
		op = 0
	}

	switch {
	case op < 6: // typing insert
		col := uint32(rng.Intn(int(length) + 1))
		text := words[rng.Intn(len(words))]
		if rng.Intn(8) == 0 {
			text += "\n"
		}
		timer := app.StartTimer()
		_, err = eng.Insert(engine.Position{Line: line, Column: col}, text)
		metrics.Record("insert", timer.Elapsed())

	case op < 8: // delete within the line
		start := uint32(rng.Intn(int(length)))
		span := 1 + uint32(rng.Intn(min(20, int(length-start))))
		timer := app.StartTimer()
		_, err = eng.Delete(engine.Range{
			Start: engine.Position{Line: line, Column: start},
			End:   engine.Position{Line: line, Column: start + span},
		})
		metrics.Record("delete", timer.Elapsed())

	default: // replace within the line
		start := uint32(rng.Intn(int(length)))
		span := 1 + uint32(rng.Intn(min(20, int(length-start))))
		timer := app.StartTimer()
		_, err = eng.Replace(engine.Range{
			Start: engine.Position{Line: line, Column: start},
			End:   engine.Position{Line: line, Column: start + span},
		}, words[rng.Intn(len(words))])
		metrics.Record("replace", timer.Elapsed())
	}

	return err
}

// syntheticContent builds w.lines lines of word soup, deterministic for
// a given rng state.
func syntheticContent(lines int, rng *rand.Rand) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		n := 3 + rng.Intn(10)
		for j := 0; j < n; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(words[rng.Intn(len(words))])
		}
	}
	return b.String()
}

func engineOptions(opts *config.Options) []engine.Option {
	eopts := []engine.Option{
		engine.WithUndoLimit(opts.UndoLimit),
		engine.WithCoalesceWindow(time.Duration(opts.CoalesceWindowMS) * time.Millisecond),
		engine.WithChangeLogCapacity(opts.ChangeLogCapacity),
	}
	if opts.DebugChecks {
		eopts = append(eopts, engine.WithDebugChecks())
	}
	return eopts
}

func report(w io.Writer, res result) {
	fmt.Fprintf(w, "seeded       %d lines (built in %s)\n", res.lines, res.buildTime)
	fmt.Fprintf(w, "edits        %d applied, final version %d\n\n", res.edits, res.version)

	fmt.Fprintf(w, "%-10s %8s %12s %12s %12s %12s\n", "op class", "count", "total", "avg", "min", "max")
	for _, op := range res.ops {
		fmt.Fprintf(w, "%-10s %8d %12s %12s %12s %12s\n",
			op.Class, op.Count, op.Total, op.Avg, op.Min, op.Max)
	}

	fmt.Fprintf(w, "\nundo replay  %d entries in %s\n", res.undoCount, res.undoTime)
	fmt.Fprintf(w, "tree         bytes %d, lines %d, pieces %d, buffers %d, height %d\n",
		res.stats.Tree.Bytes, res.stats.Tree.Lines, res.stats.Tree.Pieces,
		res.stats.Tree.Buffers, res.stats.Tree.Height)
	fmt.Fprintf(w, "bookkeeping  undo depth %d, redo depth %d, log events %d\n",
		res.stats.UndoDepth, res.stats.RedoDepth, res.stats.LogEvents)
	fmt.Fprintln(w, "invariants   ok")
}
