// Package main is the entry point for ride-repl, a line-oriented shell
// over the RIDE text storage engine.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
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

type cliFlags struct {
	configPath string
	logLevel   string
	eol        string
	debug      bool
}

func run() int {
	flags, files := parseFlags()

	opts, err := loadOptions(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(opts.LogLevel),
		Output: os.Stderr,
		Prefix: "ride-repl",
	})
	app.SetLogger(logger)

	uri, content, err := initialContent(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	eng := engine.New(uri, content, engineOptions(opts, logger)...)
	defer eng.Close()

	logger.Info("opened %s: %d bytes, %d lines", uri, eng.Len(), eng.LineCount())

	r := &repl{eng: eng, log: logger, out: os.Stdout}
	if err := r.loop(os.Stdin); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() (cliFlags, []string) {
	var flags cliFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&flags.configPath, "config", "", "Path to configuration file (.toml, .yaml)")
	flag.StringVar(&flags.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&flags.eol, "eol", "", "End-of-line mode for the document (auto, lf, crlf, cr)")
	flag.BoolVar(&flags.debug, "debug", false, "Verify tree invariants after every edit")
	flag.BoolVar(&flags.debug, "d", false, "Verify tree invariants after every edit (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ride-repl - interactive shell over the RIDE text engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ride-repl [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  ride-repl                   Start with an empty document\n")
		fmt.Fprintf(os.Stderr, "  ride-repl file.go           Load a file's content\n")
		fmt.Fprintf(os.Stderr, "  ride-repl -eol crlf file.go Force CRLF line endings\n")
		fmt.Fprintf(os.Stderr, "  ride-repl -d                Run with invariant checks\n")
		fmt.Fprintf(os.Stderr, "\nType 'help' at the prompt for the command list.\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("ride-repl %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return flags, flag.Args()
}

// loadOptions merges the config file (if any) with flag overrides.
// Flags win over the file; the file wins over defaults.
func loadOptions(flags cliFlags) (*config.Options, error) {
	opts := config.DefaultOptions()

	if flags.configPath != "" {
		loaded, err := config.LoadFile(flags.configPath)
		if err != nil {
			return nil, err
		}
		if loaded != nil {
			opts = loaded
		}
	}

	if flags.logLevel != "" {
		opts.LogLevel = flags.logLevel
	}
	if flags.eol != "" {
		opts.EOL = flags.eol
	}
	if flags.debug {
		opts.DebugChecks = true
	}

	if err := opts.Validate(); err != nil {
		return nil, app.NewComponentError("config", "validate", err)
	}

	return opts, nil
}

// initialContent reads the optional file argument. The engine itself
// never touches the file system; content arrives as a string.
func initialContent(files []string) (uri, content string, err error) {
	switch len(files) {
	case 0:
		return "mem://scratch", "", nil
	case 1:
		data, err := os.ReadFile(files[0])
		if err != nil {
			return "", "", app.NewOperationError("open", files[0], err)
		}
		return files[0], string(data), nil
	default:
		return "", "", fmt.Errorf("at most one file argument, got %d", len(files))
	}
}

func engineOptions(opts *config.Options, logger *app.Logger) []engine.Option {
	eopts := []engine.Option{
		engine.WithUndoLimit(opts.UndoLimit),
		engine.WithCoalesceWindow(time.Duration(opts.CoalesceWindowMS) * time.Millisecond),
		engine.WithChangeLogCapacity(opts.ChangeLogCapacity),
		engine.WithPreviewGraphemes(opts.PreviewGraphemes),
		engine.WithWrapColumn(opts.WrapColumn),
		engine.WithTabWidth(opts.TabWidth),
		engine.WithLogger(logger.WithComponent("engine")),
	}

	if opts.DebugChecks {
		eopts = append(eopts, engine.WithDebugChecks())
	}

	// "auto" leaves detection to the document at open.
	if le, ok := parseEOL(opts.EOL); ok {
		eopts = append(eopts, engine.WithEOL(le))
	}

	return eopts
}

func parseEOL(s string) (engine.EndOfLine, bool) {
	switch s {
	case "lf":
		return engine.EndOfLineLF, true
	case "crlf":
		return engine.EndOfLineCRLF, true
	case "cr":
		return engine.EndOfLineCR, true
	default:
		return engine.EndOfLineLF, false
	}
}
