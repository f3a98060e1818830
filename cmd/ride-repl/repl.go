package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/app"
	"github.com/LeLe-Italian-Developer/RIDE-Revolutionary-IDE-sub000/internal/engine"
)

// repl reads commands line by line and executes them against the engine.
type repl struct {
	eng *engine.Engine
	log *app.Logger
	out io.Writer
}

// loop runs until quit, EOF, or a read error. Command failures are
// logged and the loop continues.
func (r *repl) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	fmt.Fprint(r.out, "ride> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			err := r.execute(line)
			if errors.Is(err, app.ErrQuit) {
				return err
			}
			if err != nil {
				r.log.Error("%v", err)
			}
		}
		fmt.Fprint(r.out, "ride> ")
	}

	return scanner.Err()
}

func (r *repl) execute(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "show":
		fmt.Fprintln(r.out, r.eng.Text())
	case "line":
		err = r.cmdLine(args)
	case "lines":
		fmt.Fprintln(r.out, r.eng.LineCount())
	case "len":
		fmt.Fprintln(r.out, r.eng.Len())
	case "version":
		fmt.Fprintln(r.out, r.eng.Version())
	case "insert":
		err = r.cmdInsert(args)
	case "delete":
		err = r.cmdDelete(args)
	case "replace":
		err = r.cmdReplace(args)
	case "undo":
		if v, ok := r.eng.Undo(); ok {
			fmt.Fprintf(r.out, "version %d\n", v)
		} else {
			fmt.Fprintln(r.out, "nothing to undo")
		}
	case "redo":
		if v, ok := r.eng.Redo(); ok {
			fmt.Fprintf(r.out, "version %d\n", v)
		} else {
			fmt.Fprintln(r.out, "nothing to redo")
		}
	case "find":
		err = r.cmdFind(args)
	case "findnext":
		err = r.cmdFindNext(args)
	case "decor-add":
		err = r.cmdDecorAdd(args)
	case "decor-del":
		err = r.cmdDecorDel(args)
	case "decors":
		r.cmdDecors()
	case "fold":
		err = r.cmdFold(args)
	case "unfold":
		err = r.cmdUnfold(args)
	case "unfold-all":
		r.eng.UnfoldAll()
	case "viewport":
		err = r.cmdViewport(args)
	case "vlines":
		err = r.cmdViewLines()
	case "eol":
		fmt.Fprintln(r.out, r.eng.EOL())
	case "set-eol":
		err = r.cmdSetEOL(args)
	case "stats":
		r.cmdStats()
	case "help":
		r.cmdHelp()
	case "quit", "exit":
		return app.ErrQuit
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}

	if err != nil {
		return app.NewOperationError(cmd, "", err)
	}
	return nil
}

func (r *repl) cmdLine(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: line N")
	}
	n, err := parseUint32(args[0])
	if err != nil {
		return err
	}
	content, err := r.eng.LineContent(n)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, content)
	return nil
}

func (r *repl) cmdInsert(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: insert LINE COL TEXT")
	}
	p, err := parsePosition(args[0], args[1])
	if err != nil {
		return err
	}
	v, err := r.eng.Insert(p, unescape(strings.Join(args[2:], " ")))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "version %d\n", v)
	return nil
}

func (r *repl) cmdDelete(args []string) error {
	if len(args) != 4 {
		return fmt.Errorf("usage: delete SL SC EL EC")
	}
	rng, err := parseRange(args)
	if err != nil {
		return err
	}
	v, err := r.eng.Delete(rng)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "version %d\n", v)
	return nil
}

func (r *repl) cmdReplace(args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: replace SL SC EL EC TEXT")
	}
	rng, err := parseRange(args[:4])
	if err != nil {
		return err
	}
	v, err := r.eng.Replace(rng, unescape(strings.Join(args[4:], " ")))
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "version %d\n", v)
	return nil
}

func (r *repl) cmdFind(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: find PATTERN [regex]")
	}
	isRegex := len(args) > 1 && args[1] == "regex"
	matches, err := r.eng.FindMatches(args[0], isRegex, true)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintln(r.out, formatRange(m))
	}
	fmt.Fprintf(r.out, "%d matches\n", len(matches))
	return nil
}

func (r *repl) cmdFindNext(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: findnext LINE COL PATTERN [regex]")
	}
	p, err := parsePosition(args[0], args[1])
	if err != nil {
		return err
	}
	isRegex := len(args) > 3 && args[3] == "regex"
	m, found, err := r.eng.FindNextMatch(args[2], p, isRegex, true)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintln(r.out, "no match")
		return nil
	}
	fmt.Fprintln(r.out, formatRange(m))
	return nil
}

func (r *repl) cmdDecorAdd(args []string) error {
	if len(args) < 5 {
		return fmt.Errorf("usage: decor-add ID SL SC EL EC [grows|fixed] [class]")
	}
	rng, err := parseRange(args[1:5])
	if err != nil {
		return err
	}

	dec := engine.Decoration{Range: rng, Stickiness: engine.StickinessGrows}
	if args[0] != "-" {
		dec.ID = args[0] // "-" asks the engine to generate one
	}
	if len(args) > 5 {
		switch args[5] {
		case "grows":
		case "fixed":
			dec.Stickiness = engine.StickinessFixed
		default:
			return fmt.Errorf("stickiness must be grows or fixed, got %q", args[5])
		}
	}
	if len(args) > 6 {
		dec.Class = args[6]
	}

	for _, id := range r.eng.DeltaDecorations(nil, []engine.Decoration{dec}) {
		fmt.Fprintln(r.out, id)
	}
	return nil
}

func (r *repl) cmdDecorDel(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: decor-del ID")
	}
	r.eng.DeltaDecorations([]string{args[0]}, nil)
	return nil
}

func (r *repl) cmdDecors() {
	decs := r.eng.Decorations()
	for _, d := range decs {
		fmt.Fprintf(r.out, "%s %s %s", d.ID, formatRange(d.Range), d.Stickiness)
		if d.Class != "" {
			fmt.Fprintf(r.out, " %s", d.Class)
		}
		fmt.Fprintln(r.out)
	}
	fmt.Fprintf(r.out, "%d decorations\n", len(decs))
}

func (r *repl) cmdFold(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: fold START END")
	}
	start, err := parseUint32(args[0])
	if err != nil {
		return err
	}
	end, err := parseUint32(args[1])
	if err != nil {
		return err
	}
	if !r.eng.FoldRange(start, end) {
		return fmt.Errorf("fold [%d,%d] rejected: invalid range, duplicate, or partial overlap", start, end)
	}
	fmt.Fprintf(r.out, "%d view lines\n", r.eng.ViewLineCount())
	return nil
}

func (r *repl) cmdUnfold(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: unfold START END")
	}
	start, err := parseUint32(args[0])
	if err != nil {
		return err
	}
	end, err := parseUint32(args[1])
	if err != nil {
		return err
	}
	if !r.eng.UnfoldRange(start, end) {
		return fmt.Errorf("no fold [%d,%d]", start, end)
	}
	fmt.Fprintf(r.out, "%d view lines\n", r.eng.ViewLineCount())
	return nil
}

func (r *repl) cmdViewport(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: viewport TOP HEIGHT")
	}
	top, err := parseUint32(args[0])
	if err != nil {
		return err
	}
	height, err := parseUint32(args[1])
	if err != nil {
		return err
	}
	r.eng.SetViewport(top, height)
	top, height = r.eng.Viewport()
	fmt.Fprintf(r.out, "viewport top %d height %d\n", top, height)
	return nil
}

func (r *repl) cmdViewLines() error {
	infos, err := r.eng.LinesInViewport()
	if err != nil {
		return err
	}
	for _, info := range infos {
		var marks []string
		if info.IsFolded {
			marks = append(marks, "fold")
		}
		if info.IsWrapped {
			marks = append(marks, "wrap")
		}
		if info.IsDirty {
			marks = append(marks, "dirty")
		}
		fmt.Fprintf(r.out, "view %4d model %4d %-15s %s\n",
			info.ViewLine, info.ModelLine, strings.Join(marks, ","), info.Preview)
	}
	return nil
}

func (r *repl) cmdSetEOL(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: set-eol lf|crlf|cr")
	}
	le, ok := parseEOL(args[0])
	if !ok {
		return fmt.Errorf("eol must be lf, crlf, or cr; got %q", args[0])
	}
	v, err := r.eng.SetEOL(le)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "version %d\n", v)
	return nil
}

func (r *repl) cmdStats() {
	st := r.eng.Stats()
	fmt.Fprintf(r.out, "version      %d\n", st.Version)
	fmt.Fprintf(r.out, "bytes        %d\n", st.Tree.Bytes)
	fmt.Fprintf(r.out, "lines        %d\n", st.Tree.Lines)
	fmt.Fprintf(r.out, "pieces       %d\n", st.Tree.Pieces)
	fmt.Fprintf(r.out, "buffers      %d\n", st.Tree.Buffers)
	fmt.Fprintf(r.out, "tree height  %d\n", st.Tree.Height)
	fmt.Fprintf(r.out, "undo depth   %d\n", st.UndoDepth)
	fmt.Fprintf(r.out, "redo depth   %d\n", st.RedoDepth)
	fmt.Fprintf(r.out, "decorations  %d\n", st.Decorations)
	fmt.Fprintf(r.out, "log events   %d\n", st.LogEvents)
}

func (r *repl) cmdHelp() {
	fmt.Fprint(r.out, `Document
  show                               print the full text
  line N                             print line N
  lines                              print the line count
  len                                print the byte length
  version                            print the document version
  eol                                print the line-ending mode
Editing
  insert LINE COL TEXT               insert text at a position
  delete SL SC EL EC                 delete a range
  replace SL SC EL EC TEXT           replace a range
  set-eol lf|crlf|cr                 convert every line ending
  undo                               undo the last entry
  redo                               reapply the last undone entry
Search
  find PATTERN [regex]               list all matches
  findnext LINE COL PATTERN [regex]  first match after a position
Decorations
  decor-add ID SL SC EL EC [grows|fixed] [class]
                                     add a decoration ('-' generates an id)
  decor-del ID                       remove a decoration
  decors                             list decorations
View
  fold START END                     collapse lines START+1..END
  unfold START END                   remove a fold
  unfold-all                         remove every fold
  viewport TOP HEIGHT                position the viewport (view lines)
  vlines                             print viewport lines with previews
Other
  stats                              print storage statistics
  help                               this text
  quit                               exit
Text arguments join remaining words with spaces; \n, \t, \r, \\ unescape.
`)
}

func parseUint32(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a line/column number", s)
	}
	return uint32(n), nil
}

func parsePosition(line, col string) (engine.Position, error) {
	l, err := parseUint32(line)
	if err != nil {
		return engine.Position{}, err
	}
	c, err := parseUint32(col)
	if err != nil {
		return engine.Position{}, err
	}
	return engine.Position{Line: l, Column: c}, nil
}

func parseRange(args []string) (engine.Range, error) {
	start, err := parsePosition(args[0], args[1])
	if err != nil {
		return engine.Range{}, err
	}
	end, err := parsePosition(args[2], args[3])
	if err != nil {
		return engine.Range{}, err
	}
	return engine.Range{Start: start, End: end}, nil
}

func formatRange(r engine.Range) string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Start.Line, r.Start.Column, r.End.Line, r.End.Column)
}

// unescape expands the escapes the prompt can't type literally.
func unescape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
