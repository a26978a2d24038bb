package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"kiwi/internal/diag"
	"kiwi/internal/source"
)

type palette struct {
	err, warn, info, note, code, path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		code:   mk(color.Bold),
		path:   mk(color.FgWhite, color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Pointers() {
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	path := pathOf(d, fs, opts.PathMode)
	header := fmt.Sprintf("%s %s: %s", p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)

	if !d.HasSpan() || !spanValid(fs, d.Primary) {
		fmt.Fprintf(w, "%s: %s\n", p.path.Sprint(path), header)
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s\n", p.path.Sprintf("%s:%d:%d", path, start.Line, start.Col), header)
	snippet(w, fs, d.Primary, opts.Context, p, p.caret)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if !spanValid(fs, n.Span) {
			fmt.Fprintf(w, "  %s: %s\n", p.note.Sprint("note"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s: %s %s\n", p.note.Sprint("note"),
			p.path.Sprintf("%s:%d:%d", formatPath(fs, n.Span.File, opts.PathMode), ns.Line, ns.Col), n.Msg)
		snippet(w, fs, n.Span, 0, p, p.note)
	}
}

// snippet печатает строку span'а с контекстом и подчёркивание.
// Многострочный span подчёркивается до конца первой строки.
func snippet(w io.Writer, fs *source.FileSet, sp source.Span, context int8, p palette, mark *color.Color) {
	file := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	lines := max(uint32(file.LineCount()), start.Line) // #nosec G115 -- bounded by file size
	first, last := start.Line, start.Line
	if context > 0 {
		c := uint32(context)
		first = max(1, first-min(first-1, c))
		last = min(lines, last+c)
	}
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		// табы печатаем одной ячейкой, чтобы колонки совпадали с подчёркиванием
		text := strings.ReplaceAll(file.GetLine(ln), "\t", " ")
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != start.Line {
			continue
		}
		pad := columnWidth(text, int(start.Col)-1)
		stop := len(text)
		if end.Line == start.Line {
			stop = int(end.Col) - 1
		}
		width := max(1, columnWidth(text, stop)-pad)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""),
			strings.Repeat(" ", pad), mark.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

// columnWidth returns the display width of the first n bytes of line.
func columnWidth(line string, n int) int {
	if n <= 0 {
		return 0
	}
	return runewidth.StringWidth(line[:min(n, len(line))])
}
