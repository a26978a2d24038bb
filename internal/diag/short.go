package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"kiwi/internal/source"
)

// shortLine — одна строка вывода `--format short`.
type shortLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func (l shortLine) String() string {
	if l.line == 0 {
		return fmt.Sprintf("%s %s %s %s", l.sev, l.code, l.path, l.msg)
	}
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

// FormatShortDiagnostics renders one line per diagnostic (and per note when
// includeNotes is set), sorted by location:
//
//	error SYN2001 schemas/game.kiwi:3:7 Unexpected token "}"
//
// Paths are relative to the file set's base directory with forward slashes.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	lines := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		code := d.Code.ID()
		if !d.HasSpan() {
			lines = append(lines, shortLine{sev: d.Severity.label(), code: code, path: slashPath(d.Path), msg: oneLine(d.Message)})
			continue
		}
		if l, ok := locate(fs, d.Primary); ok {
			l.sev, l.code, l.msg = d.Severity.label(), code, oneLine(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := locate(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", code, oneLine(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	slices.SortStableFunc(lines, func(x, y shortLine) int {
		return cmp.Or(
			cmp.Compare(x.path, y.path),
			cmp.Compare(x.line, y.line),
			cmp.Compare(x.col, y.col),
			cmp.Compare(x.sev, y.sev),
			cmp.Compare(x.code, y.code),
			cmp.Compare(x.msg, y.msg),
		)
	})

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func locate(fs *source.FileSet, sp source.Span) (shortLine, bool) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return shortLine{}, false
	}
	start, _ := fs.Resolve(sp)
	path := fs.Get(sp.File).FormatPath("relative", fs.BaseDir())
	return shortLine{path: slashPath(path), line: start.Line, col: start.Col}, true
}

func slashPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// oneLine склеивает многострочное сообщение в одну строку.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(strings.ReplaceAll(msg, "\r", "\n")), " "))
}
