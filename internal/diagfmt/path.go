package diagfmt

import (
	"kiwi/internal/diag"
	"kiwi/internal/source"
)

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// pathOf returns the display path of d: the file of its span, or Path for
// span-less diagnostics.
func pathOf(d *diag.Diagnostic, fs *source.FileSet, mode PathMode) string {
	if !d.HasSpan() || !spanValid(fs, d.Primary) {
		return d.Path
	}
	return formatPath(fs, d.Primary.File, mode)
}

func spanValid(fs *source.FileSet, sp source.Span) bool {
	return fs != nil && int(sp.File) < fs.Len()
}
