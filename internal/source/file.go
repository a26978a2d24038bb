package source

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
)

// Position converts a byte offset into a 1-based line/column pair.
// Offsets past the end resolve on the last line.
func (f *File) Position(off uint32) LineCol {
	// число переводов строки строго до off
	line := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	var lineStart uint32
	if line > 0 {
		lineStart = f.LineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - lineStart + 1} // #nosec G115 -- line <= len(LineIdx), which fits uint32
}

// LineCount returns the number of lines; a trailing newline does not start
// a new one.
func (f *File) LineCount() int {
	n := len(f.LineIdx) + 1
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] == '\n' {
		n--
	}
	return n
}

// GetLine returns line n (1-based) without its newline, or "" when out of range.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	return string(f.Content[start:end])
}

// Slice returns Content[start:end] clamped to the file.
func (f *File) Slice(start, end uint32) string {
	size := uint32(len(f.Content)) // #nosec G115 -- Add rejects files whose count overflows; content sizes come from os.ReadFile
	start, end = min(start, size), min(end, size)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// FormatPath renders the path for diagnostics.
// mode: "absolute", "relative", "basename" or "auto".
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// AbsolutePath returns the slash-normalized absolute form of p.
func AbsolutePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return cleanPath(abs), nil
}

// RelativePath returns p relative to baseDir (the working directory when
// empty). Paths outside baseDir stay absolute.
func RelativePath(p, baseDir string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return cleanPath(abs), nil
	}
	return cleanPath(rel), nil
}

// normalize strips a UTF-8 BOM and turns CRLF into LF. Lone CRs stay.
func normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if bom := []byte("\xEF\xBB\xBF"); bytes.HasPrefix(content, bom) {
		content = content[len(bom):]
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

func lineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)) // #nosec G115 -- schema files are far below 4 GiB
		}
	}
	return idx
}
