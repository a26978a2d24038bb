// Package source loads schema files and maps byte offsets to line/column.
package source

type (
	// FileID uniquely identifies a file within a FileSet.
	FileID uint32
	// FileFlags records how a file was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin, cache).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one loaded schema. Content is normalized (no BOM, LF line
// endings) and never modified after the file is added.
type File struct {
	ID      FileID
	Path    string // slash-separated, cleaned
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte // sha256 of Content, the schema cache key
	Flags   FileFlags
}

// LineCol is a 1-based position. Columns count bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}
