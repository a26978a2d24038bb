package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns the schema files of one compilation and resolves spans.
// It is safe for concurrent use; files are never removed.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	byPath  map[string]FileID // последняя версия файла по пути
	baseDir string
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// NewFileSetWithBase creates a FileSet whose relative paths are rendered
// against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// SetBaseDir sets the directory relative paths are rendered against.
func (fs *FileSet) SetBaseDir(dir string) {
	fs.mu.Lock()
	fs.baseDir = dir
	fs.mu.Unlock()
}

// BaseDir returns the base directory, falling back to the working directory.
func (fs *FileSet) BaseDir() string {
	fs.mu.RLock()
	dir := fs.baseDir
	fs.mu.RUnlock()
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return dir
}

// Add stores already normalized content under path and returns a new ID.
// Adding the same path twice keeps both versions; Lookup returns the newer.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	f := &File{
		Path:    cleanPath(path),
		Content: content,
		LineIdx: lineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	f.ID = FileID(n)
	fs.files = append(fs.files, f)
	fs.byPath[f.Path] = f.ID
	return f.ID
}

// Load reads path from disk, strips a UTF-8 BOM and converts CRLF to LF.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := normalize(raw)
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content under name.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

// Get returns the file with the given ID. It panics on an unknown ID.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return fs.files[id]
}

// Len reports how many files were added.
func (fs *FileSet) Len() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return len(fs.files)
}

// Lookup returns the newest file added under path.
func (fs *FileSet) Lookup(path string) (*File, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.byPath[cleanPath(path)]
	if !ok {
		return nil, false
	}
	return fs.files[id], true
}

// Resolve converts a span into start and end positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return f.Position(span.Start), f.Position(span.End)
}

// Text returns the source text under span, clamped to the file.
func (fs *FileSet) Text(span Span) string {
	return fs.Get(span.File).Slice(span.Start, span.End)
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
