package driver

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"kiwi/internal/ast"
	"kiwi/internal/observ"
	"kiwi/internal/project"
	"kiwi/internal/source"
	"kiwi/internal/trace"
	"kiwi/internal/version"
)

// diskCacheSchemaVersion растёт при каждом изменении DiskPayload.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит провалидированные схемы по хешу исходника.
// Safe for concurrent use by CompileFiles workers.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached, validated schema.
type DiskPayload struct {
	Schema uint16
	Path   string
	Hash   project.Digest // source.File.Hash of the input
	AST    *ast.Schema
}

// OpenDiskCache opens <cache>/<app>, where <cache> is $XDG_CACHE_HOME when
// set and os.UserCacheDir otherwise.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		base, err = xdg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Key is the file's content hash salted with the compiler version and the
// payload format, so upgrades never read stale entries.
func Key(file *source.File) project.Digest {
	var format [2]byte
	binary.BigEndian.PutUint16(format[:], diskCacheSchemaVersion)
	return project.Combine(project.Digest(file.Hash), []byte(version.Version), format[:])
}

// pathFor: schemas/ab/abcdef....mp, двухсимвольный шард по префиксу ключа.
func (c *DiskCache) pathFor(key project.Digest) string {
	name := key.Hex()
	return filepath.Join(c.dir, "schemas", name[:2], name+".mp")
}

// Put stores payload under key. The entry is written to a temp file and
// renamed into place, so readers never see a partial entry.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	dst := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "tmp-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(data)
	err = errors.Join(err, tmp.Close())
	if err == nil {
		err = os.Rename(tmp.Name(), dst)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
	}
	return err
}

// Get fills out from the entry for key. A missing entry is (false, nil).
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "schemas"))
}

// fromCache restores a validated schema. Corrupt or foreign entries count
// as misses.
func (r *runner) fromCache() bool {
	file := r.res.File
	key := Key(file)
	span := trace.Begin(trace.FromContext(r.ctx), trace.ScopePhase, observ.PhaseCache, trace.CurrentSpan(r.ctx))
	idx := r.res.Timer.Begin(observ.PhaseCache)

	var payload DiskPayload
	ok, err := r.opts.Cache.Get(key, &payload)
	hit := err == nil && ok &&
		payload.Schema == diskCacheSchemaVersion &&
		payload.Hash == project.Digest(file.Hash) &&
		payload.AST != nil

	note := "miss"
	if hit {
		note = "hit"
		restamp(payload.AST, file.ID)
		r.res.Schema = payload.AST
		r.res.Cached = true
	}
	r.res.Timer.End(idx, note)
	span.End(note)
	return hit
}

// store caches the validated schema. Cache write failures never fail a build.
func (r *runner) store() {
	if r.opts.Cache == nil || r.res.Schema == nil {
		return
	}
	file := r.res.File
	_ = r.opts.Cache.Put(Key(file), &DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   file.Path,
		Hash:   project.Digest(file.Hash),
		AST:    r.res.Schema,
	})
}

// restamp points cached spans at the file they were reloaded for.
func restamp(schema *ast.Schema, id source.FileID) {
	for _, def := range schema.Definitions {
		def.Span.File = id
		for i := range def.Fields {
			def.Fields[i].Span.File = id
		}
		for i := range def.Extensions {
			def.Extensions[i].Span.File = id
		}
	}
}
