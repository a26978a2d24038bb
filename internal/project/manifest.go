package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// SchemaExt is the schema file extension.
const SchemaExt = ".kiwi"

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
	// ErrInputsMissing indicates that [schema].inputs is missing or empty.
	ErrInputsMissing = errors.New("missing [schema].inputs")
)

// Manifest is a parsed kiwi.toml.
type Manifest struct {
	Path string `toml:"-"` // kiwi.toml itself
	Root string `toml:"-"` // its directory

	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Schema struct {
		Inputs []string `toml:"inputs"`
	} `toml:"schema"`
	Go GoConfig `toml:"go"`
}

// GoConfig is the [go] section.
type GoConfig struct {
	Out        string `toml:"out"`
	Package    string `toml:"package"`
	WireImport string `toml:"wire_import"`
}

// LoadManifest parses kiwi.toml at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !meta.IsDefined("schema", "inputs") || len(m.Schema.Inputs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrInputsMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m.Path = abs
	m.Root = filepath.Dir(abs)
	if m.Go.Out == "" {
		m.Go.Out = "."
	}
	return &m, nil
}

// OutDir returns the absolute output directory.
func (m *Manifest) OutDir() string {
	if filepath.IsAbs(m.Go.Out) {
		return m.Go.Out
	}
	return filepath.Join(m.Root, m.Go.Out)
}

// InputFiles expands [schema].inputs into a sorted, deduplicated list of
// schema files. Directories are walked for *.kiwi.
func (m *Manifest) InputFiles() ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, in := range m.Schema.Inputs {
		p := in
		if !filepath.IsAbs(p) {
			p = filepath.Join(m.Root, p)
		}
		files, err := ListSchemaFiles(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ListSchemaFiles returns path itself when it is a file, or every *.kiwi
// below it when it is a directory, sorted.
func ListSchemaFiles(path string) ([]string, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return []string{path}, nil
	}
	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, SchemaExt) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
