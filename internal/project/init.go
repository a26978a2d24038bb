package project

import (
	"fmt"
	"os"
	"path/filepath"
)

const starterManifest = `[package]
name = %q

[schema]
inputs = ["schemas"]

[go]
out = "gen"
package = %q
`

const starterSchema = `package %s;

enum Kind {
  SMALL = 0;
  LARGE = 1;
}

struct Point {
  float x;
  float y;
}

message Item {
  string name = 1;
  Kind kind = 2;
  Point[] path = 3;
}
`

// Init writes a starter kiwi.toml and schemas/<name>.kiwi into dir.
// Existing files are never overwritten.
func Init(dir, name string) ([]string, error) {
	manifest := filepath.Join(dir, ManifestName)
	schema := filepath.Join(dir, "schemas", name+SchemaExt)
	for _, p := range []string{manifest, schema} {
		if _, err := os.Stat(p); err == nil {
			return nil, fmt.Errorf("%s already exists", p)
		}
	}
	if err := os.MkdirAll(filepath.Dir(schema), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifest, fmt.Appendf(nil, starterManifest, name, name+"pb"), 0o600); err != nil {
		return nil, err
	}
	if err := os.WriteFile(schema, fmt.Appendf(nil, starterSchema, name), 0o600); err != nil {
		return nil, err
	}
	return []string{manifest, schema}, nil
}
