package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadDir builds a registry from the builtin set plus every *.json recipe
// file in dir. A file whose type key matches a builtin overrides it.
func LoadDir(dir string) (*Registry, error) {
	reg := Builtin()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read recipe file %s: %w", path, err)
		}
		var r Recipe
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("failed to parse recipe file %s: %w", path, err)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("invalid recipe in %s: %w", path, err)
		}
		reg.recipes[r.Type] = &r
	}
	return reg, nil
}
