// Package discover finds descriptor files and the configuration file.
//
// Descriptors are recognized by name:
//   - *.shim.yaml, *.shim.yml
//   - *.shim.json
//
// No registration needed; the suffix is the marker.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/broady/shimgen/provider"
)

// ConfigFileName matches shimgen.ConfigFileName.
const ConfigFileName = "shimgen.toml"

var suffixes = []string{".shim.yaml", ".shim.yml", ".shim.json"}

// Descriptor is a discovered descriptor file.
type Descriptor struct {
	Path   string
	Format provider.Format
}

// Result contains the discovered files.
type Result struct {
	// Dir is the absolute directory that was scanned.
	Dir string

	// Config is the nearest configuration file at or above Dir, if any.
	Config string

	// Descriptors are sorted by path.
	Descriptors []Descriptor
}

// Paths returns the descriptor paths.
func (r *Result) Paths() []string {
	paths := make([]string, len(r.Descriptors))
	for i, d := range r.Descriptors {
		paths[i] = d.Path
	}
	return paths
}

// IsDescriptor reports whether name has a descriptor suffix.
func IsDescriptor(name string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) && len(name) > len(s) {
			return true
		}
	}
	return false
}

// Find scans dir and its subdirectories for descriptor files. Hidden
// directories and testdata are skipped, as the go command does.
func Find(dir string) (*Result, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	result := &Result{Dir: abs}
	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != abs && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsDescriptor(name) {
			return nil
		}
		format, err := provider.FormatOf(name)
		if err != nil {
			return err
		}
		result.Descriptors = append(result.Descriptors, Descriptor{Path: path, Format: format})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	sort.Slice(result.Descriptors, func(i, j int) bool {
		return result.Descriptors[i].Path < result.Descriptors[j].Path
	})

	result.Config, _ = FindConfig(abs)
	return result, nil
}

// FindConfig looks for ConfigFileName in dir and its parents.
func FindConfig(dir string) (string, bool) {
	for {
		p := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Select returns the descriptors to load. Explicit paths win; otherwise
// every discovered descriptor is used and at least one must exist.
func Select(r *Result, explicit []string) ([]string, error) {
	if len(explicit) > 0 {
		return explicit, nil
	}
	if len(r.Descriptors) == 0 {
		return nil, fmt.Errorf("no descriptor files found in %s\n\nAdd a file named like api.shim.yaml:\n\n    package: io.vertx.core\n    types:\n      - name: Vertx\n        methods:\n          - name: close\n            returns: Future<Void>", r.Dir)
	}
	return r.Paths(), nil
}
