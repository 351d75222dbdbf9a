package discover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/broady/shimgen/provider"
)

func writeFiles(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("package: a\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestIsDescriptor(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"core.shim.yaml", true},
		{"core.shim.yml", true},
		{"core.shim.json", true},
		{"core.yaml", false},
		{"shim.yaml", false},
		{".shim.yaml", false},
		{"core.shim.toml", false},
		{"shimgen.toml", false},
	}
	for _, tt := range tests {
		if got := IsDescriptor(tt.name); got != tt.want {
			t.Errorf("IsDescriptor(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		ConfigFileName,
		"api/core.shim.yaml",
		"api/file/file.shim.json",
		"api/notes.yaml",
		"api/.cache/old.shim.yaml",
		"api/testdata/fixture.shim.yaml",
		"api/_draft/wip.shim.yml",
	)

	result, err := Find(filepath.Join(root, "api"))
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	want := []Descriptor{
		{Path: filepath.Join(root, "api", "core.shim.yaml"), Format: provider.FormatYAML},
		{Path: filepath.Join(root, "api", "file", "file.shim.json"), Format: provider.FormatJSON},
	}
	if len(result.Descriptors) != len(want) {
		t.Fatalf("Descriptors = %v, want %v", result.Descriptors, want)
	}
	for i := range want {
		if result.Descriptors[i] != want[i] {
			t.Errorf("Descriptors[%d] = %v, want %v", i, result.Descriptors[i], want[i])
		}
	}
	if wantCfg := filepath.Join(root, ConfigFileName); result.Config != wantCfg {
		t.Errorf("Config = %q, want %q", result.Config, wantCfg)
	}
}

func TestFind_Errors(t *testing.T) {
	root := t.TempDir()
	if _, err := Find(filepath.Join(root, "missing")); err == nil {
		t.Error("Find() on missing dir expected error")
	}
	writeFiles(t, root, "a.shim.yaml")
	if _, err := Find(filepath.Join(root, "a.shim.yaml")); err == nil {
		t.Error("Find() on a file expected error")
	}
}

func TestSelect(t *testing.T) {
	r := &Result{
		Dir:         "/src",
		Descriptors: []Descriptor{{Path: "/src/a.shim.yaml"}, {Path: "/src/b.shim.json"}},
	}

	got, err := Select(r, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if strings.Join(got, ",") != "/src/a.shim.yaml,/src/b.shim.json" {
		t.Errorf("Select() = %v", got)
	}

	got, err = Select(r, []string{"x.shim.yaml"})
	if err != nil || len(got) != 1 || got[0] != "x.shim.yaml" {
		t.Errorf("Select(explicit) = %v, %v", got, err)
	}

	_, err = Select(&Result{Dir: "/empty"}, nil)
	if err == nil || !strings.Contains(err.Error(), "no descriptor files found") {
		t.Errorf("Select(empty) error = %v, want no descriptor files found", err)
	}
}
